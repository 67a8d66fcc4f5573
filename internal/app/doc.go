// Package app wires application dependencies for the CLI and runs flows.
//
// Config is read from HANDOFF_* environment variables; NewWire builds the
// stores, remote clients and services from it. App drives the three
// user-facing flows on top of the Wire:
//
//   - Authorize: fetch the relier, then finish immediately for a verified
//     session or checkpoint the flow for an unverified one.
//   - Resume: finish a checkpointed flow after out-of-band verification.
//   - VerifyCode: verify a sign-in code, then finish the checkpointed flow.
//
// Completed flows record the granted permissions on the stored account and
// delete their checkpoint.
package app
