// Package commands defines the handoff CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login        Store a signed-in account under a passphrase
//   - logout       Delete the stored account
//   - authorize    Run the OAuth handoff for a relier query string
//   - resume       Finish a saved flow after out-of-band verification
//   - verify-code  Verify the session with a sign-in code, then finish
//
// # Implementation
//
// The root command loads configuration from HANDOFF_* variables, applies
// flag overrides and builds the dependency graph (stores, remote clients,
// services) before any subcommand runs. Stale flow checkpoints are pruned
// on every start. Results are printed to stdout as JSON.
package commands
