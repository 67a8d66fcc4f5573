// Package sqlite persists flow-state checkpoints in a local sqlite database.
//
// A flow that has to wait on something outside this process (email
// verification, a sign-in code) is written here under a random flow id and
// read back when the user resumes it. Rows store the FlowState as JSON
// alongside its client id and creation time; stale rows are pruned with
// DeleteOlderThan.
//
// The schema is managed by goose using the embedded migrations directory.
package sqlite
