// Package store provides file-based persistence for the signed-in account.
//
// The account (session token, key fetch token, unwrapBKey and granted
// permissions) is serialised as JSON and sealed with XChaCha20-Poly1305
// under a key stretched from the user's passphrase with scrypt. Files are
// written atomically with mode 0600 under the configured home directory.
// All methods are concurrency-safe via internal locking.
//
// Flow-state checkpoints live in the sqlite subpackage.
package store
