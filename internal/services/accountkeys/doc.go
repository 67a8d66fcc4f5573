// Package accountkeys unwraps the account's class-B key.
//
// The auth server returns kA and wrapKB for a key fetch token; kB is
// wrapKB XOR unwrapBKey, where unwrapBKey was stretched from the password at
// sign-in and never leaves the client.
package accountkeys
