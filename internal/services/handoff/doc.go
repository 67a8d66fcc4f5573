// Package handoff runs the OAuth handoff sequence for a signed-in account.
//
// # Flow
//
//  1. Generate an identity assertion from the account's session token.
//  2. Exchange it at the OAuth server for an authorization code, passing the
//     relier's client id, scope, state, access type and PKCE challenge.
//  3. Validate the reply: the redirect URL must carry a 64-hex-digit code
//     and a state in its query string.
//  4. When the relier supplied keys_jwk, provision scoped keys with the same
//     assertion.
//  5. Return {redirect, code, state, action, keys?}.
//
// Calls are made one after another and never retried: an assertion replayed
// against the code grant could mint a second code for one user action.
//
// # Errors
//
// Deliberate failures are *flowerr.Error values (InvalidToken,
// MissingParameter, InvalidResult, InvalidResultRedirect,
// InvalidResultCode). Assertion and transport errors are returned unchanged.
// Key provisioning yields no bundle, rather than an error, when the account
// has no unwrapBKey or the OAuth server reports no key-bearing scope.
//
// Delivering the result to the relier is a domain.Dispatcher concern.
package handoff
