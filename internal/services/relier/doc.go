// Package relier validates and assembles the OAuth parameters of a relying
// party.
//
// # Flows
//
// Fetch handles the sign-in/sign-up entry point: the parameters come from
// the authorization query string. Resume handles the email verification
// entry point: parameters are restored from the flow-state record saved
// before the flow left the browser, or, when verifying in a second browser,
// from the `service` and `scope` query parameters.
//
// In both flows the client's registration is fetched from the OAuth server;
// its redirect_uri always wins over the one in the query. Untrusted reliers
// may only request the allowed profile permissions; trusted reliers that ask
// for consent have the bare `profile` scope expanded.
//
// # Errors
//
// Absent required parameters fail with flowerr.MissingParameter, malformed
// ones with flowerr.InvalidParameter; both name the parameter. A client id
// the OAuth server does not know fails with flowerr.UnknownClient.
package relier
