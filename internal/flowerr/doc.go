// Package flowerr defines the tagged error type returned by the OAuth flow.
//
// Every failure the sequencer, relier or broker raise on purpose is an *Error
// carrying a Kind. Callers branch on the kind with IsKind or errors.Is against
// a bare kind value:
//
//	if flowerr.IsKind(err, flowerr.InvalidResultCode) { ... }
//
// Upstream failures (transport, assertion signing) are never re-tagged; they
// reach the caller unchanged.
package flowerr
