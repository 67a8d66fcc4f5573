// Package broker drives the OAuth flow from account lifecycle events to the
// relier.
//
// The embedding application calls one of the After* hooks once the user has
// signed in, signed up, confirmed a reset or entered a sign-in code. The
// broker obtains the OAuth result for the current relier, stamps it with the
// action that completed the flow and hands it to a domain.Dispatcher, which
// decides how the result reaches the relier (redirect, message, halt).
//
// Before the flow leaves the process, for example to wait on an emailed
// verification link, PersistVerificationData writes a domain.FlowState
// checkpoint from which the relier can be rebuilt later.
//
// Only one finish may run at a time on a Broker; a concurrent call fails
// with ErrSubmitInProgress.
package broker
