// Package signincode confirms an unverified session with the code emailed
// to the user. Once confirmed, the OAuth flow is finished through the
// broker's AfterCompleteSignInCode hook.
package signincode
