// Package assertion generates the identity assertions the OAuth server
// accepts in place of a password.
//
// A fresh Ed25519 key pair is created per assertion. The auth server signs
// the public half into a certificate bound to the session token; the private
// half signs a short-lived JWT addressed to the OAuth server. The two are
// joined as "<certificate>~<assertion>" and the private key is wiped.
package assertion
