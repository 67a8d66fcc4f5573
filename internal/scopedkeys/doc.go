// Package scopedkeys derives per-scope encryption keys from kB and seals
// them for the relier.
//
// Each key-bearing scope reported by the OAuth server yields one
// {kty, scope, k, kid} entry. The set is serialised as JSON and encrypted as a
// compact JWE (ECDH-ES key agreement, A256GCM content encryption) to the
// relier's ephemeral P-256 public key, which arrives base64url-encoded in the
// keys_jwk query parameter.
package scopedkeys
