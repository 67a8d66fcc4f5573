// Package fxaclient provides HTTP implementations of the domain.OAuthClient
// and domain.AuthClient interfaces.
//
// The OAuth server issues authorization codes and per-scope key metadata and
// describes registered clients. The auth server signs identity certificates,
// releases wrapped account keys and verifies sign-in codes.
//
// Supported operations include:
//   - POST /v1/authorization     exchange an assertion for a code
//   - POST /v1/key-data          fetch key-bearing scope metadata
//   - GET  /v1/client/{id}       fetch a client's registration
//   - POST /v1/certificate/sign  sign an ephemeral public key
//   - GET  /v1/account/keys      fetch kA and wrapped kB
//   - POST /v1/session/verify_code  verify a sign-in code
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as *APIError carrying the status,
// the server errno, its message and any validation keys.
package fxaclient
