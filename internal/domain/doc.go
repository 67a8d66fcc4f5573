// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (wire/state) and contracts (interfaces) only.
//
// Services receive their collaborators as the capability interfaces declared
// here (assertion generation, OAuth and auth server clients, key derivation,
// key encryption, result dispatch and flow-state storage) through their
// constructors.
package domain
