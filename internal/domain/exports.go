package domain

import (
	interfaces "handoff/internal/domain/interfaces"
	types "handoff/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Action               = types.Action
	Behavior             = types.Behavior
	BehaviorType         = types.BehaviorType
	Account              = types.Account
	RelierParams         = types.RelierParams
	ResumeTokenInfo      = types.ResumeTokenInfo
	ClientInfo           = types.ClientInfo
	FlexBool             = types.FlexBool
	OAuthResult          = types.OAuthResult
	CodeRequest          = types.CodeRequest
	CodeResponse         = types.CodeResponse
	KeyDataRequest       = types.KeyDataRequest
	AccountKeys          = types.AccountKeys
	EncryptedAccountKeys = types.EncryptedAccountKeys
	ScopedKeyData        = types.ScopedKeyData
	ScopedKey            = types.ScopedKey
	PublicKeyJWK         = types.PublicKeyJWK
	FlowState            = types.FlowState
	Ed25519Public        = types.Ed25519Public
	Ed25519Private       = types.Ed25519Private
)

// Action values.
const (
	ActionSignIn    = types.ActionSignIn
	ActionSignUp    = types.ActionSignUp
	ActionForceAuth = types.ActionForceAuth
	ActionEmail     = types.ActionEmail
)

// Behavior types.
const (
	BehaviorNull     = types.BehaviorNull
	BehaviorNavigate = types.BehaviorNavigate
	BehaviorHalt     = types.BehaviorHalt
)

// Constructors re-exported from the types subpackage.
var (
	NullBehavior        = types.NullBehavior
	HaltBehavior        = types.HaltBehavior
	NavigateBehavior    = types.NavigateBehavior
	FlowStateFromRelier = types.FlowStateFromRelier

	ErrNotBoolean = types.ErrNotBoolean
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	OAuthClient         = interfaces.OAuthClient
	AuthClient          = interfaces.AuthClient
	AssertionGenerator  = interfaces.AssertionGenerator
	AccountKeysDeriver  = interfaces.AccountKeysDeriver
	ScopedKeysEncrypter = interfaces.ScopedKeysEncrypter
	OAuthResultProvider = interfaces.OAuthResultProvider
	Dispatcher          = interfaces.Dispatcher
	AccountStore        = interfaces.AccountStore
	FlowStateStore      = interfaces.FlowStateStore
)
