package accountkeys

import (
	"context"
	"encoding/hex"
	"fmt"

	"handoff/internal/crypto"
	"handoff/internal/domain"
	"handoff/internal/util/memzero"
)

// Service implements domain.AccountKeysDeriver.
type Service struct {
	auth domain.AuthClient
}

// New constructs a Service backed by auth.
func New(auth domain.AuthClient) *Service {
	return &Service{auth: auth}
}

// AccountKeys returns kA and kB for account, or nil keys when the account
// lacks the unwrapBKey or key fetch token needed to obtain them.
//
// Steps:
//  1. Fetch kA and wrapKB with the key fetch token.
//  2. Decode the hex values and unwrapBKey.
//  3. kB = wrapKB XOR unwrapBKey.
func (s *Service) AccountKeys(ctx context.Context, account *domain.Account) (*domain.AccountKeys, error) {
	if account == nil || account.UnwrapBKey == "" || account.KeyFetchToken == "" {
		return nil, nil
	}

	enc, err := s.auth.AccountKeys(ctx, account.KeyFetchToken)
	if err != nil {
		return nil, err
	}

	kA, err := hex.DecodeString(enc.KA)
	if err != nil {
		return nil, fmt.Errorf("account keys: kA: %w", err)
	}
	wrapKB, err := hex.DecodeString(enc.WrapKB)
	if err != nil {
		return nil, fmt.Errorf("account keys: wrapKB: %w", err)
	}
	defer memzero.Zero(wrapKB)
	unwrapBKey, err := hex.DecodeString(account.UnwrapBKey)
	if err != nil {
		return nil, fmt.Errorf("account keys: unwrapBKey: %w", err)
	}
	defer memzero.Zero(unwrapBKey)

	kB, err := crypto.XOR(wrapKB, unwrapBKey)
	if err != nil {
		return nil, fmt.Errorf("account keys: %w", err)
	}
	return &domain.AccountKeys{KA: kA, KB: kB}, nil
}

// Compile-time assertion that Service implements domain.AccountKeysDeriver.
var _ domain.AccountKeysDeriver = (*Service)(nil)
