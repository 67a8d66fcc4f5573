package interfaces

import (
	"context"

	domaintypes "handoff/internal/domain/types"
)

// AccountStore persists the signed-in account under a passphrase.
type AccountStore interface {
	SaveAccount(passphrase string, account domaintypes.Account) error
	LoadAccount(passphrase string) (domaintypes.Account, bool, error)
	DeleteAccount() error
}

// FlowStateStore keeps flow checkpoints between process runs.
type FlowStateStore interface {
	SaveFlowState(ctx context.Context, state domaintypes.FlowState) error
	LoadFlowState(ctx context.Context, flowID string) (domaintypes.FlowState, bool, error)
	DeleteFlowState(ctx context.Context, flowID string) error
}
