package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"handoff/internal/domain"
)

// FlowStateRepository stores flow checkpoints in sqlite, one row per flow.
type FlowStateRepository struct {
	db *sql.DB
}

func NewFlowStateRepository(db *sql.DB) *FlowStateRepository {
	return &FlowStateRepository{db: db}
}

func (r *FlowStateRepository) SaveFlowState(ctx context.Context, st domain.FlowState) error {
	if st.FlowID == "" {
		return errors.New("flow state: empty flow id")
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode flow state[%s]: %w", st.FlowID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO flow_state (flow_id, client_id, data, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(flow_id) DO UPDATE SET
			client_id = excluded.client_id,
			data = excluded.data,
			created_at = excluded.created_at
	`, st.FlowID, st.ClientID, data, st.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save flow state[%s]: %w", st.FlowID, err)
	}
	return nil
}

func (r *FlowStateRepository) LoadFlowState(ctx context.Context, flowID string) (domain.FlowState, bool, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM flow_state WHERE flow_id = ?`, flowID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FlowState{}, false, nil
	}
	if err != nil {
		return domain.FlowState{}, false, fmt.Errorf("failed to load flow state[%s]: %w", flowID, err)
	}

	var st domain.FlowState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.FlowState{}, false, fmt.Errorf("failed to decode flow state[%s]: %w", flowID, err)
	}
	return st, true, nil
}

func (r *FlowStateRepository) DeleteFlowState(ctx context.Context, flowID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM flow_state WHERE flow_id = ?`, flowID)
	if err != nil {
		return fmt.Errorf("failed to delete flow state[%s]: %w", flowID, err)
	}
	return nil
}

// DeleteOlderThan removes checkpoints created before cutoff and returns how
// many were removed.
func (r *FlowStateRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flow_state WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune flow states: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune flow states: %w", err)
	}
	return n, nil
}

// Compile-time assertion that FlowStateRepository implements domain.FlowStateStore.
var _ domain.FlowStateStore = (*FlowStateRepository)(nil)
