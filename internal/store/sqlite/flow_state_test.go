package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handoff/internal/domain"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleFlow(id string, created time.Time) domain.FlowState {
	return domain.FlowState{
		FlowID:              id,
		Action:              domain.ActionSignIn,
		ClientID:            "dcdb5ae7add825d2",
		Scope:               "profile https://identity.mozilla.com/apps/notes",
		State:               "st",
		KeysJWK:             "eyJrdHkiOiJFQyJ9",
		CodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		CodeChallengeMethod: "S256",
		CreatedAt:           created.UTC().Truncate(time.Second),
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	r := NewFlowStateRepository(setupDB(t))
	ctx := context.Background()

	want := sampleFlow("f1", time.Now())
	require.NoError(t, r.SaveFlowState(ctx, want))

	got, ok, err := r.LoadFlowState(ctx, "f1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLoad_NotExists_ReturnsFalse(t *testing.T) {
	r := NewFlowStateRepository(setupDB(t))

	_, ok, err := r.LoadFlowState(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSave_UpsertOverwrites(t *testing.T) {
	r := NewFlowStateRepository(setupDB(t))
	ctx := context.Background()

	st := sampleFlow("f1", time.Now())
	require.NoError(t, r.SaveFlowState(ctx, st))
	st.State = "other"
	require.NoError(t, r.SaveFlowState(ctx, st))

	got, ok, err := r.LoadFlowState(ctx, "f1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "other", got.State)
}

func TestSave_EmptyID_Fails(t *testing.T) {
	r := NewFlowStateRepository(setupDB(t))
	require.Error(t, r.SaveFlowState(context.Background(), domain.FlowState{}))
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewFlowStateRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SaveFlowState(ctx, sampleFlow("f1", time.Now())))
	require.NoError(t, r.DeleteFlowState(ctx, "f1"))
	require.NoError(t, r.DeleteFlowState(ctx, "f1"))

	_, ok, err := r.LoadFlowState(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteOlderThan_PrunesOnlyStale(t *testing.T) {
	r := NewFlowStateRepository(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, r.SaveFlowState(ctx, sampleFlow("old", now.Add(-48*time.Hour))))
	require.NoError(t, r.SaveFlowState(ctx, sampleFlow("new", now)))

	n, err := r.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, ok, _ := r.LoadFlowState(ctx, "old")
	assert.False(t, ok)
	_, ok, _ = r.LoadFlowState(ctx, "new")
	assert.True(t, ok)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, RunMigrations(context.Background(), db))
}

func TestRunMigrations_Error(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	_, err := Open(context.Background(), ":memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestSave_DBError_Wrapped(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectExec(`INSERT INTO flow_state`).WillReturnError(errors.New("disk full"))

	err := NewFlowStateRepository(db).SaveFlowState(context.Background(), sampleFlow("f1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save flow state[f1]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_DBError_Wrapped(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectQuery(`SELECT data FROM flow_state`).WithArgs("f1").WillReturnError(errors.New("locked"))

	_, ok, err := NewFlowStateRepository(db).LoadFlowState(context.Background(), "f1")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "failed to load flow state[f1]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_CorruptRow_Fails(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectQuery(`SELECT data FROM flow_state`).
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("{not json")))

	_, _, err := NewFlowStateRepository(db).LoadFlowState(context.Background(), "f1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode flow state[f1]")
}

func TestDeleteOlderThan_DBError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectExec(`DELETE FROM flow_state WHERE created_at`).WillReturnError(errors.New("locked"))

	_, err := NewFlowStateRepository(db).DeleteOlderThan(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prune flow states")
}
