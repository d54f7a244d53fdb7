package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

func newTestIdempotencyRecord() *domain.IdempotencyRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.IdempotencyRecord{
		Scope:              domain.IdempotencyScopeCreateInvoice,
		Key:                "idem-order-1",
		RequestFingerprint: "fingerprint-abc",
		StoredResponse:     []byte(`{"id":"..."}`),
		StoredStatus:       201,
		CreatedAt:          now,
		ExpiresAt:          now.Add(24 * time.Hour),
	}
}

func TestIdempotencyRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)
	rec := newTestIdempotencyRecord()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO idempotency_records").
		WithArgs(string(rec.Scope), rec.Key, rec.RequestFingerprint, rec.StoredResponse, rec.StoredStatus, rec.CreatedAt, rec.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx, rec))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)
	rec := newTestIdempotencyRecord()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO idempotency_records").
		WithArgs(string(rec.Scope), rec.Key, rec.RequestFingerprint, rec.StoredResponse, rec.StoredStatus, rec.CreatedAt, rec.ExpiresAt).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	mock.ExpectRollback()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	err = repo.Create(context.Background(), tx, rec)
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)
	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)
	rec := newTestIdempotencyRecord()

	mock.ExpectQuery("SELECT scope, key, request_fingerprint, stored_response, stored_status, created_at, expires_at").
		WithArgs(string(rec.Scope), rec.Key).
		WillReturnRows(pgxmock.NewRows([]string{
			"scope", "key", "request_fingerprint", "stored_response", "stored_status", "created_at", "expires_at",
		}).AddRow(string(rec.Scope), rec.Key, rec.RequestFingerprint, rec.StoredResponse, rec.StoredStatus, rec.CreatedAt, rec.ExpiresAt))

	result, err := repo.Get(context.Background(), rec.Scope, rec.Key)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, rec.Key, result.Key)
	assert.Equal(t, rec.Scope, result.Scope)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)

	mock.ExpectQuery("SELECT scope, key, request_fingerprint, stored_response, stored_status, created_at, expires_at").
		WithArgs(string(domain.IdempotencyScopeCreateInvoice), "missing-key").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.Get(context.Background(), domain.IdempotencyScopeCreateInvoice, "missing-key")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
