package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

func newTestUnmatchedTransfer() *domain.UnmatchedTransfer {
	return &domain.UnmatchedTransfer{
		ID:            uuid.New(),
		Chain:         "arb",
		TokenContract: "0xusdt",
		ToAddress:     "0xdangling",
		TransferID:    uuid.New(),
		AtomicAmount:  money.FromInt64(2500000),
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		Resolved:      false,
	}
}

func TestUnmatchedTransferRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUnmatchedTransferRepo(mock)
	u := newTestUnmatchedTransfer()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO unmatched_transfers").
		WithArgs(u.ID, u.Chain, u.TokenContract, u.ToAddress, u.TransferID, u.AtomicAmount, u.CreatedAt, u.Resolved).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx, u))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnmatchedTransferRepo_ListUnresolvedByAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUnmatchedTransferRepo(mock)
	u := newTestUnmatchedTransfer()

	mock.ExpectQuery("SELECT .+ FROM unmatched_transfers").
		WithArgs(u.Chain, u.TokenContract, u.ToAddress).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "chain", "token_contract", "to_address", "transfer_id", "atomic_amount", "created_at", "resolved",
		}).AddRow(u.ID, u.Chain, u.TokenContract, u.ToAddress, u.TransferID, u.AtomicAmount, u.CreatedAt, u.Resolved))

	result, err := repo.ListUnresolvedByAddress(context.Background(), u.Chain, u.TokenContract, u.ToAddress)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, u.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnmatchedTransferRepo_MarkResolved(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUnmatchedTransferRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE unmatched_transfers SET resolved").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.MarkResolved(context.Background(), tx, id))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
