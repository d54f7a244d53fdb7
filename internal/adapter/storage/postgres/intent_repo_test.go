package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

func newTestIntent() *domain.PaymentIntent {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.PaymentIntent{
		ID:             uuid.New(),
		InvoiceID:      uuid.New(),
		Token:          "USDT",
		Chain:          "arb",
		DepositAddress: "0xA",
		TargetAtomic:   money.FromInt64(10000000),
		CreditedAtomic: money.Zero(),
		Status:         domain.IntentStatusAwaitingFunds,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func intentColumnNames() []string {
	return []string{"id", "invoice_id", "token", "chain", "deposit_address", "target_atomic", "credited_atomic",
		"status", "created_at", "updated_at"}
}

func intentRow(in *domain.PaymentIntent) *pgxmock.Rows {
	return pgxmock.NewRows(intentColumnNames()).AddRow(
		in.ID, in.InvoiceID, in.Token, in.Chain, in.DepositAddress, in.TargetAtomic, in.CreditedAtomic,
		string(in.Status), in.CreatedAt, in.UpdatedAt,
	)
}

func TestIntentRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	intent := newTestIntent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_intents").
		WithArgs(intent.ID, intent.InvoiceID, intent.Token, intent.Chain, intent.DepositAddress,
			intent.TargetAtomic, intent.CreditedAtomic, string(intent.Status), intent.CreatedAt, intent.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx, intent))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	intent := newTestIntent()

	mock.ExpectQuery("SELECT .+ FROM payment_intents WHERE id").
		WithArgs(intent.ID).
		WillReturnRows(intentRow(intent))

	result, err := repo.GetByID(context.Background(), intent.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, intent.ID, result.ID)
	assert.Equal(t, intent.Status, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM payment_intents WHERE id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	intent := newTestIntent()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM payment_intents WHERE id .+ FOR UPDATE").
		WithArgs(intent.ID).
		WillReturnRows(intentRow(intent))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	result, err := repo.GetByIDForUpdate(context.Background(), tx, intent.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_ListByInvoiceID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	i1 := newTestIntent()
	i2 := newTestIntent()
	invoiceID := i1.InvoiceID
	i2.InvoiceID = invoiceID

	mock.ExpectQuery("SELECT .+ FROM payment_intents WHERE invoice_id").
		WithArgs(invoiceID).
		WillReturnRows(pgxmock.NewRows(intentColumnNames()).
			AddRow(i1.ID, i1.InvoiceID, i1.Token, i1.Chain, i1.DepositAddress, i1.TargetAtomic, i1.CreditedAtomic, string(i1.Status), i1.CreatedAt, i1.UpdatedAt).
			AddRow(i2.ID, i2.InvoiceID, i2.Token, i2.Chain, i2.DepositAddress, i2.TargetAtomic, i2.CreditedAtomic, string(i2.Status), i2.CreatedAt, i2.UpdatedAt))

	result, err := repo.ListByInvoiceID(context.Background(), invoiceID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_ListActiveByDepositAddressForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	intent := newTestIntent()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM payment_intents.+WHERE chain.+FOR UPDATE").
		WithArgs(intent.Chain, intent.DepositAddress).
		WillReturnRows(intentRow(intent))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	result, err := repo.ListActiveByDepositAddressForUpdate(context.Background(), tx, intent.Chain, intent.DepositAddress)
	require.NoError(t, err)
	assert.Len(t, result, 1)
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_UpdateStatusAndCredited(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	id := uuid.New()
	credited := money.FromInt64(5000000)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_intents SET status").
		WithArgs(string(domain.IntentStatusPartiallyFunded), credited, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatusAndCredited(context.Background(), tx, id, domain.IntentStatusPartiallyFunded, credited))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_ListNonTerminalByInvoiceIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	intent := newTestIntent()
	invoiceID := intent.InvoiceID

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM payment_intents.+WHERE invoice_id.+FOR UPDATE").
		WithArgs(invoiceID, string(domain.IntentStatusExpired), string(domain.IntentStatusCancelled), string(domain.IntentStatusConfirmed)).
		WillReturnRows(intentRow(intent))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	result, err := repo.ListNonTerminalByInvoiceIDForUpdate(context.Background(), tx, invoiceID)
	require.NoError(t, err)
	assert.Len(t, result, 1)
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
