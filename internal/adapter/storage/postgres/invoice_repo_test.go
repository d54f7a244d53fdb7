package postgres

import (
	"context"
	"encoding/json"
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

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestInvoice() *domain.Invoice {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Invoice{
		ID:              uuid.New(),
		MerchantID:      uuid.New(),
		MerchantOrderID: "order-123",
		FiatAmountCents: money.FromInt64(1000),
		Currency:        "USD",
		AllowedOptions:  []domain.PaymentOption{{Token: "USDT", Chain: "arb"}},
		CallbackURL:     "https://merchant.example/hooks",
		Status:          domain.InvoiceStatusPending,
		ExpiresAt:       now.Add(30 * time.Minute),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func invoiceRow(inv *domain.Invoice) *pgxmock.Rows {
	options := mustJSON(inv.AllowedOptions)
	return pgxmock.NewRows([]string{
		"id", "merchant_id", "merchant_order_id", "fiat_amount_cents", "currency", "allowed_options",
		"callback_url", "status", "expires_at", "created_at", "updated_at",
	}).AddRow(
		inv.ID, inv.MerchantID, inv.MerchantOrderID, inv.FiatAmountCents, inv.Currency, options,
		inv.CallbackURL, string(inv.Status), inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
}

func TestInvoiceRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(inv.ID, inv.MerchantID, inv.MerchantOrderID, inv.FiatAmountCents, inv.Currency,
			pgxmock.AnyArg(), inv.CallbackURL, string(inv.Status), inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx, inv))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id").
		WithArgs(inv.ID).
		WillReturnRows(invoiceRow(inv))

	result, err := repo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, inv.ID, result.ID)
	assert.Equal(t, inv.Status, result.Status)
	require.Len(t, result.AllowedOptions, 1)
	assert.Equal(t, "USDT", result.AllowedOptions[0].Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id .+ FOR UPDATE").
		WithArgs(inv.ID).
		WillReturnRows(invoiceRow(inv))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	result, err := repo.GetByIDForUpdate(context.Background(), tx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, inv.ID, result.ID)
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByMerchantOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE merchant_id").
		WithArgs(inv.MerchantID, inv.MerchantOrderID).
		WillReturnRows(invoiceRow(inv))

	result, err := repo.GetByMerchantOrderID(context.Background(), inv.MerchantID, inv.MerchantOrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, inv.MerchantOrderID, result.MerchantOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByMerchantOrderID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	merchantID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE merchant_id").
		WithArgs(merchantID, "missing-order").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByMerchantOrderID(context.Background(), merchantID, "missing-order")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invoices SET status").
		WithArgs(string(domain.InvoiceStatusPaid), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), tx, id, domain.InvoiceStatusPaid))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_ListExpirable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv1 := newTestInvoice()
	inv2 := newTestInvoice()
	before := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM invoices").
		WithArgs(string(domain.InvoiceStatusPending), string(domain.InvoiceStatusUnderpaid), before, 50).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "merchant_id", "merchant_order_id", "fiat_amount_cents", "currency", "allowed_options",
			"callback_url", "status", "expires_at", "created_at", "updated_at",
		}).AddRow(
			inv1.ID, inv1.MerchantID, inv1.MerchantOrderID, inv1.FiatAmountCents, inv1.Currency, mustJSON(inv1.AllowedOptions),
			inv1.CallbackURL, string(inv1.Status), inv1.ExpiresAt, inv1.CreatedAt, inv1.UpdatedAt,
		).AddRow(
			inv2.ID, inv2.MerchantID, inv2.MerchantOrderID, inv2.FiatAmountCents, inv2.Currency, mustJSON(inv2.AllowedOptions),
			inv2.CallbackURL, string(inv2.Status), inv2.ExpiresAt, inv2.CreatedAt, inv2.UpdatedAt,
		))

	result, err := repo.ListExpirable(context.Background(), before, 50)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
