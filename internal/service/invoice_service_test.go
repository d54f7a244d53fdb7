package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/internal/core/ports/mocks"
	"stablegate/internal/money"
)

type invoiceTestDeps struct {
	svc           *InvoiceServiceImpl
	invoiceRepo   *mocks.MockInvoiceRepository
	intentRepo    *mocks.MockIntentRepository
	transferRepo  *mocks.MockTransferRepository
	fundRepo      *mocks.MockIntentFundRepository
	outboxRepo    *mocks.MockOutboxRepository
	unmatchedRepo *mocks.MockUnmatchedTransferRepository
	allocator     *mocks.MockDepositAddressAllocator
	pricing       *mocks.MockPricingCalculator
	idempCache    *mocks.MockIdempotencyCache
	idempRepo     *mocks.MockIdempotencyRepository
	transactor    *mocks.MockDBTransactor
	ctrl          *gomock.Controller
}

func setupInvoiceService(t *testing.T) *invoiceTestDeps {
	ctrl := gomock.NewController(t)
	d := &invoiceTestDeps{
		invoiceRepo:   mocks.NewMockInvoiceRepository(ctrl),
		intentRepo:    mocks.NewMockIntentRepository(ctrl),
		transferRepo:  mocks.NewMockTransferRepository(ctrl),
		fundRepo:      mocks.NewMockIntentFundRepository(ctrl),
		outboxRepo:    mocks.NewMockOutboxRepository(ctrl),
		unmatchedRepo: mocks.NewMockUnmatchedTransferRepository(ctrl),
		allocator:     mocks.NewMockDepositAddressAllocator(ctrl),
		pricing:       mocks.NewMockPricingCalculator(ctrl),
		idempCache:    mocks.NewMockIdempotencyCache(ctrl),
		idempRepo:     mocks.NewMockIdempotencyRepository(ctrl),
		transactor:    mocks.NewMockDBTransactor(ctrl),
		ctrl:          ctrl,
	}
	d.svc = NewInvoiceService(
		d.invoiceRepo, d.intentRepo, d.transferRepo, d.fundRepo, d.outboxRepo,
		d.unmatchedRepo, d.allocator, d.pricing, d.idempCache, d.idempRepo,
		d.transactor, defaultInvoiceExpiry, zerolog.Nop(),
	)
	return d
}

func sampleCreateInvoiceRequest(merchantID uuid.UUID) ports.CreateInvoiceRequest {
	return ports.CreateInvoiceRequest{
		MerchantID:      merchantID,
		MerchantOrderID: "ORDER-001",
		FiatAmountCents: money.FromInt64(10000),
		Currency:        "USD",
		AllowedOptions:  []domain.PaymentOption{{Token: "USDT", Chain: "eth"}},
		CallbackURL:     "https://merchant.example/cb",
		IdempotencyKey:  "idem-key-1",
	}
}

func TestInvoiceService_CreateInvoice_Success(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	req := sampleCreateInvoiceRequest(merchantID)
	tx := &mockTx{}

	compositeKey := domain.BuildKey(domain.IdempotencyScopeCreateInvoice, merchantID.String(), req.IdempotencyKey)

	d.idempCache.EXPECT().Get(ctx, compositeKey).Return(nil, nil)
	d.idempRepo.EXPECT().Get(ctx, domain.IdempotencyScopeCreateInvoice, compositeKey).Return(nil, nil)
	d.invoiceRepo.EXPECT().GetByMerchantOrderID(ctx, merchantID, req.MerchantOrderID).Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.invoiceRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.idempRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.idempCache.EXPECT().Set(ctx, compositeKey, gomock.Any(), idempotencyTTL).Return(nil)

	invoice, err := d.svc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.Equal(t, merchantID, invoice.MerchantID)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
}

func TestInvoiceService_CreateInvoice_MissingIdempotencyKey(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	req := sampleCreateInvoiceRequest(uuid.New())
	req.IdempotencyKey = ""

	invoice, err := d.svc.CreateInvoice(context.Background(), req)
	assert.Nil(t, invoice)
	assertAppError(t, err, "IDM_001")
}

func TestInvoiceService_CreateInvoice_InvalidFiatAmount(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	req := sampleCreateInvoiceRequest(uuid.New())
	req.FiatAmountCents = money.Zero()

	invoice, err := d.svc.CreateInvoice(context.Background(), req)
	assert.Nil(t, invoice)
	assertAppError(t, err, "INV_004")
}

func TestInvoiceService_CreateInvoice_DuplicateMerchantOrderID(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	req := sampleCreateInvoiceRequest(merchantID)
	compositeKey := domain.BuildKey(domain.IdempotencyScopeCreateInvoice, merchantID.String(), req.IdempotencyKey)

	d.idempCache.EXPECT().Get(ctx, compositeKey).Return(nil, nil)
	d.idempRepo.EXPECT().Get(ctx, domain.IdempotencyScopeCreateInvoice, compositeKey).Return(nil, nil)
	d.invoiceRepo.EXPECT().GetByMerchantOrderID(ctx, merchantID, req.MerchantOrderID).Return(&domain.Invoice{ID: uuid.New()}, nil)

	invoice, err := d.svc.CreateInvoice(ctx, req)
	assert.Nil(t, invoice)
	assertAppError(t, err, "INV_002")
}

func TestInvoiceService_CreateInvoice_IdempotentReplay(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	req := sampleCreateInvoiceRequest(merchantID)
	compositeKey := domain.BuildKey(domain.IdempotencyScopeCreateInvoice, merchantID.String(), req.IdempotencyKey)

	cached := &domain.Invoice{ID: uuid.New(), MerchantID: merchantID, MerchantOrderID: req.MerchantOrderID}
	cachedJSON, err := json.Marshal(cached)
	require.NoError(t, err)
	entry, err := json.Marshal(cacheEntry{
		Fingerprint: fingerprintCreateInvoiceRequest(req),
		Response:    cachedJSON,
	})
	require.NoError(t, err)

	d.idempCache.EXPECT().Get(ctx, compositeKey).Return(entry, nil)

	invoice, err := d.svc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, cached.ID, invoice.ID)
}

func TestInvoiceService_GetInvoice_Found(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	want := &domain.Invoice{ID: id, Status: domain.InvoiceStatusPending}
	d.invoiceRepo.EXPECT().GetByID(ctx, id).Return(want, nil)

	got, err := d.svc.GetInvoice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInvoiceService_GetInvoice_NotFound(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	d.invoiceRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	got, err := d.svc.GetInvoice(ctx, id)
	assert.Nil(t, got)
	assertAppError(t, err, "INV_001")
}

func TestInvoiceService_CreateIntent_Success(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	invoiceID := uuid.New()
	tx := &mockTx{}
	invoice := &domain.Invoice{
		ID:             invoiceID,
		Status:         domain.InvoiceStatusPending,
		Currency:       "USD",
		FiatAmountCents: money.FromInt64(10000),
		AllowedOptions: []domain.PaymentOption{{Token: "USDT", Chain: "eth"}},
	}
	req := ports.CreateIntentRequest{InvoiceID: invoiceID, Token: "USDT", Chain: "eth"}

	d.invoiceRepo.EXPECT().GetByID(ctx, invoiceID).Return(invoice, nil)
	d.pricing.EXPECT().ToAtomicAmount(ctx, invoice.FiatAmountCents, "USD", "USDT", "eth").Return(money.FromInt64(10000000), nil)
	d.allocator.EXPECT().Allocate(ctx, "eth", "USDT").Return("0xdeposit", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.intentRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.unmatchedRepo.EXPECT().ListUnresolvedByAddress(ctx, "eth", "USDT", "0xdeposit").Return(nil, nil)

	intent, err := d.svc.CreateIntent(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.Equal(t, "0xdeposit", intent.DepositAddress)
	assert.Equal(t, domain.IntentStatusAwaitingFunds, intent.Status)
}

func TestInvoiceService_CreateIntent_InvoiceNotFound(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	invoiceID := uuid.New()
	d.invoiceRepo.EXPECT().GetByID(ctx, invoiceID).Return(nil, nil)

	intent, err := d.svc.CreateIntent(ctx, ports.CreateIntentRequest{InvoiceID: invoiceID, Token: "USDT", Chain: "eth"})
	assert.Nil(t, intent)
	assertAppError(t, err, "INV_001")
}

func TestInvoiceService_CreateIntent_NotAcceptingIntents(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	invoiceID := uuid.New()
	invoice := &domain.Invoice{ID: invoiceID, Status: domain.InvoiceStatusCancelled}
	d.invoiceRepo.EXPECT().GetByID(ctx, invoiceID).Return(invoice, nil)

	intent, err := d.svc.CreateIntent(ctx, ports.CreateIntentRequest{InvoiceID: invoiceID, Token: "USDT", Chain: "eth"})
	assert.Nil(t, intent)
	assertAppError(t, err, "MTH_003")
}

func TestInvoiceService_CreateIntent_OptionNotAllowed(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	invoiceID := uuid.New()
	invoice := &domain.Invoice{
		ID:             invoiceID,
		Status:         domain.InvoiceStatusPending,
		AllowedOptions: []domain.PaymentOption{{Token: "USDC", Chain: "eth"}},
	}
	d.invoiceRepo.EXPECT().GetByID(ctx, invoiceID).Return(invoice, nil)

	intent, err := d.svc.CreateIntent(ctx, ports.CreateIntentRequest{InvoiceID: invoiceID, Token: "USDT", Chain: "eth"})
	assert.Nil(t, intent)
	assertAppError(t, err, "MTH_001")
}

func TestInvoiceService_CreateIntent_ReplaysUnmatchedTransfer(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	invoiceID := uuid.New()
	tx := &mockTx{}
	invoice := &domain.Invoice{
		ID:             invoiceID,
		Status:         domain.InvoiceStatusPending,
		Currency:       "USD",
		FiatAmountCents: money.FromInt64(10000),
		AllowedOptions: []domain.PaymentOption{{Token: "USDT", Chain: "eth"}},
	}
	req := ports.CreateIntentRequest{InvoiceID: invoiceID, Token: "USDT", Chain: "eth"}
	unmatchedID := uuid.New()
	transferID := uuid.New()

	d.invoiceRepo.EXPECT().GetByID(ctx, invoiceID).Return(invoice, nil)
	d.pricing.EXPECT().ToAtomicAmount(ctx, invoice.FiatAmountCents, "USD", "USDT", "eth").Return(money.FromInt64(10000000), nil)
	d.allocator.EXPECT().Allocate(ctx, "eth", "USDT").Return("0xdeposit", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.intentRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.unmatchedRepo.EXPECT().ListUnresolvedByAddress(ctx, "eth", "USDT", "0xdeposit").Return([]domain.UnmatchedTransfer{
		{ID: unmatchedID, TransferID: transferID, AtomicAmount: money.FromInt64(5000000)},
	}, nil)
	d.invoiceRepo.EXPECT().GetByIDForUpdate(ctx, tx, invoiceID).Return(invoice, nil)
	d.intentRepo.EXPECT().UpdateStatusAndCredited(ctx, tx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.invoiceRepo.EXPECT().UpdateStatus(ctx, tx, invoiceID, domain.InvoiceStatusUnderpaid).Return(nil)
	d.fundRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.outboxRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.unmatchedRepo.EXPECT().MarkResolved(ctx, tx, unmatchedID).Return(nil)

	intent, err := d.svc.CreateIntent(ctx, req)
	require.NoError(t, err)
	assert.True(t, intent.CreditedAtomic.IsPositive())
}

func TestInvoiceService_ListTransfers(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	invoiceID := uuid.New()
	intentID := uuid.New()
	transfer := domain.Transfer{ID: uuid.New(), Chain: "eth"}

	d.intentRepo.EXPECT().ListByInvoiceID(ctx, invoiceID).Return([]domain.PaymentIntent{{ID: intentID}}, nil)
	d.transferRepo.EXPECT().ListByIntentID(ctx, intentID).Return([]domain.Transfer{transfer}, nil)

	transfers, err := d.svc.ListTransfers(ctx, invoiceID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, transfer.ID, transfers[0].ID)
}

func TestInvoiceService_CancelInvoice_PendingToCancelled(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	tx := &mockTx{}
	invoice := &domain.Invoice{ID: id, Status: domain.InvoiceStatusPending}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.invoiceRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(invoice, nil)
	d.invoiceRepo.EXPECT().UpdateStatus(ctx, tx, id, domain.InvoiceStatusCancelled).Return(nil)
	d.outboxRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	got, err := d.svc.CancelInvoice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusCancelled, got.Status)
}

func TestInvoiceService_CancelInvoice_AlreadyTerminalNoOp(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	tx := &mockTx{}
	invoice := &domain.Invoice{ID: id, Status: domain.InvoiceStatusConfirmed}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.invoiceRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(invoice, nil)

	got, err := d.svc.CancelInvoice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusConfirmed, got.Status)
}

func TestInvoiceService_CancelInvoice_NotFound(t *testing.T) {
	d := setupInvoiceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.invoiceRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(nil, nil)

	got, err := d.svc.CancelInvoice(ctx, id)
	assert.Nil(t, got)
	assertAppError(t, err, "INV_001")
}
