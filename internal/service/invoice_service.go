package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/pkg/apperror"
)

const defaultInvoiceExpiry = 30 * time.Minute

// InvoiceServiceImpl implements ports.InvoiceService — the
// merchant-facing invoice and intent lifecycle operations of spec.md
// §5, grounded on the teacher's PaymentServiceImpl two-layer
// idempotency discipline.
type InvoiceServiceImpl struct {
	invoiceRepo   ports.InvoiceRepository
	intentRepo    ports.IntentRepository
	transferRepo  ports.TransferRepository
	fundRepo      ports.IntentFundRepository
	outboxRepo    ports.OutboxRepository
	unmatchedRepo ports.UnmatchedTransferRepository
	allocator     ports.DepositAddressAllocator
	pricing       ports.PricingCalculator
	transactor    ports.DBTransactor
	guard         *idempotencyGuard
	defaultTTL    time.Duration
	log           zerolog.Logger
}

// NewInvoiceService creates a new InvoiceServiceImpl.
func NewInvoiceService(
	invoiceRepo ports.InvoiceRepository,
	intentRepo ports.IntentRepository,
	transferRepo ports.TransferRepository,
	fundRepo ports.IntentFundRepository,
	outboxRepo ports.OutboxRepository,
	unmatchedRepo ports.UnmatchedTransferRepository,
	allocator ports.DepositAddressAllocator,
	pricing ports.PricingCalculator,
	idempCache ports.IdempotencyCache,
	idempRepo ports.IdempotencyRepository,
	transactor ports.DBTransactor,
	defaultTTL time.Duration,
	log zerolog.Logger,
) *InvoiceServiceImpl {
	if defaultTTL <= 0 {
		defaultTTL = defaultInvoiceExpiry
	}
	return &InvoiceServiceImpl{
		invoiceRepo:   invoiceRepo,
		intentRepo:    intentRepo,
		transferRepo:  transferRepo,
		fundRepo:      fundRepo,
		outboxRepo:    outboxRepo,
		unmatchedRepo: unmatchedRepo,
		allocator:     allocator,
		pricing:       pricing,
		transactor:    transactor,
		guard:         newIdempotencyGuard(idempCache, idempRepo, log),
		defaultTTL:    defaultTTL,
		log:           log,
	}
}

// CreateInvoice creates a new invoice, deduplicated by Idempotency-Key
// within the merchant's scope (spec.md §6 "same key with same
// fingerprint returns the prior response").
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, req ports.CreateInvoiceRequest) (*domain.Invoice, error) {
	if req.IdempotencyKey == "" {
		return nil, apperror.ErrIdempotencyKeyMissing()
	}
	if !req.FiatAmountCents.IsPositive() {
		return nil, apperror.ErrInvalidFiatAmount()
	}

	compositeKey := domain.BuildKey(domain.IdempotencyScopeCreateInvoice, req.MerchantID.String(), req.IdempotencyKey)
	fingerprint := fingerprintCreateInvoiceRequest(req)

	if cached, err := s.guard.check(ctx, domain.IdempotencyScopeCreateInvoice, compositeKey, fingerprint); err != nil {
		return nil, err
	} else if cached != nil {
		return unmarshalInvoice(cached)
	}

	if existing, err := s.invoiceRepo.GetByMerchantOrderID(ctx, req.MerchantID, req.MerchantOrderID); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check existing merchant order id: %w", err))
	} else if existing != nil {
		return nil, apperror.ErrDuplicateMerchantOrderID()
	}

	ttl := s.defaultTTL
	if req.ExpiresInSec > 0 {
		ttl = time.Duration(req.ExpiresInSec) * time.Second
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:              uuid.New(),
		MerchantID:      req.MerchantID,
		MerchantOrderID: req.MerchantOrderID,
		FiatAmountCents: req.FiatAmountCents,
		Currency:        req.Currency,
		AllowedOptions:  req.AllowedOptions,
		CallbackURL:     req.CallbackURL,
		Status:          domain.InvoiceStatusPending,
		ExpiresAt:       now.Add(ttl),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.invoiceRepo.Create(ctx, tx, invoice); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("insert invoice: %w", err))
	}

	respBody, err := json.Marshal(invoice)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal invoice response: %w", err))
	}
	if err := s.guard.store(ctx, tx, domain.IdempotencyScopeCreateInvoice, compositeKey, fingerprint, respBody, 201); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store idempotency record: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.guard.cacheAfterCommit(ctx, compositeKey, fingerprint, respBody)

	s.log.Info().Str("invoice_id", invoice.ID.String()).Str("merchant_id", invoice.MerchantID.String()).Msg("invoice created")
	return invoice, nil
}

// GetInvoice returns the current invoice view (spec.md §6 "GET
// /api/invoices/{id}").
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}
	return invoice, nil
}

// CreateIntent selects a payment option on an invoice, allocating a
// dedicated deposit address and computing the atomic target amount
// through the out-of-scope pricing calculator (spec.md §6 "POST
// /api/invoices/{id}/intents").
func (s *InvoiceServiceImpl) CreateIntent(ctx context.Context, req ports.CreateIntentRequest) (*domain.PaymentIntent, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}
	if !invoice.CanReceiveFunds() {
		return nil, apperror.ErrInvoiceNotAcceptingIntents()
	}
	if !optionAllowed(invoice.AllowedOptions, req.Token, req.Chain) {
		return nil, apperror.ErrPaymentOptionNotAllowed()
	}

	targetAtomic, err := s.pricing.ToAtomicAmount(ctx, invoice.FiatAmountCents, invoice.Currency, req.Token, req.Chain)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("compute atomic target: %w", err))
	}
	depositAddress, err := s.allocator.Allocate(ctx, req.Chain, req.Token)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("allocate deposit address: %w", err))
	}

	now := time.Now().UTC()
	intent := &domain.PaymentIntent{
		ID:             uuid.New(),
		InvoiceID:      invoice.ID,
		Token:          req.Token,
		Chain:          req.Chain,
		DepositAddress: depositAddress,
		TargetAtomic:   targetAtomic,
		Status:         domain.IntentStatusAwaitingFunds,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.intentRepo.Create(ctx, tx, intent); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("insert intent: %w", err))
	}

	if err := s.replayUnmatchedTransfers(ctx, tx, invoice, intent, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	return intent, nil
}

// replayUnmatchedTransfers re-evaluates transfers buffered against
// this deposit address before the intent existed (spec.md §4.1: a
// buffered transfer is "re-evaluated whenever a new intent is created
// with that address"). Each one is folded into the fresh intent
// through the same credit rule a live transfer event uses, oldest
// first, and marked resolved so it is never replayed again.
func (s *InvoiceServiceImpl) replayUnmatchedTransfers(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice, intent *domain.PaymentIntent, now time.Time) error {
	unresolved, err := s.unmatchedRepo.ListUnresolvedByAddress(ctx, intent.Chain, intent.Token, intent.DepositAddress)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("list unresolved transfers: %w", err))
	}
	if len(unresolved) == 0 {
		return nil
	}

	locked, err := s.invoiceRepo.GetByIDForUpdate(ctx, tx, invoice.ID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock invoice: %w", err))
	}
	if locked == nil {
		return apperror.ErrInvoiceNotFound()
	}

	for _, um := range unresolved {
		if um.AtomicAmount.IsZero() {
			if err := s.unmatchedRepo.MarkResolved(ctx, tx, um.ID); err != nil {
				return apperror.ErrDatabaseError(fmt.Errorf("mark unmatched transfer resolved: %w", err))
			}
			continue
		}
		if err := applyCreditAndPersist(ctx, tx, s.intentRepo, s.invoiceRepo, s.fundRepo, s.outboxRepo, locked, intent, um.TransferID, um.AtomicAmount, now); err != nil {
			return err
		}
		if err := s.unmatchedRepo.MarkResolved(ctx, tx, um.ID); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("mark unmatched transfer resolved: %w", err))
		}
	}
	return nil
}

// ListTransfers returns every on-chain transfer observed for the
// invoice's intents.
func (s *InvoiceServiceImpl) ListTransfers(ctx context.Context, invoiceID uuid.UUID) ([]domain.Transfer, error) {
	intents, err := s.intentRepo.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list intents: %w", err))
	}

	var out []domain.Transfer
	for _, intent := range intents {
		transfers, err := s.transferRepo.ListByIntentID(ctx, intent.ID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("list transfers for intent %s: %w", intent.ID, err))
		}
		out = append(out, transfers...)
	}
	return out, nil
}

// CancelInvoice transitions a PENDING or UNDERPAID invoice to
// CANCELLED; a cancel on a terminal invoice is a no-op (spec.md §5
// "Cancellation").
func (s *InvoiceServiceImpl) CancelInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}
	if invoice.Status != domain.InvoiceStatusPending && invoice.Status != domain.InvoiceStatusUnderpaid {
		if err := tx.Commit(ctx); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
		}
		return invoice, nil
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, tx, invoice.ID, domain.InvoiceStatusCancelled); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update invoice status: %w", err))
	}

	now := time.Now().UTC()
	body, err := json.Marshal(outboxPayload{})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal outbox payload: %w", err))
	}
	record := &domain.OutboxRecord{
		ID:            uuid.New(),
		Kind:          domain.OutboxKindInvoiceStatusChanged,
		InvoiceID:     invoice.ID,
		DeliveryID:    uuid.New(),
		Payload:       body,
		Status:        domain.OutboxStatusPending,
		CreatedAt:     now,
		NextAttemptAt: now,
	}
	if err := s.outboxRepo.Create(ctx, tx, record); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("insert outbox record: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	invoice.Status = domain.InvoiceStatusCancelled
	return invoice, nil
}

func optionAllowed(options []domain.PaymentOption, token, chain string) bool {
	for _, o := range options {
		if o.Token == token && o.Chain == chain {
			return true
		}
	}
	return false
}

func fingerprintCreateInvoiceRequest(req ports.CreateInvoiceRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", req.MerchantOrderID, req.FiatAmountCents.String(), req.Currency, req.CallbackURL, req.AllowedOptions)
	return hex.EncodeToString(h.Sum(nil))
}

func unmarshalInvoice(data []byte) (*domain.Invoice, error) {
	invoice := &domain.Invoice{}
	if err := json.Unmarshal(data, invoice); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached invoice: %w", err))
	}
	return invoice, nil
}
