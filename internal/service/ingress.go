package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/internal/core/statemachine"
	"stablegate/internal/money"
	"stablegate/pkg/apperror"
)

// outboxPayload is the JSON body stored on an OutboxRecord. InvoiceID
// is already a first-class column on the record; this carries only
// the kind-specific extras the dispatcher needs to build a callback
// (spec.md §6 "Outbound callback to merchant").
type outboxPayload struct {
	IntentID      uuid.UUID `json:"intent_id,omitempty"`
	TransferID    uuid.UUID `json:"transfer_id,omitempty"`
	SurplusAtomic string    `json:"surplus_atomic,omitempty"`
}

// IngressServiceImpl implements ports.IngressService — the matcher
// described in spec.md §4.2, one transaction per event.
type IngressServiceImpl struct {
	invoiceRepo   ports.InvoiceRepository
	intentRepo    ports.IntentRepository
	transferRepo  ports.TransferRepository
	fundRepo      ports.IntentFundRepository
	outboxRepo    ports.OutboxRepository
	unmatchedRepo ports.UnmatchedTransferRepository
	poisonRepo    ports.PoisonEventRepository
	transactor    ports.DBTransactor
	log           zerolog.Logger
}

// NewIngressService creates a new IngressServiceImpl.
func NewIngressService(
	invoiceRepo ports.InvoiceRepository,
	intentRepo ports.IntentRepository,
	transferRepo ports.TransferRepository,
	fundRepo ports.IntentFundRepository,
	outboxRepo ports.OutboxRepository,
	unmatchedRepo ports.UnmatchedTransferRepository,
	poisonRepo ports.PoisonEventRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *IngressServiceImpl {
	return &IngressServiceImpl{
		invoiceRepo:   invoiceRepo,
		intentRepo:    intentRepo,
		transferRepo:  transferRepo,
		fundRepo:      fundRepo,
		outboxRepo:    outboxRepo,
		unmatchedRepo: unmatchedRepo,
		poisonRepo:    poisonRepo,
		transactor:    transactor,
		log:           log,
	}
}

// IngestTransferEvent runs the matcher algorithm (spec.md §4.2) in a
// single transaction: insert, lookup intent under lock, credit, emit
// outbox rows, commit. Duplicate (chain, txHash, logIndex) and
// zero-amount transfers both return success without mutating intent
// or invoice state.
func (s *IngressServiceImpl) IngestTransferEvent(ctx context.Context, event domain.TransferEvent) error {
	existing, err := s.transferRepo.GetByChainEvent(ctx, event.Chain, event.TxHash, event.LogIndex)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("check existing transfer: %w", err))
	}
	if existing != nil {
		return nil
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	transfer := &domain.Transfer{
		ID:            uuid.New(),
		Chain:         event.Chain,
		TxHash:        event.TxHash,
		LogIndex:      event.LogIndex,
		TokenContract: event.Token,
		ToAddress:     event.To,
		AtomicAmount:  event.Amount,
		BlockNumber:   event.BlockNumber,
		FirstSeenAt:   now,
		LastSeenAt:    now,
	}
	if err := s.transferRepo.Create(ctx, tx, transfer); err != nil {
		if errors.Is(err, ports.ErrAlreadyExists) {
			return nil
		}
		return apperror.ErrDatabaseError(fmt.Errorf("insert transfer: %w", err))
	}

	// Zero-amount transfers are recorded but never credited (spec.md
	// §4.1 "Tie-breaks and edge cases").
	if event.Amount.IsZero() {
		return tx.Commit(ctx)
	}

	candidates, err := s.intentRepo.ListActiveByDepositAddressForUpdate(ctx, tx, event.Chain, event.To)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock candidate intents: %w", err))
	}
	intent := pickIntent(candidates)
	if intent == nil {
		unmatched := &domain.UnmatchedTransfer{
			ID:            uuid.New(),
			Chain:         event.Chain,
			TokenContract: event.Token,
			ToAddress:     event.To,
			TransferID:    transfer.ID,
			AtomicAmount:  event.Amount,
			CreatedAt:     now,
		}
		if err := s.unmatchedRepo.Create(ctx, tx, unmatched); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("insert unmatched transfer: %w", err))
		}
		return tx.Commit(ctx)
	}

	invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, tx, intent.InvoiceID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock invoice: %w", err))
	}
	if invoice == nil {
		violation := fmt.Errorf("intent %s references missing invoice %s", intent.ID, intent.InvoiceID)
		s.quarantine(ctx, event, violation)
		return apperror.ErrInvariantViolation(violation)
	}

	if err := applyCreditAndPersist(ctx, tx, s.intentRepo, s.invoiceRepo, s.fundRepo, s.outboxRepo, invoice, intent, transfer.ID, event.Amount, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// applyCreditAndPersist folds transferAmount into intent via
// statemachine.ApplyCredit and persists every resulting effect: the
// intent's new status/credited total, the invoice's new status (if
// changed), the funding record, and any outbox rows. invoice and
// intent are mutated in place so a caller crediting several transfers
// in sequence (spec.md §4.1 "re-evaluated whenever a new intent is
// created") sees each one's effect on the next.
func applyCreditAndPersist(
	ctx context.Context,
	tx pgx.Tx,
	intentRepo ports.IntentRepository,
	invoiceRepo ports.InvoiceRepository,
	fundRepo ports.IntentFundRepository,
	outboxRepo ports.OutboxRepository,
	invoice *domain.Invoice,
	intent *domain.PaymentIntent,
	transferID uuid.UUID,
	transferAmount money.Amount,
	now time.Time,
) error {
	result := statemachine.ApplyCredit(invoice, intent, transferAmount)

	if err := intentRepo.UpdateStatusAndCredited(ctx, tx, intent.ID, result.NewIntentStatus, result.NewCreditedAtomic); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update intent: %w", err))
	}
	if result.NewInvoiceStatus != invoice.Status {
		if err := invoiceRepo.UpdateStatus(ctx, tx, invoice.ID, result.NewInvoiceStatus); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("update invoice: %w", err))
		}
	}

	fund := &domain.IntentFund{
		ID:             uuid.New(),
		IntentID:       intent.ID,
		TransferID:     transferID,
		CreditedAtomic: transferAmount,
		CreatedAt:      now,
	}
	if err := fundRepo.Create(ctx, tx, fund); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("insert intent fund: %w", err))
	}

	for _, effect := range result.Effects {
		if err := writeOutboxRecord(ctx, tx, outboxRepo, invoice.ID, intent.ID, transferID, effect, now); err != nil {
			return err
		}
	}

	intent.Status = result.NewIntentStatus
	intent.CreditedAtomic = result.NewCreditedAtomic
	invoice.Status = result.NewInvoiceStatus
	return nil
}

func writeOutboxRecord(ctx context.Context, tx pgx.Tx, outboxRepo ports.OutboxRepository, invoiceID, intentID, transferID uuid.UUID, effect statemachine.Effect, now time.Time) error {
	payload := outboxPayload{IntentID: intentID, TransferID: transferID}
	if effect.Kind == domain.OutboxKindOverpayment || effect.Kind == domain.OutboxKindOverpaymentAfterTerminal || effect.Kind == domain.OutboxKindLateFunds {
		payload.SurplusAtomic = surplusString(effect.SurplusAtomic)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal outbox payload: %w", err))
	}

	record := &domain.OutboxRecord{
		ID:            uuid.New(),
		Kind:          effect.Kind,
		InvoiceID:     invoiceID,
		DeliveryID:    uuid.New(),
		Payload:       body,
		Status:        domain.OutboxStatusPending,
		CreatedAt:     now,
		NextAttemptAt: now,
		AttemptCount:  0,
	}
	if err := outboxRepo.Create(ctx, tx, record); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("insert outbox record: %w", err))
	}
	return nil
}

func surplusString(a money.Amount) string {
	return a.String()
}

// quarantine records an event that hit an invariant violation so the
// aborted transaction does not silently lose it (spec.md §7). Best
// effort: a failure here is logged, not propagated, since the caller
// already has a harder error to report.
func (s *IngressServiceImpl) quarantine(ctx context.Context, event domain.TransferEvent, reason error) {
	raw, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal poison event payload")
		return
	}
	poisonEvent := &domain.PoisonEvent{
		ID:            uuid.NewString(),
		Chain:         event.Chain,
		TxHash:        event.TxHash,
		LogIndex:      event.LogIndex,
		RawPayload:    raw,
		Reason:        reason.Error(),
		QuarantinedAt: time.Now().UTC(),
	}
	if err := s.poisonRepo.Create(ctx, poisonEvent); err != nil {
		s.log.Error().Err(err).Str("tx_hash", event.TxHash).Msg("failed to quarantine poison event")
	}
}

// pickIntent applies spec.md §4.1's deposit-address tie-break: two
// intents share an address only if one is already failed-terminal
// (EXPIRED/CANCELLED); prefer the non-terminal one, else the most
// recently created. candidates is already ordered created_at ASC by
// the repository, so the last non-failed-terminal entry is the most
// recently created one.
func pickIntent(candidates []domain.PaymentIntent) *domain.PaymentIntent {
	var picked *domain.PaymentIntent
	for i := range candidates {
		c := &candidates[i]
		if c.Status.IsFailedTerminal() {
			continue
		}
		picked = c
	}
	if picked != nil {
		return picked
	}
	if len(candidates) > 0 {
		return &candidates[len(candidates)-1]
	}
	return nil
}
