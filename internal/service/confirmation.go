package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/internal/core/statemachine"
	"stablegate/pkg/apperror"
)

// ConfirmationServiceImpl implements ports.ConfirmationService (spec.md
// §4.1 "Confirmation rule"). The dispatcher drives this once per
// PAID_AWAITING_CONFIRMATION outbox record, rescheduling itself until
// the invoice either advances to CONFIRMED or a reorg is detected.
type ConfirmationServiceImpl struct {
	invoiceRepo   ports.InvoiceRepository
	intentRepo    ports.IntentRepository
	transferRepo  ports.TransferRepository
	outboxRepo    ports.OutboxRepository
	blockchain    ports.BlockchainReader
	transactor    ports.DBTransactor
	requiredDepth map[string]int64 // chain -> N_confirm, config.ConfirmationsConfig
	log           zerolog.Logger
}

// NewConfirmationService creates a new ConfirmationServiceImpl.
func NewConfirmationService(
	invoiceRepo ports.InvoiceRepository,
	intentRepo ports.IntentRepository,
	transferRepo ports.TransferRepository,
	outboxRepo ports.OutboxRepository,
	blockchain ports.BlockchainReader,
	transactor ports.DBTransactor,
	requiredDepth map[string]int64,
	log zerolog.Logger,
) *ConfirmationServiceImpl {
	return &ConfirmationServiceImpl{
		invoiceRepo:   invoiceRepo,
		intentRepo:    intentRepo,
		transferRepo:  transferRepo,
		outboxRepo:    outboxRepo,
		blockchain:    blockchain,
		transactor:    transactor,
		requiredDepth: requiredDepth,
		log:           log,
	}
}

// CheckConfirmation re-reads current chain height for every intent
// funding the invoice and advances PAID -> CONFIRMED once every
// contributing transfer clears N_confirm, or flags CHARGEBACK_SUSPECTED
// if a previously-confirmed invoice's transfers regress below it.
func (s *ConfirmationServiceImpl) CheckConfirmation(ctx context.Context, invoiceID uuid.UUID) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock invoice: %w", err))
	}
	if invoice == nil {
		return apperror.ErrInvoiceNotFound()
	}
	if invoice.Status != domain.InvoiceStatusPaid && invoice.Status != domain.InvoiceStatusConfirmed {
		return nil
	}

	intents, err := s.intentRepo.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("list intents: %w", err))
	}

	var confirmations []int64
	var fundingChain string
	var fundingIntentID uuid.UUID
	for _, intent := range intents {
		if intent.Status != domain.IntentStatusFunded && intent.Status != domain.IntentStatusOverfunded && intent.Status != domain.IntentStatusConfirmed {
			continue
		}
		fundingChain = intent.Chain
		fundingIntentID = intent.ID
		currentBlock, err := s.blockchain.CurrentBlock(ctx, intent.Chain)
		if err != nil {
			return apperror.ErrBlockchainUnavailable(fmt.Errorf("current block for %s: %w", intent.Chain, err))
		}
		transfers, err := s.transferRepo.ListByIntentID(ctx, intent.ID)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("list transfers: %w", err))
		}
		for _, t := range transfers {
			confirmations = append(confirmations, t.Confirmations(currentBlock))
		}
	}

	required := s.requiredDepth[fundingChain]
	allConfirmed := statemachine.AllConfirmed(confirmations, required)

	result := statemachine.ApplyConfirmation(invoice.Status, allConfirmed)
	if result.NewInvoiceStatus == invoice.Status && len(result.Effects) == 0 {
		return nil
	}

	if result.NewInvoiceStatus != invoice.Status {
		if err := s.invoiceRepo.UpdateStatus(ctx, tx, invoice.ID, result.NewInvoiceStatus); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("update invoice status: %w", err))
		}
	}

	now := time.Now().UTC()
	for _, effect := range result.Effects {
		body, err := json.Marshal(outboxPayload{IntentID: fundingIntentID})
		if err != nil {
			return apperror.InternalError(fmt.Errorf("marshal outbox payload: %w", err))
		}
		record := &domain.OutboxRecord{
			ID:            uuid.New(),
			Kind:          effect.Kind,
			InvoiceID:     invoice.ID,
			DeliveryID:    uuid.New(),
			Payload:       body,
			Status:        domain.OutboxStatusPending,
			CreatedAt:     now,
			NextAttemptAt: now,
		}
		if err := s.outboxRepo.Create(ctx, tx, record); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("insert outbox record: %w", err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}
