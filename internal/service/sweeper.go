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

const sweeperLeaseName = "expiry-sweeper"

// SweeperServiceImpl implements ports.SweeperService (spec.md §4.4) —
// a lease-coordinated cooperative worker so multiple instances can run
// without wasted contention, grounded on core-coin-nuntiare's AppLock
// table via ports.LeaseRepository.
type SweeperServiceImpl struct {
	invoiceRepo ports.InvoiceRepository
	intentRepo  ports.IntentRepository
	outboxRepo  ports.OutboxRepository
	leaseRepo   ports.LeaseRepository
	transactor  ports.DBTransactor
	instanceID  string
	leaseTTL    time.Duration
	log         zerolog.Logger
}

// NewSweeperService creates a new SweeperServiceImpl.
func NewSweeperService(
	invoiceRepo ports.InvoiceRepository,
	intentRepo ports.IntentRepository,
	outboxRepo ports.OutboxRepository,
	leaseRepo ports.LeaseRepository,
	transactor ports.DBTransactor,
	instanceID string,
	leaseTTL time.Duration,
	log zerolog.Logger,
) *SweeperServiceImpl {
	return &SweeperServiceImpl{
		invoiceRepo: invoiceRepo,
		intentRepo:  intentRepo,
		outboxRepo:  outboxRepo,
		leaseRepo:   leaseRepo,
		transactor:  transactor,
		instanceID:  instanceID,
		leaseTTL:    leaseTTL,
		log:         log,
	}
}

// SweepExpired acquires the sweeper lease and, if won, transitions
// every invoice past expiry in bounded batches, one transaction per
// invoice (spec.md §4.4).
func (s *SweeperServiceImpl) SweepExpired(ctx context.Context, batchSize int) (int, error) {
	won, err := s.leaseRepo.TryAcquire(ctx, sweeperLeaseName, s.instanceID, s.leaseTTL)
	if err != nil {
		return 0, apperror.ErrLockTimeout(fmt.Errorf("acquire sweeper lease: %w", err))
	}
	if !won {
		return 0, nil
	}
	defer func() {
		if err := s.leaseRepo.Release(ctx, sweeperLeaseName, s.instanceID); err != nil {
			s.log.Warn().Err(err).Msg("failed to release sweeper lease")
		}
	}()

	invoices, err := s.invoiceRepo.ListExpirable(ctx, time.Now().UTC(), batchSize)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("list expirable invoices: %w", err))
	}

	swept := 0
	for _, invoice := range invoices {
		if err := s.sweepOne(ctx, invoice.ID); err != nil {
			s.log.Error().Err(err).Str("invoice_id", invoice.ID.String()).Msg("failed to sweep invoice")
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *SweeperServiceImpl) sweepOne(ctx context.Context, invoiceID uuid.UUID) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return fmt.Errorf("lock invoice: %w", err)
	}
	if invoice == nil || !invoice.CanExpire() {
		return tx.Commit(ctx)
	}

	intents, err := s.intentRepo.ListNonTerminalByInvoiceIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return fmt.Errorf("lock intents: %w", err)
	}

	hasPartialCredit := false
	var partialIntentID uuid.UUID
	for _, intent := range intents {
		if intent.CreditedAtomic.IsPositive() {
			hasPartialCredit = true
			partialIntentID = intent.ID
		}
		newStatus := statemachine.ApplyIntentExpiry(intent.Status)
		if newStatus != intent.Status {
			if err := s.intentRepo.UpdateStatusAndCredited(ctx, tx, intent.ID, newStatus, intent.CreditedAtomic); err != nil {
				return fmt.Errorf("expire intent %s: %w", intent.ID, err)
			}
		}
	}

	result := statemachine.ApplyExpiry(invoice.Status, hasPartialCredit)
	if result.NewInvoiceStatus == invoice.Status {
		return tx.Commit(ctx)
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, tx, invoice.ID, result.NewInvoiceStatus); err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}

	now := time.Now().UTC()
	for _, effect := range result.Effects {
		body, err := json.Marshal(outboxPayload{IntentID: partialIntentID})
		if err != nil {
			return fmt.Errorf("marshal outbox payload: %w", err)
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
			return fmt.Errorf("insert outbox record: %w", err)
		}
	}

	return tx.Commit(ctx)
}
