package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/pkg/apperror"
)

const (
	dispatchLeaseDuration = 30 * time.Second
	backoffBase           = 5 * time.Second
	backoffCap            = time.Hour
	maxAttemptsBeforeDead = 12
)

// DispatcherServiceImpl implements ports.DispatcherService — the
// claim/deliver loop of spec.md §4.3, grounded on the teacher's
// webhookService signing/delivery discipline but driven by the
// persisted outbox claim protocol instead of an in-process goroutine
// retry loop.
type DispatcherServiceImpl struct {
	outboxRepo   ports.OutboxRepository
	invoiceRepo  ports.InvoiceRepository
	intentRepo   ports.IntentRepository
	merchantRepo ports.MerchantRepository
	transferRepo ports.TransferRepository
	encSvc       ports.EncryptionService
	sigSvc       ports.SignatureService
	confirmSvc   ports.ConfirmationService
	httpClient   *http.Client
	pollInterval time.Duration
	log          zerolog.Logger
}

// NewDispatcherService creates a new DispatcherServiceImpl.
func NewDispatcherService(
	outboxRepo ports.OutboxRepository,
	invoiceRepo ports.InvoiceRepository,
	intentRepo ports.IntentRepository,
	merchantRepo ports.MerchantRepository,
	transferRepo ports.TransferRepository,
	encSvc ports.EncryptionService,
	sigSvc ports.SignatureService,
	confirmSvc ports.ConfirmationService,
	pollInterval time.Duration,
	log zerolog.Logger,
) *DispatcherServiceImpl {
	return &DispatcherServiceImpl{
		outboxRepo:   outboxRepo,
		invoiceRepo:  invoiceRepo,
		intentRepo:   intentRepo,
		merchantRepo: merchantRepo,
		transferRepo: transferRepo,
		encSvc:       encSvc,
		sigSvc:       sigSvc,
		confirmSvc:   confirmSvc,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
		pollInterval: pollInterval,
		log:          log,
	}
}

// DispatchBatch claims up to limit due outbox rows and processes each
// one. A failure processing one row never aborts the batch.
func (s *DispatcherServiceImpl) DispatchBatch(ctx context.Context, limit int) (int, error) {
	claimToken := uuid.New()
	records, err := s.outboxRepo.ClaimBatch(ctx, claimToken, dispatchLeaseDuration, limit)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("claim outbox batch: %w", err))
	}

	for _, record := range records {
		s.processOne(ctx, record, claimToken)
	}
	return len(records), nil
}

func (s *DispatcherServiceImpl) processOne(ctx context.Context, record domain.OutboxRecord, claimToken uuid.UUID) {
	if record.Kind == domain.OutboxKindPaidAwaitingConfirmation {
		s.reschedulePoll(ctx, record, claimToken)
		return
	}

	err := s.handleCallback(ctx, record)

	if err == nil {
		if markErr := s.outboxRepo.MarkDone(ctx, record.ID, claimToken); markErr != nil {
			s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to mark outbox record done")
		}
		return
	}

	if isPermanent, ok := err.(*permanentDeliveryError); ok {
		s.log.Warn().Err(isPermanent.cause).Str("outbox_id", record.ID.String()).Msg("permanent delivery failure, marking dead")
		if markErr := s.outboxRepo.MarkDead(ctx, record.ID, claimToken); markErr != nil {
			s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to mark outbox record dead")
		}
		return
	}

	nextAttempt := record.AttemptCount + 1
	if nextAttempt >= maxAttemptsBeforeDead {
		s.log.Warn().Err(err).Str("outbox_id", record.ID.String()).Int("attempts", nextAttempt).Msg("exhausted retries, marking dead")
		if markErr := s.outboxRepo.MarkDead(ctx, record.ID, claimToken); markErr != nil {
			s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to mark outbox record dead")
		}
		return
	}

	delay := backoffDelay(nextAttempt)
	if markErr := s.outboxRepo.MarkRetry(ctx, record.ID, claimToken, time.Now().UTC().Add(delay), nextAttempt); markErr != nil {
		s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to reschedule outbox record")
	}
}

// reschedulePoll handles PAID_AWAITING_CONFIRMATION rows — a
// self-reschedule loop, not a delivery retry (spec.md §4.3). It never
// backs off and never dies: a chain still producing blocks is not a
// failure, so the generic attempt-cap/backoff path in processOne
// doesn't apply here.
func (s *DispatcherServiceImpl) reschedulePoll(ctx context.Context, record domain.OutboxRecord, claimToken uuid.UUID) {
	err := s.handlePaidAwaitingConfirmation(ctx, record)
	if err == nil {
		if markErr := s.outboxRepo.MarkDone(ctx, record.ID, claimToken); markErr != nil {
			s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to mark outbox record done")
		}
		return
	}

	if isPermanent, ok := err.(*permanentDeliveryError); ok {
		s.log.Warn().Err(isPermanent.cause).Str("outbox_id", record.ID.String()).Msg("invoice no longer awaiting confirmation, marking dead")
		if markErr := s.outboxRepo.MarkDead(ctx, record.ID, claimToken); markErr != nil {
			s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to mark outbox record dead")
		}
		return
	}

	if markErr := s.outboxRepo.MarkRetry(ctx, record.ID, claimToken, time.Now().UTC().Add(s.pollInterval), record.AttemptCount); markErr != nil {
		s.log.Error().Err(markErr).Str("outbox_id", record.ID.String()).Msg("failed to reschedule confirmation poll")
	}
}

// permanentDeliveryError short-circuits the retry/backoff path for a
// 4xx (other than 408/425/429) merchant response (spec.md §4.3).
type permanentDeliveryError struct{ cause error }

func (e *permanentDeliveryError) Error() string { return e.cause.Error() }

// backoffDelay implements spec.md §4.3: exponential with full jitter,
// base 5s, cap 1h.
func backoffDelay(attempt int) time.Duration {
	raw := float64(backoffBase) * math.Pow(2, float64(attempt))
	capped := math.Min(raw, float64(backoffCap))
	jitter := 0.5 + rand.Float64() //nolint:gosec
	return time.Duration(capped * jitter)
}

// handlePaidAwaitingConfirmation re-checks confirmation depth; on
// success it self-reschedules by polling again later, letting the
// confirmation service emit the INVOICE_STATUS_CHANGED(CONFIRMED) row
// and leaving this one to be marked DONE by the caller once the
// invoice is no longer PAID-pending-confirmation.
func (s *DispatcherServiceImpl) handlePaidAwaitingConfirmation(ctx context.Context, record domain.OutboxRecord) error {
	if err := s.confirmSvc.CheckConfirmation(ctx, record.InvoiceID); err != nil {
		return err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, record.InvoiceID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("reload invoice: %w", err))
	}
	if invoice != nil && invoice.Status == domain.InvoiceStatusPaid {
		return fmt.Errorf("not yet confirmed, rescheduling in %s", s.pollInterval)
	}
	return nil
}

// handleCallback delivers INVOICE_STATUS_CHANGED, OVERPAYMENT,
// LATE_FUNDS, and CHARGEBACK_SUSPECTED records to the merchant's
// callback URL with the signing discipline of spec.md §4.5.
func (s *DispatcherServiceImpl) handleCallback(ctx context.Context, record domain.OutboxRecord) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, record.InvoiceID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("load invoice: %w", err))
	}
	if invoice == nil {
		return &permanentDeliveryError{cause: fmt.Errorf("invoice %s no longer exists", record.InvoiceID)}
	}

	merchant, err := s.merchantRepo.GetByID(ctx, invoice.MerchantID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("load merchant: %w", err))
	}
	if merchant == nil {
		return &permanentDeliveryError{cause: fmt.Errorf("merchant %s no longer exists", invoice.MerchantID)}
	}
	if invoice.CallbackURL == "" {
		return nil
	}

	var extra outboxPayload
	_ = json.Unmarshal(record.Payload, &extra)

	payload, err := s.buildCallbackPayload(ctx, invoice, record, extra)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("build callback payload: %w", err))
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal callback payload: %w", err))
	}

	secret, err := s.encSvc.Decrypt(merchant.CallbackSigningSecretEnc)
	if err != nil {
		return apperror.ErrEncryptionFailure(fmt.Errorf("decrypt callback signing secret: %w", err))
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	canonical := s.sigSvc.BuildCanonicalString(timestamp, body)
	signature := s.sigSvc.Sign(secret, canonical)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, invoice.CallbackURL, bytes.NewReader(body))
	if err != nil {
		return &permanentDeliveryError{cause: fmt.Errorf("build callback request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", "v1="+signature)
	req.Header.Set("X-Signature-Timestamp", timestamp)
	req.Header.Set("Idempotency-Key", record.DeliveryID.String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("callback delivery transport error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == 408 || resp.StatusCode == 425 || resp.StatusCode == 429 || resp.StatusCode >= 500:
		return fmt.Errorf("transient callback response: %d", resp.StatusCode)
	default:
		return &permanentDeliveryError{cause: fmt.Errorf("callback rejected with status %d", resp.StatusCode)}
	}
}

// buildCallbackPayload assembles the merchant-facing callback body.
// extra.IntentID identifies the funding intent behind this event for
// every outbox kind except a bare cancellation (no funds were ever
// credited, so there is no intent to report on) — looking it up gives
// token/chain and the transfers that funded it (spec.md §6 payload
// contract).
func (s *DispatcherServiceImpl) buildCallbackPayload(ctx context.Context, invoice *domain.Invoice, record domain.OutboxRecord, extra outboxPayload) (domain.CallbackPayload, error) {
	payload := domain.CallbackPayload{
		DeliveryID:      record.DeliveryID.String(),
		InvoiceID:       invoice.ID.String(),
		MerchantOrderID: invoice.MerchantOrderID,
		Status:          string(invoice.Status),
		OccurredAt:      record.CreatedAt.Format(time.RFC3339),
	}

	if extra.IntentID == uuid.Nil {
		return payload, nil
	}

	intent, err := s.intentRepo.GetByID(ctx, extra.IntentID)
	if err != nil {
		return payload, fmt.Errorf("load funding intent: %w", err)
	}
	if intent == nil {
		return payload, nil
	}
	payload.Token = intent.Token
	payload.Chain = intent.Chain
	if extra.SurplusAtomic != "" {
		payload.PaidAmountAtomic = extra.SurplusAtomic
	} else {
		payload.PaidAmountAtomic = intent.CreditedAtomic.String()
	}

	transfers, err := s.transferRepo.ListByIntentID(ctx, intent.ID)
	if err != nil {
		return payload, fmt.Errorf("list funding transfers: %w", err)
	}
	hashes := make([]string, 0, len(transfers))
	for _, t := range transfers {
		hashes = append(hashes, t.TxHash)
	}
	payload.TxHashes = hashes

	return payload, nil
}
