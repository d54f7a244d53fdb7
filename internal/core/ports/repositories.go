package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

// ErrAlreadyExists is returned by a Create method whose row collided
// with a unique constraint (e.g. a transfer's (chain, txHash,
// logIndex) identity, or an idempotency record's (scope, key)) —
// callers treat this as the durable-dedup success path, not a failure.
var ErrAlreadyExists = errors.New("already exists")

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Merchant, error)
}

// InvoiceRepository defines persistence operations for invoices.
// Methods accepting pgx.Tx participate in the caller's transaction;
// the FOR UPDATE variants are used to serialize concurrent credit
// events against the same invoice (spec.md §4.2).
type InvoiceRepository interface {
	Create(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error)
	GetByMerchantOrderID(ctx context.Context, merchantID uuid.UUID, merchantOrderID string) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.InvoiceStatus) error
	// ListExpirable returns non-terminal invoices whose ExpiresAt has
	// passed, oldest first, bounded to limit rows per sweep (spec.md
	// §4.4 "bounded batches").
	ListExpirable(ctx context.Context, before time.Time, limit int) ([]domain.Invoice, error)
}

// IntentRepository defines persistence operations for payment intents.
type IntentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, intent *domain.PaymentIntent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentIntent, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentIntent, error)
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentIntent, error)
	// ListActiveByDepositAddressForUpdate locks every intent sharing a
	// reused deposit address so the matcher can apply the
	// not-failed-terminal tie-break rule (spec.md §4.1) without a race.
	ListActiveByDepositAddressForUpdate(ctx context.Context, tx pgx.Tx, chain, depositAddress string) ([]domain.PaymentIntent, error)
	UpdateStatusAndCredited(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.IntentStatus, credited money.Amount) error
	ListNonTerminalByInvoiceIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID) ([]domain.PaymentIntent, error)
}

// TransferRepository defines persistence operations for on-chain
// transfers observed by ingress.
type TransferRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error
	// GetByChainEvent looks a transfer up by its on-chain identity, the
	// dedup key for a provider's at-least-once delivery (spec.md §4.2
	// "Idempotent ingestion").
	GetByChainEvent(ctx context.Context, chain, txHash string, logIndex int) (*domain.Transfer, error)
	ListByIntentID(ctx context.Context, intentID uuid.UUID) ([]domain.Transfer, error)
	UpdateBlockNumber(ctx context.Context, tx pgx.Tx, id uuid.UUID, blockNumber int64) error
}

// IntentFundRepository tracks which transfers funded which intent, the
// join spec.md §3 calls out separately from Transfer so a transfer can
// be recorded before (or without) ever crediting an intent.
type IntentFundRepository interface {
	Create(ctx context.Context, tx pgx.Tx, fund *domain.IntentFund) error
	ListByIntentID(ctx context.Context, intentID uuid.UUID) ([]domain.IntentFund, error)
}

// OutboxRepository defines persistence for the transactional outbox
// and the dispatcher's claim protocol (spec.md §4.3).
type OutboxRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.OutboxRecord) error
	// ClaimBatch atomically moves up to limit due rows (PENDING, or
	// IN_FLIGHT past a lapsed claim deadline) into IN_FLIGHT under a
	// fresh claim token, and returns them. This is the dispatcher's
	// lease acquisition — a crashed dispatcher's claims expire and
	// become reclaimable without operator intervention.
	ClaimBatch(ctx context.Context, claimToken uuid.UUID, leaseDuration time.Duration, limit int) ([]domain.OutboxRecord, error)
	MarkDone(ctx context.Context, id uuid.UUID, claimToken uuid.UUID) error
	MarkRetry(ctx context.Context, id uuid.UUID, claimToken uuid.UUID, nextAttemptAt time.Time, attemptCount int) error
	MarkDead(ctx context.Context, id uuid.UUID, claimToken uuid.UUID) error
}

// IdempotencyRepository is the durable fallback layer behind the Redis
// fast path (spec.md §3 "Idempotency").
type IdempotencyRepository interface {
	Get(ctx context.Context, scope domain.IdempotencyScope, key string) (*domain.IdempotencyRecord, error)
	// Create inserts under a unique (scope, key) index; a conflicting
	// insert returns ErrAlreadyExists so the caller can compare
	// fingerprints instead of silently racing a concurrent request.
	Create(ctx context.Context, tx pgx.Tx, record *domain.IdempotencyRecord) error
}

// UnmatchedTransferRepository buffers a transfer that named no intent
// currently listening on its deposit address (spec.md §4.2 "unmatched
// transfer" case), so it can be replayed once a matching intent shows
// up or left for manual review.
type UnmatchedTransferRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.UnmatchedTransfer) error
	ListUnresolvedByAddress(ctx context.Context, chain, tokenContract, toAddress string) ([]domain.UnmatchedTransfer, error)
	MarkResolved(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// LeaseRepository coordinates a single active worker among
// horizontally-scaled instances of the sweeper/dispatcher (spec.md
// §4.4), grounded on core-coin-nuntiare's AppLock table.
type LeaseRepository interface {
	TryAcquire(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error)
	Renew(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, instanceID string) error
}

// PoisonEventRepository quarantines an event whose processing hit an
// invariant violation instead of losing it (spec.md §7).
type PoisonEventRepository interface {
	Create(ctx context.Context, event *domain.PoisonEvent) error
}

// DBTransactor provides database transaction management, shared across
// every service that needs more than one repository call inside a
// single atomic unit.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
