package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

// SignatureService handles HMAC-SHA256 signing and verification of
// merchant requests and outbound callbacks (spec.md §4.5).
type SignatureService interface {
	Sign(secret string, canonical string) string
	Verify(secret string, canonical string, signatureHex string) bool
	// BuildCanonicalString reproduces the exact byte sequence both
	// sides sign: timestamp + "." + raw body (spec.md §4.5).
	BuildCanonicalString(timestamp string, rawBody []byte) string
}

// EncryptionService protects a merchant's callback signing secret at
// rest with AES-256-GCM, reused from the teacher's wallet-balance
// encryption concern.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertextHex string) (string, error)
}

// IdempotencyCache is the Redis-layer idempotency fast path (spec.md
// §3 "two-layer idempotency").
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// BlockchainReader is the out-of-scope external collaborator spec.md
// §1 calls "the chain indexer / RPC provider" — the gateway only
// consumes normalized events and confirmation depth through it.
type BlockchainReader interface {
	// CurrentBlock returns the chain's latest known block height, used
	// to recompute every funding transfer's confirmation count.
	CurrentBlock(ctx context.Context, chain string) (int64, error)
}

// DepositAddressAllocator is the out-of-scope external collaborator
// spec.md §1 names "the deposit-address allocator" — it hands back an
// on-chain address dedicated to one active intent at a time. Rebinding
// policy on reuse is left to the allocator; the matcher's tie-break
// rule (spec.md §4.1) is what makes reuse safe on this side.
type DepositAddressAllocator interface {
	Allocate(ctx context.Context, chain, token string) (string, error)
}

// PricingCalculator is the out-of-scope external collaborator spec.md
// §1 names "the fiat→token pricing calculator" — it converts a fiat
// amount into the atomic token amount a payment intent must collect.
type PricingCalculator interface {
	ToAtomicAmount(ctx context.Context, fiatAmountCents money.Amount, currency, token, chain string) (money.Amount, error)
}

// IngressService accepts a normalized transfer event, whether pushed
// by a provider webhook or polled directly, and runs the matcher
// algorithm against it in one transaction (spec.md §4.2).
type IngressService interface {
	IngestTransferEvent(ctx context.Context, event domain.TransferEvent) error
}

// ConfirmationService re-evaluates PAID invoices against current chain
// depth, advancing them to CONFIRMED or detecting a reorg regression
// (spec.md §4.1 "Confirmation rule"). The dispatcher drives this per
// PAID_AWAITING_CONFIRMATION outbox record.
type ConfirmationService interface {
	CheckConfirmation(ctx context.Context, invoiceID uuid.UUID) error
}

// DispatcherService claims and delivers outbox records (spec.md §4.3).
type DispatcherService interface {
	// DispatchBatch claims up to limit due records and processes each,
	// returning the number successfully claimed (not necessarily
	// delivered — failures are rescheduled, not returned as errors).
	DispatchBatch(ctx context.Context, limit int) (int, error)
}

// SweeperService sweeps invoices past expiry in bounded batches
// (spec.md §4.4).
type SweeperService interface {
	SweepExpired(ctx context.Context, batchSize int) (int, error)
}

// CreateInvoiceRequest is the validated input for invoice creation
// (spec.md §5 "Create invoice").
type CreateInvoiceRequest struct {
	MerchantID      uuid.UUID
	MerchantOrderID string
	FiatAmountCents money.Amount
	Currency        string
	AllowedOptions  []domain.PaymentOption
	CallbackURL     string
	ExpiresInSec    int64
	IdempotencyKey  string
}

// CreateIntentRequest is the validated input for selecting a payment
// option on an invoice (spec.md §5 "Create payment intent").
type CreateIntentRequest struct {
	InvoiceID uuid.UUID
	Token     string
	Chain     string
}

// InvoiceService implements the merchant-facing invoice and intent
// lifecycle operations.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*domain.PaymentIntent, error)
	ListTransfers(ctx context.Context, invoiceID uuid.UUID) ([]domain.Transfer, error)
	CancelInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
}
