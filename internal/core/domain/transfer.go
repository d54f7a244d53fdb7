package domain

import (
	"time"

	"github.com/google/uuid"
	"stablegate/internal/money"
)

// Transfer is an observed on-chain credit toward a deposit address
// (spec.md §3). Append-only: once inserted, a row is never mutated
// except for LastSeenAt on a repeated sighting.
type Transfer struct {
	ID             uuid.UUID    `json:"id"`
	Chain          string       `json:"chain"`
	TxHash         string       `json:"tx_hash"`
	LogIndex       int          `json:"log_index"`
	TokenContract  string       `json:"token_contract"`
	ToAddress      string       `json:"to_address"`
	AtomicAmount   money.Amount `json:"atomic_amount"`
	BlockNumber    int64        `json:"block_number"`
	FirstSeenAt    time.Time    `json:"first_seen_at"`
	LastSeenAt     time.Time    `json:"last_seen_at"`
}

// Confirmations computes the effective confirmation count per
// spec.md §4.1: max(0, currentBlock - blockNumber + 1).
func (t *Transfer) Confirmations(currentBlock int64) int64 {
	c := currentBlock - t.BlockNumber + 1
	if c < 0 {
		return 0
	}
	return c
}

// IntentFund links a transfer to the intent it was credited to
// (spec.md §3). Immutable once created.
type IntentFund struct {
	ID             uuid.UUID    `json:"id"`
	IntentID       uuid.UUID    `json:"intent_id"`
	TransferID     uuid.UUID    `json:"transfer_id"`
	CreditedAtomic money.Amount `json:"credited_atomic"`
	CreatedAt      time.Time    `json:"created_at"`
}

// UnmatchedTransfer buffers a transfer seen for an address with no
// known intent at the time (spec.md §4.1 "Tie-breaks and edge cases").
type UnmatchedTransfer struct {
	ID            uuid.UUID    `json:"id"`
	Chain         string       `json:"chain"`
	TokenContract string       `json:"token_contract"`
	ToAddress     string       `json:"to_address"`
	TransferID    uuid.UUID    `json:"transfer_id"`
	AtomicAmount  money.Amount `json:"atomic_amount"`
	CreatedAt     time.Time    `json:"created_at"`
	Resolved      bool         `json:"resolved"`
}
