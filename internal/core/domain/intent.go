package domain

import (
	"time"

	"github.com/google/uuid"
	"stablegate/internal/money"
)

// IntentStatus is the payment intent lifecycle state (spec.md §4.1).
type IntentStatus string

const (
	IntentStatusAwaitingFunds    IntentStatus = "AWAITING_FUNDS"
	IntentStatusPartiallyFunded  IntentStatus = "PARTIALLY_FUNDED"
	IntentStatusFunded           IntentStatus = "FUNDED"
	IntentStatusOverfunded       IntentStatus = "OVERFUNDED"
	IntentStatusExpired          IntentStatus = "EXPIRED"
	IntentStatusCancelled        IntentStatus = "CANCELLED"
	IntentStatusConfirmed        IntentStatus = "CONFIRMED"
)

// IsTerminal reports whether no further transition is permitted.
func (s IntentStatus) IsTerminal() bool {
	switch s {
	case IntentStatusExpired, IntentStatusCancelled, IntentStatusConfirmed:
		return true
	default:
		return false
	}
}

// IsFailedTerminal reports whether the intent reached a terminal state
// without ever being paid — this is the tie-break spec.md §4.1 refers
// to when two intents would otherwise share a deposit address.
func (s IntentStatus) IsFailedTerminal() bool {
	return s == IntentStatusExpired || s == IntentStatusCancelled
}

// PaymentIntent is the buyer's chosen payment method for an invoice
// (spec.md §3).
type PaymentIntent struct {
	ID              uuid.UUID    `json:"id"`
	InvoiceID       uuid.UUID    `json:"invoice_id"`
	Token           string       `json:"token"`
	Chain           string       `json:"chain"`
	DepositAddress  string       `json:"deposit_address"`
	TargetAtomic    money.Amount `json:"target_atomic"`
	CreditedAtomic  money.Amount `json:"credited_atomic"`
	Status          IntentStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
