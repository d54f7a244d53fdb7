package domain

import (
	"time"

	"github.com/google/uuid"
	"stablegate/internal/money"
)

// InvoiceStatus is the invoice lifecycle state (spec.md §4.1).
type InvoiceStatus string

const (
	InvoiceStatusPending           InvoiceStatus = "PENDING"
	InvoiceStatusUnderpaid         InvoiceStatus = "UNDERPAID"
	InvoiceStatusPaid              InvoiceStatus = "PAID"
	InvoiceStatusConfirmed         InvoiceStatus = "CONFIRMED"
	InvoiceStatusExpired           InvoiceStatus = "EXPIRED"
	InvoiceStatusExpiredWithPartial InvoiceStatus = "EXPIRED_WITH_PARTIAL"
	InvoiceStatusCancelled         InvoiceStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted.
func (s InvoiceStatus) IsTerminal() bool {
	switch s {
	case InvoiceStatusConfirmed, InvoiceStatusExpired, InvoiceStatusExpiredWithPartial, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentOption is one (token, chain) pair a buyer may pay with.
type PaymentOption struct {
	Token string `json:"token"`
	Chain string `json:"chain"`
}

// Invoice is the commercial obligation priced in fiat (spec.md §3).
type Invoice struct {
	ID              uuid.UUID       `json:"id"`
	MerchantID      uuid.UUID       `json:"merchant_id"`
	MerchantOrderID string          `json:"merchant_order_id"`
	FiatAmountCents money.Amount    `json:"fiat_amount_cents"`
	Currency        string          `json:"currency"`
	AllowedOptions  []PaymentOption `json:"allowed_options"`
	CallbackURL     string          `json:"callback_url"`
	Status          InvoiceStatus   `json:"status"`
	ExpiresAt       time.Time       `json:"expires_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CanReceiveFunds reports whether a transfer may still move the
// invoice's state (PENDING or UNDERPAID — PAID is funded but can still
// take surplus credit per the overpay rule).
func (i *Invoice) CanReceiveFunds() bool {
	return !i.Status.IsTerminal()
}

// CanExpire reports whether the sweeper may move this invoice to an
// expired state (spec.md §4.1 "Expiry rule").
func (i *Invoice) CanExpire() bool {
	return i.Status == InvoiceStatusPending || i.Status == InvoiceStatusUnderpaid
}
