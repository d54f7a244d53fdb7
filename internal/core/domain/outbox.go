package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxKind enumerates the side effects the matcher and dispatcher
// exchange through the outbox table (spec.md §3, §4.3).
type OutboxKind string

const (
	OutboxKindInvoiceStatusChanged     OutboxKind = "INVOICE_STATUS_CHANGED"
	OutboxKindOverpayment              OutboxKind = "OVERPAYMENT"
	OutboxKindOverpaymentAfterTerminal OutboxKind = "OVERPAYMENT_AFTER_TERMINAL"
	OutboxKindLateFunds                OutboxKind = "LATE_FUNDS"
	OutboxKindPaidAwaitingConfirmation OutboxKind = "PAID_AWAITING_CONFIRMATION"
	OutboxKindChargebackSuspected      OutboxKind = "CHARGEBACK_SUSPECTED"
)

// OutboxStatus is the delivery state of an outbox row (spec.md §3,
// §4.3 "Claim protocol").
type OutboxStatus string

const (
	OutboxStatusPending  OutboxStatus = "PENDING"
	OutboxStatusInFlight OutboxStatus = "IN_FLIGHT"
	OutboxStatusDone     OutboxStatus = "DONE"
	OutboxStatusDead     OutboxStatus = "DEAD"
)

// OutboxRecord is a side-effect intent co-committed with the state
// change it describes (spec.md §3 invariant 4). Grounded on the
// richardliu001-wallet-service OutboxEvent shape, generalized with the
// claim/lease fields the dispatcher's claim protocol requires.
type OutboxRecord struct {
	ID            uuid.UUID    `json:"id"`
	Kind          OutboxKind   `json:"kind"`
	InvoiceID     uuid.UUID    `json:"invoice_id"`
	DeliveryID    uuid.UUID    `json:"delivery_id"`
	Payload       []byte       `json:"payload"` // JSON
	Status        OutboxStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	NextAttemptAt time.Time    `json:"next_attempt_at"`
	AttemptCount  int          `json:"attempt_count"`
	ClaimToken    *uuid.UUID   `json:"-"`
	ClaimDeadline *time.Time   `json:"-"`
}

// CallbackPayload is the JSON body POSTed to a merchant's callback URL
// (spec.md §6 "Outbound callback to merchant").
type CallbackPayload struct {
	DeliveryID       string   `json:"deliveryId"`
	InvoiceID        string   `json:"invoiceId"`
	MerchantOrderID  string   `json:"merchantOrderId"`
	Status           string   `json:"status"`
	PaidAmountAtomic string   `json:"paidAmountAtomic"`
	Token            string   `json:"token"`
	Chain            string   `json:"chain"`
	TxHashes         []string `json:"txHashes"`
	OccurredAt       string   `json:"occurredAt"`
}
