package statemachine

import "stablegate/internal/core/domain"

// ExpiryResult is the outcome of the sweeper re-checking one invoice
// past its expiry time (spec.md §4.1 "Expiry rule", §4.4).
type ExpiryResult struct {
	NewInvoiceStatus domain.InvoiceStatus
	Effects          []Effect
}

// ApplyExpiry decides how an invoice past ExpiresAt resolves. An
// invoice that never received any credit expires clean; one with a
// partial credit on any intent expires with the EXPIRED_WITH_PARTIAL
// status the distilled spec's two-state expiry left out — the partial
// funds are still on-chain and unresolved, which callback consumers
// need to distinguish from a clean expiry.
func ApplyExpiry(status domain.InvoiceStatus, hasPartialCredit bool) ExpiryResult {
	if status != domain.InvoiceStatusPending && status != domain.InvoiceStatusUnderpaid {
		return ExpiryResult{NewInvoiceStatus: status}
	}

	newStatus := domain.InvoiceStatusExpired
	if hasPartialCredit {
		newStatus = domain.InvoiceStatusExpiredWithPartial
	}
	return ExpiryResult{
		NewInvoiceStatus: newStatus,
		Effects:          []Effect{{Kind: domain.OutboxKindInvoiceStatusChanged}},
	}
}

// ApplyIntentExpiry moves a non-terminal intent to EXPIRED alongside
// its invoice. An intent that already reached FUNDED/OVERFUNDED/
// CONFIRMED is left untouched — the invoice is the one driving the
// expiry decision in ApplyExpiry, and a funded intent is exactly what
// makes hasPartialCredit true for it.
func ApplyIntentExpiry(status domain.IntentStatus) domain.IntentStatus {
	if status.IsTerminal() {
		return status
	}
	return domain.IntentStatusExpired
}
