package statemachine

import "stablegate/internal/core/domain"

// AllConfirmed reports whether every contributing transfer has reached
// the chain's required confirmation depth (spec.md §4.1 "Confirmation
// rule").
func AllConfirmed(confirmations []int64, required int64) bool {
	if len(confirmations) == 0 {
		return false
	}
	for _, c := range confirmations {
		if c < required {
			return false
		}
	}
	return true
}

// ConfirmationResult is the outcome of re-evaluating an invoice's
// funding transfers against the chain's confirmation depth.
type ConfirmationResult struct {
	NewInvoiceStatus domain.InvoiceStatus
	Effects          []Effect
}

// ApplyConfirmation decides whether a PAID invoice may advance to
// CONFIRMED, or whether a reorg has dropped a previously-confirmed
// invoice's transfers back below the threshold. Once an invoice has
// reached CONFIRMED and been handed to the dispatcher, it never
// regresses — spec.md §3 invariant 3 only allows an observability
// signal (CHARGEBACK_SUSPECTED) at that point, never a state change.
func ApplyConfirmation(status domain.InvoiceStatus, allConfirmed bool) ConfirmationResult {
	switch {
	case status == domain.InvoiceStatusPaid && allConfirmed:
		return ConfirmationResult{
			NewInvoiceStatus: domain.InvoiceStatusConfirmed,
			Effects:          []Effect{{Kind: domain.OutboxKindInvoiceStatusChanged}},
		}
	case status == domain.InvoiceStatusConfirmed && !allConfirmed:
		return ConfirmationResult{
			NewInvoiceStatus: domain.InvoiceStatusConfirmed,
			Effects:          []Effect{{Kind: domain.OutboxKindChargebackSuspected}},
		}
	default:
		return ConfirmationResult{NewInvoiceStatus: status}
	}
}
