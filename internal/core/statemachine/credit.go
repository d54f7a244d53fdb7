package statemachine

import (
	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

// CreditResult is the outcome of applying one transfer's amount to an
// intent (spec.md §4.1 "Credit rule").
type CreditResult struct {
	NewIntentStatus   domain.IntentStatus
	NewInvoiceStatus  domain.InvoiceStatus
	NewCreditedAtomic money.Amount
	Effects           []Effect
}

// ApplyCredit folds a newly-seen transfer into the intent it funds.
// invoice and intent are the rows as locked by the caller (ingress
// holds FOR UPDATE on the intent row for the duration of the
// transaction per spec.md §4.2); transferAmount is the atomic amount
// just observed. ApplyCredit does not mutate its arguments — it
// returns the values the caller must persist.
func ApplyCredit(invoice *domain.Invoice, intent *domain.PaymentIntent, transferAmount money.Amount) CreditResult {
	if invoice.Status.IsTerminal() {
		kind := domain.OutboxKindLateFunds
		if invoice.Status == domain.InvoiceStatusConfirmed {
			// The invoice was already paid in full and confirmed; any
			// further transfer is surplus on a closed invoice, not a
			// late arrival on one that never got paid.
			kind = domain.OutboxKindOverpaymentAfterTerminal
		}
		return CreditResult{
			NewIntentStatus:   intent.Status,
			NewInvoiceStatus:  invoice.Status,
			NewCreditedAtomic: intent.CreditedAtomic,
			Effects:           []Effect{{Kind: kind, SurplusAtomic: transferAmount}},
		}
	}

	target := intent.TargetAtomic
	priorCredited := intent.CreditedAtomic
	newCredited := priorCredited.Add(transferAmount)

	var surplus money.Amount
	switch {
	case priorCredited.Cmp(target) >= 0:
		// Already at or above target before this transfer arrived —
		// the whole transfer is surplus.
		surplus = transferAmount
	case newCredited.Cmp(target) > 0:
		surplus = newCredited.Sub(target)
	default:
		surplus = money.Zero()
	}

	result := CreditResult{NewCreditedAtomic: newCredited}

	switch {
	case newCredited.Cmp(target) < 0:
		result.NewIntentStatus = domain.IntentStatusPartiallyFunded
		result.NewInvoiceStatus = invoice.Status
		if invoice.Status == domain.InvoiceStatusPending {
			result.NewInvoiceStatus = domain.InvoiceStatusUnderpaid
		}
	case newCredited.Cmp(target) == 0:
		result.NewIntentStatus = domain.IntentStatusFunded
		result.NewInvoiceStatus = domain.InvoiceStatusPaid
	default:
		result.NewIntentStatus = domain.IntentStatusOverfunded
		result.NewInvoiceStatus = domain.InvoiceStatusPaid
	}

	if result.NewInvoiceStatus != invoice.Status {
		result.Effects = append(result.Effects, Effect{Kind: domain.OutboxKindInvoiceStatusChanged})
	}
	if result.NewInvoiceStatus == domain.InvoiceStatusPaid && invoice.Status != domain.InvoiceStatusPaid {
		result.Effects = append(result.Effects, Effect{Kind: domain.OutboxKindPaidAwaitingConfirmation})
	}
	if surplus.IsPositive() {
		result.Effects = append(result.Effects, Effect{Kind: domain.OutboxKindOverpayment, SurplusAtomic: surplus})
	}

	return result
}
