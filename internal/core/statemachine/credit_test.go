package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

func newPendingInvoice() *domain.Invoice {
	return &domain.Invoice{Status: domain.InvoiceStatusPending}
}

func newIntent(target, credited string) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		Status:         domain.IntentStatusAwaitingFunds,
		TargetAtomic:   money.MustFromString(target),
		CreditedAtomic: money.MustFromString(credited),
	}
}

func TestApplyCredit_Underpayment(t *testing.T) {
	invoice := newPendingInvoice()
	intent := newIntent("100", "0")

	result := ApplyCredit(invoice, intent, money.MustFromString("40"))

	assert.Equal(t, domain.IntentStatusPartiallyFunded, result.NewIntentStatus)
	assert.Equal(t, domain.InvoiceStatusUnderpaid, result.NewInvoiceStatus)
	assert.Equal(t, "40", result.NewCreditedAtomic.String())
	assert.Empty(t, result.Effects)
}

func TestApplyCredit_ExactPaymentEmitsStatusChangedAndAwaitingConfirmation(t *testing.T) {
	invoice := newPendingInvoice()
	intent := newIntent("100", "0")

	result := ApplyCredit(invoice, intent, money.MustFromString("100"))

	assert.Equal(t, domain.IntentStatusFunded, result.NewIntentStatus)
	assert.Equal(t, domain.InvoiceStatusPaid, result.NewInvoiceStatus)
	require.Len(t, result.Effects, 2)
	assert.Equal(t, domain.OutboxKindInvoiceStatusChanged, result.Effects[0].Kind)
	assert.Equal(t, domain.OutboxKindPaidAwaitingConfirmation, result.Effects[1].Kind)
}

func TestApplyCredit_OverpaymentRecordsSurplusButStillPays(t *testing.T) {
	invoice := newPendingInvoice()
	intent := newIntent("100", "0")

	result := ApplyCredit(invoice, intent, money.MustFromString("150"))

	assert.Equal(t, domain.IntentStatusOverfunded, result.NewIntentStatus)
	assert.Equal(t, domain.InvoiceStatusPaid, result.NewInvoiceStatus)
	require.Len(t, result.Effects, 3)
	assert.Equal(t, domain.OutboxKindOverpayment, result.Effects[2].Kind)
	assert.Equal(t, "50", result.Effects[2].SurplusAtomic.String())
}

func TestApplyCredit_CompletesPartialFunding(t *testing.T) {
	invoice := &domain.Invoice{Status: domain.InvoiceStatusUnderpaid}
	intent := newIntent("100", "40")

	result := ApplyCredit(invoice, intent, money.MustFromString("60"))

	assert.Equal(t, domain.IntentStatusFunded, result.NewIntentStatus)
	assert.Equal(t, domain.InvoiceStatusPaid, result.NewInvoiceStatus)
	assert.Equal(t, "100", result.NewCreditedAtomic.String())
}

func TestApplyCredit_LateTransferAfterExpiryIsRecordedNotApplied(t *testing.T) {
	invoice := &domain.Invoice{Status: domain.InvoiceStatusExpired}
	intent := newIntent("100", "0")

	result := ApplyCredit(invoice, intent, money.MustFromString("30"))

	assert.Equal(t, domain.IntentStatusAwaitingFunds, result.NewIntentStatus)
	assert.Equal(t, domain.InvoiceStatusExpired, result.NewInvoiceStatus)
	assert.Equal(t, "0", result.NewCreditedAtomic.String())
	require.Len(t, result.Effects, 1)
	assert.Equal(t, domain.OutboxKindLateFunds, result.Effects[0].Kind)
	assert.Equal(t, "30", result.Effects[0].SurplusAtomic.String())
}

func TestApplyCredit_TransferAfterConfirmedIsOverpaymentAfterTerminal(t *testing.T) {
	invoice := &domain.Invoice{Status: domain.InvoiceStatusConfirmed}
	intent := newIntent("100", "100")
	intent.Status = domain.IntentStatusConfirmed

	result := ApplyCredit(invoice, intent, money.MustFromString("5"))

	require.Len(t, result.Effects, 1)
	assert.Equal(t, domain.OutboxKindOverpaymentAfterTerminal, result.Effects[0].Kind)
	assert.Equal(t, "5", result.Effects[0].SurplusAtomic.String())
}

func TestApplyCredit_SurplusAfterAlreadyOverfunded(t *testing.T) {
	invoice := &domain.Invoice{Status: domain.InvoiceStatusPaid}
	intent := newIntent("100", "150")
	intent.Status = domain.IntentStatusOverfunded

	result := ApplyCredit(invoice, intent, money.MustFromString("20"))

	assert.Equal(t, domain.IntentStatusOverfunded, result.NewIntentStatus)
	assert.Equal(t, domain.InvoiceStatusPaid, result.NewInvoiceStatus)
	// already PAID: no new INVOICE_STATUS_CHANGED/PAID_AWAITING_CONFIRMATION,
	// but the surplus is still reported
	require.Len(t, result.Effects, 1)
	assert.Equal(t, domain.OutboxKindOverpayment, result.Effects[0].Kind)
	assert.Equal(t, "20", result.Effects[0].SurplusAtomic.String())
	// surplus is the whole new transfer since prior credit already exceeded target
	assert.Equal(t, "170", result.NewCreditedAtomic.String())
}
