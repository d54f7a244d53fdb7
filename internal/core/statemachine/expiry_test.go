package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/internal/core/domain"
)

func TestApplyExpiry_CleanExpiryWithNoCredit(t *testing.T) {
	result := ApplyExpiry(domain.InvoiceStatusPending, false)

	assert.Equal(t, domain.InvoiceStatusExpired, result.NewInvoiceStatus)
	require.Len(t, result.Effects, 1)
}

func TestApplyExpiry_PartialCreditExpiresWithPartial(t *testing.T) {
	result := ApplyExpiry(domain.InvoiceStatusUnderpaid, true)

	assert.Equal(t, domain.InvoiceStatusExpiredWithPartial, result.NewInvoiceStatus)
}

func TestApplyExpiry_AlreadyTerminalIsNoop(t *testing.T) {
	result := ApplyExpiry(domain.InvoiceStatusCancelled, false)

	assert.Equal(t, domain.InvoiceStatusCancelled, result.NewInvoiceStatus)
	assert.Empty(t, result.Effects)
}

func TestApplyIntentExpiry(t *testing.T) {
	assert.Equal(t, domain.IntentStatusExpired, ApplyIntentExpiry(domain.IntentStatusAwaitingFunds))
	assert.Equal(t, domain.IntentStatusExpired, ApplyIntentExpiry(domain.IntentStatusPartiallyFunded))
	assert.Equal(t, domain.IntentStatusConfirmed, ApplyIntentExpiry(domain.IntentStatusConfirmed))
}
