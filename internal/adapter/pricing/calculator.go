// Package pricing provides a static stand-in for the out-of-scope
// fiat->token pricing calculator (spec.md §1). A production deployment
// wires this port to a live rate feed; no such SDK appears in this
// repo's dependency pack, so this adapter computes from a configured
// fixed-rate table using big.Int arithmetic, keeping floating point out
// of the payment path the same way internal/money does.
package pricing

import (
	"context"
	"fmt"
	"math/big"

	"stablegate/internal/core/ports"
	"stablegate/internal/money"
)

// Rate expresses atomic token units per one fiat cent as a rational
// number (Numerator/Denominator), avoiding float64 entirely.
type Rate struct {
	Numerator   int64
	Denominator int64
}

// FixedRateCalculator implements ports.PricingCalculator against a
// configured currency -> token -> Rate table.
type FixedRateCalculator struct {
	rates map[string]map[string]Rate
}

// NewFixedRateCalculator creates a new FixedRateCalculator. rates is
// keyed by uppercase ISO currency code, then token symbol.
func NewFixedRateCalculator(rates map[string]map[string]Rate) ports.PricingCalculator {
	return &FixedRateCalculator{rates: rates}
}

// ToAtomicAmount converts a fiat amount in cents into the atomic token
// amount an intent must collect, per the configured fixed rate.
func (c *FixedRateCalculator) ToAtomicAmount(ctx context.Context, fiatAmountCents money.Amount, currency, token, chain string) (money.Amount, error) {
	byToken, ok := c.rates[currency]
	if !ok {
		return money.Amount{}, fmt.Errorf("pricing: no rate table for currency %q", currency)
	}
	rate, ok := byToken[token]
	if !ok {
		return money.Amount{}, fmt.Errorf("pricing: no rate for token %q in currency %q", token, currency)
	}
	if rate.Denominator == 0 {
		return money.Amount{}, fmt.Errorf("pricing: rate for %s/%s has zero denominator", currency, token)
	}

	cents, ok := new(big.Int).SetString(fiatAmountCents.String(), 10)
	if !ok {
		return money.Amount{}, fmt.Errorf("pricing: invalid fiat amount %q", fiatAmountCents.String())
	}

	atomic := new(big.Int).Mul(cents, big.NewInt(rate.Numerator))
	atomic.Quo(atomic, big.NewInt(rate.Denominator))

	return money.FromString(atomic.String())
}
