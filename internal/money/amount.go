// Package money represents monetary values as arbitrary-precision
// integers so no floating point ever enters the payment path.
package money

import (
	"database/sql/driver"
	"fmt"
	"math/big"
)

// Amount is an arbitrary-precision integer quantity: atomic token units
// (e.g. USDT's 6-decimal smallest unit) or fiat cents, depending on the
// column it is bound to. It is never interpreted as a fraction.
type Amount struct {
	v *big.Int
}

// Zero is the additive identity.
func Zero() Amount { return Amount{v: big.NewInt(0)} }

// FromInt64 builds an Amount from a plain int64.
func FromInt64(n int64) Amount { return Amount{v: big.NewInt(n)} }

// FromString parses a base-10 integer string (no sign handling beyond '-').
func FromString(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("money: invalid amount %q", s)
	}
	return Amount{v: v}, nil
}

// MustFromString is FromString, panicking on malformed input. Intended
// for constants and tests, never for untrusted input.
func MustFromString(s string) Amount {
	a, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) ensure() *big.Int {
	if a.v == nil {
		return big.NewInt(0)
	}
	return a.v
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{v: new(big.Int).Add(a.ensure(), b.ensure())}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{v: new(big.Int).Sub(a.ensure(), b.ensure())}
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.ensure().Cmp(b.ensure())
}

// Mul returns a * n, for converting a plain integer ratio (e.g. a
// fiat-to-atomic-unit rate) without round-tripping through a string.
func (a Amount) Mul(n int64) Amount {
	return Amount{v: new(big.Int).Mul(a.ensure(), big.NewInt(n))}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.ensure().Sign() == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.ensure().Sign() > 0
}

// String renders the amount as a base-10 integer string.
func (a Amount) String() string {
	return a.ensure().String()
}

// MarshalJSON renders the amount as a JSON string, matching the
// wire contract's "paidAmountAtomic" string fields — integers this
// large do not round-trip safely through JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.ensure().String() + `"`), nil
}

// UnmarshalJSON parses a JSON string containing a base-10 integer.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("money: invalid amount %q", s)
	}
	a.v = v
	return nil
}

// Value implements driver.Valuer, rendering the amount as the decimal
// text Postgres expects for a NUMERIC(78,0)/NUMERIC(12,0) column.
func (a Amount) Value() (driver.Value, error) {
	return a.ensure().String(), nil
}

// Scan implements sql.Scanner, accepting the numeric text or bytes pgx
// hands back for a NUMERIC column.
func (a *Amount) Scan(src interface{}) error {
	switch t := src.(type) {
	case nil:
		a.v = big.NewInt(0)
		return nil
	case string:
		v, ok := new(big.Int).SetString(t, 10)
		if !ok {
			return fmt.Errorf("money: cannot scan %q", t)
		}
		a.v = v
		return nil
	case []byte:
		v, ok := new(big.Int).SetString(string(t), 10)
		if !ok {
			return fmt.Errorf("money: cannot scan %q", string(t))
		}
		a.v = v
		return nil
	case int64:
		a.v = big.NewInt(t)
		return nil
	default:
		return fmt.Errorf("money: unsupported scan type %T", src)
	}
}
