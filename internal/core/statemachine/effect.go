// Package statemachine implements the invoice/intent lifecycle as pure
// functions: (currentState, event) -> (newState, effects). No I/O
// happens here — every row is already loaded, every effect is a value
// the caller persists inside the same transaction (spec.md §9).
package statemachine

import (
	"stablegate/internal/core/domain"
	"stablegate/internal/money"
)

// Effect describes a side-effect the caller must turn into an
// OutboxRecord in the same transaction as the state change. It carries
// just enough data for the caller (which already holds the full
// invoice/intent/transfer context) to build the callback payload.
type Effect struct {
	Kind           domain.OutboxKind
	SurplusAtomic  money.Amount // populated for OVERPAYMENT / OVERPAYMENT_AFTER_TERMINAL
}
