package domain

import "time"

// PoisonEvent quarantines a normalized transfer event whose processing
// hit an invariant violation, so the transaction can abort cleanly
// without losing the event (spec.md §7 "Invariant violation").
type PoisonEvent struct {
	ID         string    `json:"id"`
	Chain      string    `json:"chain"`
	TxHash     string    `json:"tx_hash"`
	LogIndex   int       `json:"log_index"`
	RawPayload []byte    `json:"raw_payload"`
	Reason     string    `json:"reason"`
	QuarantinedAt time.Time `json:"quarantined_at"`
}
