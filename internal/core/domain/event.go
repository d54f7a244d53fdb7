package domain

import "stablegate/internal/money"

// TransferEvent is the normalized shape ingress accepts, whether
// pushed by the provider's webhook or polled directly (spec.md §4.2
// "Contract").
type TransferEvent struct {
	Chain           string
	TxHash          string
	LogIndex        int
	Token           string
	To              string
	Amount          money.Amount
	BlockNumber     int64
	ProviderEventID string
}
