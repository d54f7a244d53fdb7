package domain

import "time"

// IdempotencyScope namespaces idempotency keys per spec.md §3 so a key
// reused across unrelated operations can't collide.
type IdempotencyScope string

const (
	IdempotencyScopeCreateInvoice     IdempotencyScope = "create-invoice"
	IdempotencyScopeWebhook           IdempotencyScope = "webhook"
	IdempotencyScopeCallbackDelivery  IdempotencyScope = "callback-delivery"
)

// IdempotencyRecord deduplicates a request or event by (scope, key),
// guarding against a differently-fingerprinted replay (spec.md §3,
// §6 "same key with different fingerprint returns a conflict").
type IdempotencyRecord struct {
	Scope           IdempotencyScope `json:"scope"`
	Key             string           `json:"key"`
	RequestFingerprint string        `json:"request_fingerprint"`
	StoredResponse  []byte           `json:"stored_response"`
	StoredStatus    int              `json:"stored_status"`
	CreatedAt       time.Time        `json:"created_at"`
	ExpiresAt       time.Time        `json:"expires_at"`
}

// BuildKey constructs the composite key used in the DB unique index
// and Redis fast-path cache, mirroring the teacher's
// domain.BuildIdempotencyKey convention.
func BuildKey(scope IdempotencyScope, merchantID, key string) string {
	return string(scope) + ":" + merchantID + ":" + key
}
