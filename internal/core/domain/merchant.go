package domain

import (
	"time"

	"github.com/google/uuid"
)

// Merchant is a tenant that issues invoices. CallbackSigningSecretEnc
// is the AES-256-GCM-encrypted signing secret at rest — decrypted only
// at the point of signing an outbound callback, never logged or
// returned from an API response. Rotation replaces it; it is never
// mutated in place on a live row.
type Merchant struct {
	ID                     uuid.UUID `json:"id"`
	APIKeyHash             string    `json:"-"`
	CallbackSigningSecretEnc string  `json:"-"`
	Active                 bool      `json:"active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// IsActive reports whether the merchant may transact.
func (m *Merchant) IsActive() bool {
	return m != nil && m.Active
}
