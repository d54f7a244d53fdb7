package domain

import "time"

// Lease is a row in the `locks` table coordinating a single active
// worker among horizontally-scaled instances of the same process
// (spec.md §4.4). Grounded on core-coin-nuntiare's
// models.AppLock{LockName, InstanceID, AcquiredAt, ExpiresAt}, adapted
// from a GORM model to this repo's plain-SQL storage layer.
type Lease struct {
	Name       string    `json:"name"`
	InstanceID string    `json:"instance_id"`
	AcquiredAt time.Time `json:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Held reports whether the lease is still valid at the given instant.
func (l *Lease) Held(at time.Time) bool {
	return l != nil && at.Before(l.ExpiresAt)
}
