package postgres

import (
	"context"
	"fmt"
	"time"

	"stablegate/internal/core/ports"
)

// LeaseRepo implements ports.LeaseRepository against a `locks` table,
// adapted from core-coin-nuntiare's AppLock model (spec.md §4.4).
type LeaseRepo struct {
	pool Pool
}

// NewLeaseRepo creates a new LeaseRepo.
func NewLeaseRepo(pool Pool) ports.LeaseRepository {
	return &LeaseRepo{pool: pool}
}

// TryAcquire inserts the lease row if absent, or takes it over if the
// prior holder's lease has expired. Exactly one instance wins a given
// name at a time.
func (r *LeaseRepo) TryAcquire(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO locks (name, instance_id, acquired_at, expires_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (name) DO UPDATE
		   SET instance_id=$2, acquired_at=$3, expires_at=$4
		   WHERE locks.expires_at < $3`,
		name, instanceID, now, expiresAt)
	if err != nil {
		return false, fmt.Errorf("acquire lease: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Renew extends the lease, but only while this instance still holds
// it — a stale renew after losing the lease to another instance is a
// no-op, not a hijack.
func (r *LeaseRepo) Renew(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error) {
	expiresAt := time.Now().Add(ttl)
	tag, err := r.pool.Exec(ctx,
		`UPDATE locks SET expires_at=$1 WHERE name=$2 AND instance_id=$3`,
		expiresAt, name, instanceID)
	if err != nil {
		return false, fmt.Errorf("renew lease: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Release gives up the lease early, e.g. on graceful shutdown.
func (r *LeaseRepo) Release(ctx context.Context, name, instanceID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM locks WHERE name=$1 AND instance_id=$2`, name, instanceID)
	if err != nil {
		return fmt.Errorf("release lease: %w", err)
	}
	return nil
}
