package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/pkg/apperror"
)

const idempotencyTTL = 24 * time.Hour

// idempotencyGuard is the shared two-layer (Redis fast path, Postgres
// durable fallback) dedup helper every idempotent entry point uses:
// invoice creation (spec.md §5) and provider webhook ingestion
// (spec.md §6 "replay of a previously-processed providerEventId").
// Grounded on the teacher's PaymentServiceImpl.ProcessPayment
// Redis-then-DB check sequence.
type idempotencyGuard struct {
	cache ports.IdempotencyCache
	repo  ports.IdempotencyRepository
	log   zerolog.Logger
}

func newIdempotencyGuard(cache ports.IdempotencyCache, repo ports.IdempotencyRepository, log zerolog.Logger) *idempotencyGuard {
	return &idempotencyGuard{cache: cache, repo: repo, log: log}
}

// cacheEntry is the composite value stored under the Redis fast path —
// the fingerprint travels alongside the response so a same-key,
// different-body replay can be rejected without a DB round trip.
type cacheEntry struct {
	Fingerprint string `json:"fingerprint"`
	Response    []byte `json:"response"`
}

// check looks a key up across both layers. A non-nil return means the
// caller already has a stored response to replay. fingerprint lets the
// caller detect the same key reused for a logically different request.
func (g *idempotencyGuard) check(ctx context.Context, scope domain.IdempotencyScope, compositeKey, fingerprint string) ([]byte, error) {
	raw, err := g.cache.Get(ctx, compositeKey)
	if err != nil {
		g.log.Warn().Err(err).Str("key", compositeKey).Msg("redis idempotency check failed, falling through to db")
	}
	if raw != nil {
		var entry cacheEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			g.log.Warn().Err(err).Str("key", compositeKey).Msg("corrupt idempotency cache entry, falling through to db")
		} else if entry.Fingerprint != fingerprint {
			return nil, apperror.ErrIdempotencyKeyConflict()
		} else {
			return entry.Response, nil
		}
	}

	record, err := g.repo.Get(ctx, scope, compositeKey)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if record == nil {
		return nil, nil
	}
	if record.RequestFingerprint != fingerprint {
		return nil, apperror.ErrIdempotencyKeyConflict()
	}
	return record.StoredResponse, nil
}

// store persists the durable record inside the caller's transaction
// and best-effort populates the Redis cache after commit.
func (g *idempotencyGuard) store(ctx context.Context, tx pgx.Tx, scope domain.IdempotencyScope, compositeKey, fingerprint string, response []byte, status int) error {
	record := &domain.IdempotencyRecord{
		Scope:              scope,
		Key:                compositeKey,
		RequestFingerprint: fingerprint,
		StoredResponse:     response,
		StoredStatus:       status,
		CreatedAt:          time.Now().UTC(),
		ExpiresAt:          time.Now().UTC().Add(idempotencyTTL),
	}
	return g.repo.Create(ctx, tx, record)
}

// cacheAfterCommit populates the Redis fast path once the transaction
// holding the durable record has committed. Failure here only costs a
// DB round trip on the next replay, never correctness.
func (g *idempotencyGuard) cacheAfterCommit(ctx context.Context, compositeKey, fingerprint string, response []byte) {
	raw, err := json.Marshal(cacheEntry{Fingerprint: fingerprint, Response: response})
	if err != nil {
		g.log.Warn().Err(err).Str("key", compositeKey).Msg("failed to marshal idempotency cache entry")
		return
	}
	if err := g.cache.Set(ctx, compositeKey, raw, idempotencyTTL); err != nil {
		g.log.Warn().Err(err).Str("key", compositeKey).Msg("failed to cache idempotency record in redis")
	}
}
