package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// IdempotencyRepo implements ports.IdempotencyRepository — the durable
// fallback behind the Redis fast path (spec.md §3).
type IdempotencyRepo struct {
	pool Pool
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(pool Pool) ports.IdempotencyRepository {
	return &IdempotencyRepo{pool: pool}
}

func (r *IdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.IdempotencyRecord) error {
	query := `INSERT INTO idempotency_records (scope, key, request_fingerprint, stored_response, stored_status, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := tx.Exec(ctx, query,
		string(record.Scope), record.Key, record.RequestFingerprint, record.StoredResponse,
		record.StoredStatus, record.CreatedAt, record.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ports.ErrAlreadyExists
		}
		return fmt.Errorf("insert idempotency record: %w", err)
	}
	return nil
}

func (r *IdempotencyRepo) Get(ctx context.Context, scope domain.IdempotencyScope, key string) (*domain.IdempotencyRecord, error) {
	query := `SELECT scope, key, request_fingerprint, stored_response, stored_status, created_at, expires_at
		FROM idempotency_records WHERE scope = $1 AND key = $2`

	rec := &domain.IdempotencyRecord{}
	var scopeStr string
	err := r.pool.QueryRow(ctx, query, string(scope), key).Scan(
		&scopeStr, &rec.Key, &rec.RequestFingerprint, &rec.StoredResponse, &rec.StoredStatus, &rec.CreatedAt, &rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}
	rec.Scope = domain.IdempotencyScope(scopeStr)
	return rec, nil
}
