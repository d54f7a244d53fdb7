package postgres

import (
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// OutboxRepo implements ports.OutboxRepository.
type OutboxRepo struct {
	pool Pool
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(pool Pool) ports.OutboxRepository {
	return &OutboxRepo{pool: pool}
}

func (r *OutboxRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.OutboxRecord) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO outbox_records
		 (id, kind, invoice_id, delivery_id, payload, status, created_at, next_attempt_at, attempt_count)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		record.ID, string(record.Kind), record.InvoiceID, record.DeliveryID, record.Payload,
		string(record.Status), record.CreatedAt, record.NextAttemptAt, record.AttemptCount)
	if err != nil {
		return fmt.Errorf("insert outbox record: %w", err)
	}
	return nil
}

// ClaimBatch implements the claim/lease protocol spec.md §4.3 requires
// for safe at-least-once dispatch across horizontally-scaled
// dispatcher instances: SKIP LOCKED lets two dispatchers run the same
// query concurrently without blocking on each other, and a lapsed
// claim_deadline makes a crashed dispatcher's claims reclaimable
// without operator intervention.
func (r *OutboxRepo) ClaimBatch(ctx context.Context, claimToken uuid.UUID, leaseDuration time.Duration, limit int) ([]domain.OutboxRecord, error) {
	deadline := time.Now().Add(leaseDuration)
	rows, err := r.pool.Query(ctx,
		`UPDATE outbox_records
		 SET status=$1, claim_token=$2, claim_deadline=$3
		 WHERE id IN (
		     SELECT id FROM outbox_records
		     WHERE (status=$4 AND next_attempt_at <= NOW())
		        OR (status=$1 AND claim_deadline < NOW())
		     ORDER BY next_attempt_at ASC
		     LIMIT $5
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING id, kind, invoice_id, delivery_id, payload, status, created_at, next_attempt_at, attempt_count, claim_token, claim_deadline`,
		string(domain.OutboxStatusInFlight), claimToken, deadline, string(domain.OutboxStatusPending), limit)
	if err != nil {
		return nil, fmt.Errorf("claim outbox batch: %w", err)
	}
	defer rows.Close()

	var out []domain.OutboxRecord
	for rows.Next() {
		var rec domain.OutboxRecord
		var kind, status string
		if err := rows.Scan(
			&rec.ID, &kind, &rec.InvoiceID, &rec.DeliveryID, &rec.Payload, &status,
			&rec.CreatedAt, &rec.NextAttemptAt, &rec.AttemptCount, &rec.ClaimToken, &rec.ClaimDeadline,
		); err != nil {
			return nil, err
		}
		rec.Kind = domain.OutboxKind(kind)
		rec.Status = domain.OutboxStatus(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *OutboxRepo) MarkDone(ctx context.Context, id uuid.UUID, claimToken uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_records SET status=$1, claim_token=NULL, claim_deadline=NULL
		 WHERE id=$2 AND claim_token=$3`,
		string(domain.OutboxStatusDone), id, claimToken)
	if err != nil {
		return fmt.Errorf("mark outbox done: %w", err)
	}
	return nil
}

func (r *OutboxRepo) MarkRetry(ctx context.Context, id uuid.UUID, claimToken uuid.UUID, nextAttemptAt time.Time, attemptCount int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_records
		 SET status=$1, next_attempt_at=$2, attempt_count=$3, claim_token=NULL, claim_deadline=NULL
		 WHERE id=$4 AND claim_token=$5`,
		string(domain.OutboxStatusPending), nextAttemptAt, attemptCount, id, claimToken)
	if err != nil {
		return fmt.Errorf("mark outbox retry: %w", err)
	}
	return nil
}

func (r *OutboxRepo) MarkDead(ctx context.Context, id uuid.UUID, claimToken uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_records SET status=$1, claim_token=NULL, claim_deadline=NULL
		 WHERE id=$2 AND claim_token=$3`,
		string(domain.OutboxStatusDead), id, claimToken)
	if err != nil {
		return fmt.Errorf("mark outbox dead: %w", err)
	}
	return nil
}
