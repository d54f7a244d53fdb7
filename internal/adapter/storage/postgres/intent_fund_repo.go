package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// IntentFundRepo implements ports.IntentFundRepository.
type IntentFundRepo struct {
	pool Pool
}

// NewIntentFundRepo creates a new IntentFundRepo.
func NewIntentFundRepo(pool Pool) ports.IntentFundRepository {
	return &IntentFundRepo{pool: pool}
}

func (r *IntentFundRepo) Create(ctx context.Context, tx pgx.Tx, fund *domain.IntentFund) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO intent_funds (id, intent_id, transfer_id, credited_atomic, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		fund.ID, fund.IntentID, fund.TransferID, fund.CreditedAtomic, fund.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert intent fund: %w", err)
	}
	return nil
}

func (r *IntentFundRepo) ListByIntentID(ctx context.Context, intentID uuid.UUID) ([]domain.IntentFund, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, intent_id, transfer_id, credited_atomic, created_at
		 FROM intent_funds WHERE intent_id = $1 ORDER BY created_at ASC`, intentID)
	if err != nil {
		return nil, fmt.Errorf("list intent funds: %w", err)
	}
	defer rows.Close()

	var out []domain.IntentFund
	for rows.Next() {
		var f domain.IntentFund
		if err := rows.Scan(&f.ID, &f.IntentID, &f.TransferID, &f.CreditedAtomic, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
