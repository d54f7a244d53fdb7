package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// UnmatchedTransferRepo implements ports.UnmatchedTransferRepository.
type UnmatchedTransferRepo struct {
	pool Pool
}

// NewUnmatchedTransferRepo creates a new UnmatchedTransferRepo.
func NewUnmatchedTransferRepo(pool Pool) ports.UnmatchedTransferRepository {
	return &UnmatchedTransferRepo{pool: pool}
}

func (r *UnmatchedTransferRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.UnmatchedTransfer) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO unmatched_transfers (id, chain, token_contract, to_address, transfer_id, atomic_amount, created_at, resolved)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		record.ID, record.Chain, record.TokenContract, record.ToAddress, record.TransferID,
		record.AtomicAmount, record.CreatedAt, record.Resolved)
	if err != nil {
		return fmt.Errorf("insert unmatched transfer: %w", err)
	}
	return nil
}

func (r *UnmatchedTransferRepo) ListUnresolvedByAddress(ctx context.Context, chain, tokenContract, toAddress string) ([]domain.UnmatchedTransfer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chain, token_contract, to_address, transfer_id, atomic_amount, created_at, resolved
		 FROM unmatched_transfers
		 WHERE chain=$1 AND token_contract=$2 AND to_address=$3 AND resolved=false
		 ORDER BY created_at ASC`, chain, tokenContract, toAddress)
	if err != nil {
		return nil, fmt.Errorf("list unresolved transfers: %w", err)
	}
	defer rows.Close()

	var out []domain.UnmatchedTransfer
	for rows.Next() {
		var u domain.UnmatchedTransfer
		if err := rows.Scan(&u.ID, &u.Chain, &u.TokenContract, &u.ToAddress, &u.TransferID, &u.AtomicAmount, &u.CreatedAt, &u.Resolved); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UnmatchedTransferRepo) MarkResolved(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE unmatched_transfers SET resolved=true WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("mark unmatched transfer resolved: %w", err)
	}
	return nil
}
