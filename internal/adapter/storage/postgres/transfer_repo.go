package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

const pgUniqueViolation = "23505"

// TransferRepo implements ports.TransferRepository.
type TransferRepo struct {
	pool Pool
}

// NewTransferRepo creates a new TransferRepo.
func NewTransferRepo(pool Pool) ports.TransferRepository {
	return &TransferRepo{pool: pool}
}

const transferColumns = `id, chain, tx_hash, log_index, token_contract, to_address, atomic_amount,
		 block_number, first_seen_at, last_seen_at`

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	t := &domain.Transfer{}
	err := row.Scan(
		&t.ID, &t.Chain, &t.TxHash, &t.LogIndex, &t.TokenContract, &t.ToAddress, &t.AtomicAmount,
		&t.BlockNumber, &t.FirstSeenAt, &t.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransferRepo) Create(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error {
	query := `INSERT INTO transfers
		(id, chain, tx_hash, log_index, token_contract, to_address, atomic_amount, block_number, first_seen_at, last_seen_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := tx.Exec(ctx, query,
		transfer.ID, transfer.Chain, transfer.TxHash, transfer.LogIndex, transfer.TokenContract,
		transfer.ToAddress, transfer.AtomicAmount, transfer.BlockNumber, transfer.FirstSeenAt, transfer.LastSeenAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ports.ErrAlreadyExists
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) GetByChainEvent(ctx context.Context, chain, txHash string, logIndex int) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE chain=$1 AND tx_hash=$2 AND log_index=$3`,
		chain, txHash, logIndex)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer by chain event: %w", err)
	}
	return t, nil
}

func (r *TransferRepo) ListByIntentID(ctx context.Context, intentID uuid.UUID) ([]domain.Transfer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.chain, t.tx_hash, t.log_index, t.token_contract, t.to_address, t.atomic_amount,
		        t.block_number, t.first_seen_at, t.last_seen_at
		 FROM transfers t
		 JOIN intent_funds f ON f.transfer_id = t.id
		 WHERE f.intent_id = $1
		 ORDER BY t.first_seen_at ASC`, intentID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by intent id: %w", err)
	}
	defer rows.Close()

	var out []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TransferRepo) UpdateBlockNumber(ctx context.Context, tx pgx.Tx, id uuid.UUID, blockNumber int64) error {
	_, err := tx.Exec(ctx, `UPDATE transfers SET block_number=$1, last_seen_at=NOW() WHERE id=$2`, blockNumber, id)
	if err != nil {
		return fmt.Errorf("update transfer block number: %w", err)
	}
	return nil
}
