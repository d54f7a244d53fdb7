package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/internal/money"
)

// IntentRepo implements ports.IntentRepository.
type IntentRepo struct {
	pool Pool
}

// NewIntentRepo creates a new IntentRepo.
func NewIntentRepo(pool Pool) ports.IntentRepository {
	return &IntentRepo{pool: pool}
}

const intentColumns = `id, invoice_id, token, chain, deposit_address, target_atomic, credited_atomic,
		 status, created_at, updated_at`

func scanIntent(row pgx.Row) (*domain.PaymentIntent, error) {
	in := &domain.PaymentIntent{}
	var status string
	err := row.Scan(
		&in.ID, &in.InvoiceID, &in.Token, &in.Chain, &in.DepositAddress, &in.TargetAtomic, &in.CreditedAtomic,
		&status, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	in.Status = domain.IntentStatus(status)
	return in, nil
}

func (r *IntentRepo) Create(ctx context.Context, tx pgx.Tx, intent *domain.PaymentIntent) error {
	query := `INSERT INTO payment_intents
		(id, invoice_id, token, chain, deposit_address, target_atomic, credited_atomic, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := tx.Exec(ctx, query,
		intent.ID, intent.InvoiceID, intent.Token, intent.Chain, intent.DepositAddress,
		intent.TargetAtomic, intent.CreditedAtomic, string(intent.Status), intent.CreatedAt, intent.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment intent: %w", err)
	}
	return nil
}

func (r *IntentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentIntent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+intentColumns+` FROM payment_intents WHERE id = $1`, id)
	in, err := scanIntent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intent by id: %w", err)
	}
	return in, nil
}

func (r *IntentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentIntent, error) {
	row := tx.QueryRow(ctx, `SELECT `+intentColumns+` FROM payment_intents WHERE id = $1 FOR UPDATE`, id)
	in, err := scanIntent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intent for update: %w", err)
	}
	return in, nil
}

func (r *IntentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentIntent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+intentColumns+` FROM payment_intents WHERE invoice_id = $1 ORDER BY created_at ASC`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list intents by invoice id: %w", err)
	}
	defer rows.Close()

	var out []domain.PaymentIntent
	for rows.Next() {
		in, err := scanIntent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

// ListActiveByDepositAddressForUpdate locks every intent on a reused
// deposit address, ordered oldest-first so the matcher's tie-break
// (prefer the not-failed-terminal one) is deterministic under
// concurrent credits (spec.md §4.1).
func (r *IntentRepo) ListActiveByDepositAddressForUpdate(ctx context.Context, tx pgx.Tx, chain, depositAddress string) ([]domain.PaymentIntent, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+intentColumns+` FROM payment_intents
		 WHERE chain = $1 AND deposit_address = $2
		 ORDER BY created_at ASC
		 FOR UPDATE`, chain, depositAddress)
	if err != nil {
		return nil, fmt.Errorf("list intents by deposit address: %w", err)
	}
	defer rows.Close()

	var out []domain.PaymentIntent
	for rows.Next() {
		in, err := scanIntent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

func (r *IntentRepo) UpdateStatusAndCredited(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.IntentStatus, credited money.Amount) error {
	_, err := tx.Exec(ctx,
		`UPDATE payment_intents SET status=$1, credited_atomic=$2, updated_at=NOW() WHERE id=$3`,
		string(status), credited, id)
	if err != nil {
		return fmt.Errorf("update intent status and credited: %w", err)
	}
	return nil
}

func (r *IntentRepo) ListNonTerminalByInvoiceIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID) ([]domain.PaymentIntent, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+intentColumns+` FROM payment_intents
		 WHERE invoice_id = $1 AND status NOT IN ($2,$3,$4)
		 FOR UPDATE`,
		invoiceID, string(domain.IntentStatusExpired), string(domain.IntentStatusCancelled), string(domain.IntentStatusConfirmed))
	if err != nil {
		return nil, fmt.Errorf("list non-terminal intents: %w", err)
	}
	defer rows.Close()

	var out []domain.PaymentIntent
	for rows.Next() {
		in, err := scanIntent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}
