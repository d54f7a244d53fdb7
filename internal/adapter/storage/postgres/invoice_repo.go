package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// InvoiceRepo implements ports.InvoiceRepository.
type InvoiceRepo struct {
	pool Pool
}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(pool Pool) ports.InvoiceRepository {
	return &InvoiceRepo{pool: pool}
}

func (r *InvoiceRepo) Create(ctx context.Context, tx pgx.Tx, inv *domain.Invoice) error {
	options, err := json.Marshal(inv.AllowedOptions)
	if err != nil {
		return fmt.Errorf("marshal allowed_options: %w", err)
	}

	query := `INSERT INTO invoices
		(id, merchant_id, merchant_order_id, fiat_amount_cents, currency, allowed_options,
		 callback_url, status, expires_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err = tx.Exec(ctx, query,
		inv.ID, inv.MerchantID, inv.MerchantOrderID, inv.FiatAmountCents, inv.Currency, options,
		inv.CallbackURL, string(inv.Status), inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	var status string
	var options []byte
	err := row.Scan(
		&inv.ID, &inv.MerchantID, &inv.MerchantOrderID, &inv.FiatAmountCents, &inv.Currency, &options,
		&inv.CallbackURL, &status, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.InvoiceStatus(status)
	if len(options) > 0 {
		if err := json.Unmarshal(options, &inv.AllowedOptions); err != nil {
			return nil, fmt.Errorf("unmarshal allowed_options: %w", err)
		}
	}
	return inv, nil
}

const invoiceColumns = `id, merchant_id, merchant_order_id, fiat_amount_cents, currency, allowed_options,
		 callback_url, status, expires_at, created_at, updated_at`

func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error) {
	row := tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetByMerchantOrderID(ctx context.Context, merchantID uuid.UUID, merchantOrderID string) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE merchant_id = $1 AND merchant_order_id = $2`,
		merchantID, merchantOrderID)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by merchant order id: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.InvoiceStatus) error {
	_, err := tx.Exec(ctx, `UPDATE invoices SET status=$1, updated_at=NOW() WHERE id=$2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) ListExpirable(ctx context.Context, before time.Time, limit int) ([]domain.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
		 WHERE status IN ($1,$2) AND expires_at <= $3
		 ORDER BY expires_at ASC
		 LIMIT $4`,
		string(domain.InvoiceStatusPending), string(domain.InvoiceStatusUnderpaid), before, limit)
	if err != nil {
		return nil, fmt.Errorf("list expirable invoices: %w", err)
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}
