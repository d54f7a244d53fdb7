package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) ports.MerchantRepository {
	return &MerchantRepo{pool: pool}
}

func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT id, api_key_hash, callback_signing_secret_enc, active, created_at, updated_at
		FROM merchants WHERE id = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.APIKeyHash, &m.CallbackSigningSecretEnc, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}
	return m, nil
}

func (r *MerchantRepo) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Merchant, error) {
	query := `SELECT id, api_key_hash, callback_signing_secret_enc, active, created_at, updated_at
		FROM merchants WHERE api_key_hash = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, apiKeyHash).Scan(
		&m.ID, &m.APIKeyHash, &m.CallbackSigningSecretEnc, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by api_key_hash: %w", err)
	}
	return m, nil
}
