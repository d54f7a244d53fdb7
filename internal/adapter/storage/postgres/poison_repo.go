package postgres

import (
	"context"
	"fmt"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
)

// PoisonEventRepo implements ports.PoisonEventRepository.
type PoisonEventRepo struct {
	pool Pool
}

// NewPoisonEventRepo creates a new PoisonEventRepo.
func NewPoisonEventRepo(pool Pool) ports.PoisonEventRepository {
	return &PoisonEventRepo{pool: pool}
}

func (r *PoisonEventRepo) Create(ctx context.Context, event *domain.PoisonEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO poison_events (id, chain, tx_hash, log_index, raw_payload, reason, quarantined_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		event.ID, event.Chain, event.TxHash, event.LogIndex, event.RawPayload, event.Reason, event.QuarantinedAt)
	if err != nil {
		return fmt.Errorf("insert poison event: %w", err)
	}
	return nil
}
