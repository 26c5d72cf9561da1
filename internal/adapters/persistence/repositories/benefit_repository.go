package repositories

import (
	"context"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/core/domain"
)

// benefitRepository implements BenefitRepository interface
type benefitRepository struct {
	col *collection[domain.Benefit]
}

// NewBenefitRepository creates a new benefit repository
func NewBenefitRepository(store kv.Store, opts Options, seed func() []domain.Benefit) BenefitRepository {
	return &benefitRepository{
		col: &collection[domain.Benefit]{
			store:      store,
			key:        opts.key("benefits"),
			decode:     decodeBenefits,
			fallback:   seed,
			maxRetries: opts.MaxRetries,
		},
	}
}

// List lists all benefits in stored order
func (r *benefitRepository) List(ctx context.Context) ([]domain.Benefit, error) {
	return r.col.list(ctx)
}

// Seed writes benefits only when the collection was never stored and
// returns the stored collection
func (r *benefitRepository) Seed(ctx context.Context, benefits []domain.Benefit) ([]domain.Benefit, error) {
	return r.col.initialize(ctx, benefits)
}

// SaveAll replaces the whole benefit collection
func (r *benefitRepository) SaveAll(ctx context.Context, benefits []domain.Benefit) error {
	return r.col.replace(ctx, benefits)
}

// Mutate applies fn to the benefit collection atomically
func (r *benefitRepository) Mutate(ctx context.Context, fn func([]domain.Benefit) ([]domain.Benefit, error)) ([]domain.Benefit, error) {
	return r.col.mutate(ctx, fn)
}
