package repositories

import (
	"context"

	"opor-loyalty/internal/core/domain"
)

// List methods return domain.ErrRecordAbsent when the collection was never
// written and an error matching domain.ErrRecordCorrupt when it cannot be
// decoded. Callers decide what to substitute.

// MemberRepository defines member repository interface
type MemberRepository interface {
	List(ctx context.Context) ([]domain.Member, error)
	// Seed stores members unless a collection already exists and returns
	// the stored collection either way.
	Seed(ctx context.Context, members []domain.Member) ([]domain.Member, error)
	SaveAll(ctx context.Context, members []domain.Member) error
	Create(ctx context.Context, member domain.Member) error
	// Update applies fn to the member with id and commits atomically.
	// fn may run more than once when a concurrent write wins the race.
	Update(ctx context.Context, id string, fn func(*domain.Member) error) (*domain.Member, error)
}

// BenefitRepository defines benefit repository interface
type BenefitRepository interface {
	List(ctx context.Context) ([]domain.Benefit, error)
	Seed(ctx context.Context, benefits []domain.Benefit) ([]domain.Benefit, error)
	SaveAll(ctx context.Context, benefits []domain.Benefit) error
	// Mutate replaces the collection with fn's result atomically.
	Mutate(ctx context.Context, fn func([]domain.Benefit) ([]domain.Benefit, error)) ([]domain.Benefit, error)
}

// ComplaintRepository defines complaint repository interface
type ComplaintRepository interface {
	List(ctx context.Context) ([]domain.Complaint, error)
	Prepend(ctx context.Context, complaint domain.Complaint) error
	Update(ctx context.Context, id string, fn func(*domain.Complaint) error) (*domain.Complaint, error)
}

// Options configures collection repositories
type Options struct {
	// Namespace prefixes every collection key, e.g. "zaab" -> "zaab_members"
	Namespace  string
	MaxRetries int
}

func (o Options) key(name string) string {
	if o.Namespace == "" {
		return name
	}
	return o.Namespace + "_" + name
}
