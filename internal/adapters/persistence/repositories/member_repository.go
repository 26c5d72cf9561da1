package repositories

import (
	"context"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/core/domain"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	col *collection[domain.Member]
}

// NewMemberRepository creates a new member repository.
// seed supplies the starting collection when none is stored or it is unreadable.
func NewMemberRepository(store kv.Store, opts Options, seed func() []domain.Member) MemberRepository {
	return &memberRepository{
		col: &collection[domain.Member]{
			store:      store,
			key:        opts.key("members"),
			decode:     decodeMembers,
			fallback:   seed,
			maxRetries: opts.MaxRetries,
		},
	}
}

// List lists all members in stored order
func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	return r.col.list(ctx)
}

// Seed writes members only when the collection was never stored and
// returns the stored collection
func (r *memberRepository) Seed(ctx context.Context, members []domain.Member) ([]domain.Member, error) {
	return r.col.initialize(ctx, members)
}

// SaveAll replaces the whole member collection
func (r *memberRepository) SaveAll(ctx context.Context, members []domain.Member) error {
	return r.col.replace(ctx, members)
}

// Create appends a member
func (r *memberRepository) Create(ctx context.Context, member domain.Member) error {
	_, err := r.col.mutate(ctx, func(members []domain.Member) ([]domain.Member, error) {
		return append(members, member), nil
	})
	return err
}

// Update applies fn to one member by id
func (r *memberRepository) Update(ctx context.Context, id string, fn func(*domain.Member) error) (*domain.Member, error) {
	var updated domain.Member
	_, err := r.col.mutate(ctx, func(members []domain.Member) ([]domain.Member, error) {
		for i := range members {
			if members[i].ID != id {
				continue
			}
			m := members[i].Clone()
			if err := fn(&m); err != nil {
				return nil, err
			}
			members[i] = m
			updated = m
			return members, nil
		}
		return nil, domain.ErrMemberNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
