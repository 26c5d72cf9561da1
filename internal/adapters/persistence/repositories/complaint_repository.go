package repositories

import (
	"context"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/core/domain"
)

// complaintRepository implements ComplaintRepository interface.
// Complaints are stored newest first.
type complaintRepository struct {
	col *collection[domain.Complaint]
}

// NewComplaintRepository creates a new complaint repository. There is no seed set.
func NewComplaintRepository(store kv.Store, opts Options) ComplaintRepository {
	return &complaintRepository{
		col: &collection[domain.Complaint]{
			store:      store,
			key:        opts.key("complaints"),
			decode:     decodeComplaints,
			fallback:   func() []domain.Complaint { return []domain.Complaint{} },
			maxRetries: opts.MaxRetries,
		},
	}
}

// List lists all complaints, newest first
func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	return r.col.list(ctx)
}

// Prepend adds a complaint at the top
func (r *complaintRepository) Prepend(ctx context.Context, complaint domain.Complaint) error {
	_, err := r.col.mutate(ctx, func(complaints []domain.Complaint) ([]domain.Complaint, error) {
		return append([]domain.Complaint{complaint}, complaints...), nil
	})
	return err
}

// Update applies fn to one complaint by id
func (r *complaintRepository) Update(ctx context.Context, id string, fn func(*domain.Complaint) error) (*domain.Complaint, error) {
	var updated domain.Complaint
	_, err := r.col.mutate(ctx, func(complaints []domain.Complaint) ([]domain.Complaint, error) {
		for i := range complaints {
			if complaints[i].ID != id {
				continue
			}
			c := complaints[i]
			if err := fn(&c); err != nil {
				return nil, err
			}
			complaints[i] = c
			updated = c
			return complaints, nil
		}
		return nil, domain.ErrComplaintNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
