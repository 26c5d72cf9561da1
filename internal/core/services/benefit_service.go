package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"opor-loyalty/internal/adapters/persistence/repositories"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/metrics"

	"github.com/google/uuid"
)

// BenefitService handles the benefit catalogue
type BenefitService struct {
	benefitRepo repositories.BenefitRepository
	seed        func() []domain.Benefit
	now         func() time.Time
}

// NewBenefitService creates a new benefit service
func NewBenefitService(benefitRepo repositories.BenefitRepository, seed func() []domain.Benefit) *BenefitService {
	return &BenefitService{
		benefitRepo: benefitRepo,
		seed:        seed,
		now:         time.Now,
	}
}

// BenefitInput represents benefit create/update input
type BenefitInput struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=1000"`
	Tier        domain.Tier `json:"tier" validate:"required,oneof=Silver Gold"`
	PointsCost  int         `json:"pointsCost" validate:"gte=0"`
	ExpiryDate  string      `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	NoExpiry    bool        `json:"noExpiry"`
}

// BenefitView is a benefit as one member sees it
type BenefitView struct {
	domain.Benefit
	Redeemable bool `json:"redeemable"`
}

// CustomerBenefits is a member's benefit screen
type CustomerBenefits struct {
	Available []BenefitView `json:"available"`
	Expired   []BenefitView `json:"expired"`
}

// ListBenefits returns the catalogue in stored order, seeding it on first use
func (s *BenefitService) ListBenefits(ctx context.Context) ([]domain.Benefit, error) {
	benefits, err := s.benefitRepo.List(ctx)
	switch {
	case err == nil:
		return benefits, nil
	case errors.Is(err, domain.ErrRecordAbsent):
		stored, err := s.benefitRepo.Seed(ctx, s.seed())
		if err != nil {
			log.Printf("⚠️ Failed to persist seed benefits: %v", err)
			return s.seed(), nil
		}
		return stored, nil
	case errors.Is(err, domain.ErrRecordCorrupt):
		log.Printf("⚠️ %v, serving seed benefits", err)
		metrics.SeedFallbacks.WithLabelValues("benefits").Inc()
		return s.seed(), nil
	default:
		return nil, err
	}
}

// SaveBenefits replaces the whole catalogue
func (s *BenefitService) SaveBenefits(ctx context.Context, benefits []domain.Benefit) error {
	for _, b := range benefits {
		if b.ID == "" || !b.Tier.Valid() || b.PointsCost < 0 {
			return domain.ErrInvalidInput
		}
	}
	if benefits == nil {
		benefits = []domain.Benefit{}
	}
	return s.benefitRepo.SaveAll(ctx, benefits)
}

// GetBenefit returns one benefit by id
func (s *BenefitService) GetBenefit(ctx context.Context, id string) (*domain.Benefit, error) {
	benefits, err := s.ListBenefits(ctx)
	if err != nil {
		return nil, err
	}
	for i := range benefits {
		if benefits[i].ID == id {
			b := benefits[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBenefitNotFound
}

// CreateBenefit appends a new benefit dated today
func (s *BenefitService) CreateBenefit(ctx context.Context, input *BenefitInput) (*domain.Benefit, error) {
	benefit, err := input.toBenefit()
	if err != nil {
		return nil, err
	}
	benefit.ID = uuid.NewString()
	benefit.DateAdded = domain.FormatDate(s.now())

	_, err = s.benefitRepo.Mutate(ctx, func(benefits []domain.Benefit) ([]domain.Benefit, error) {
		return append(benefits, benefit), nil
	})
	if err != nil {
		return nil, err
	}
	return &benefit, nil
}

// UpdateBenefit edits a benefit in place, keeping its id and dateAdded
func (s *BenefitService) UpdateBenefit(ctx context.Context, id string, input *BenefitInput) (*domain.Benefit, error) {
	edited, err := input.toBenefit()
	if err != nil {
		return nil, err
	}

	var updated domain.Benefit
	_, err = s.benefitRepo.Mutate(ctx, func(benefits []domain.Benefit) ([]domain.Benefit, error) {
		for i := range benefits {
			if benefits[i].ID != id {
				continue
			}
			edited.ID = id
			edited.DateAdded = benefits[i].DateAdded
			benefits[i] = edited
			updated = edited
			return benefits, nil
		}
		return nil, domain.ErrBenefitNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBenefit removes a benefit. Members' usedBenefits are left as they are.
func (s *BenefitService) DeleteBenefit(ctx context.Context, id string) error {
	_, err := s.benefitRepo.Mutate(ctx, func(benefits []domain.Benefit) ([]domain.Benefit, error) {
		out := make([]domain.Benefit, 0, len(benefits))
		for _, b := range benefits {
			if b.ID != id {
				out = append(out, b)
			}
		}
		if len(out) == len(benefits) {
			return nil, domain.ErrBenefitNotFound
		}
		return out, nil
	})
	return err
}

// CustomerView returns the member's eligible benefits split by expiry
func (s *BenefitService) CustomerView(ctx context.Context, member *domain.Member) (*CustomerBenefits, error) {
	all, err := s.ListBenefits(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.FormatDate(s.now())
	active, expired := domain.PartitionByExpiry(domain.EligibleBenefits(*member, all), today)

	view := &CustomerBenefits{
		Available: make([]BenefitView, 0, len(active)),
		Expired:   make([]BenefitView, 0, len(expired)),
	}
	for _, b := range active {
		view.Available = append(view.Available, BenefitView{Benefit: b, Redeemable: domain.IsRedeemable(*member, b, today)})
	}
	for _, b := range expired {
		view.Expired = append(view.Expired, BenefitView{Benefit: b})
	}
	return view, nil
}

// ExpiringWithin returns benefits expiring between today and today+days
func (s *BenefitService) ExpiringWithin(ctx context.Context, days int) ([]domain.Benefit, error) {
	all, err := s.ListBenefits(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return domain.ExpiringBetween(all, domain.FormatDate(now), domain.FormatDate(now.AddDate(0, 0, days))), nil
}

func (in *BenefitInput) toBenefit() (domain.Benefit, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || !in.Tier.Valid() || in.PointsCost < 0 {
		return domain.Benefit{}, domain.ErrInvalidInput
	}

	b := domain.Benefit{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Tier:        in.Tier,
		PointsCost:  in.PointsCost,
	}
	if !in.NoExpiry && in.ExpiryDate != "" {
		if _, err := time.Parse(domain.DateLayout, in.ExpiryDate); err != nil {
			return domain.Benefit{}, domain.ErrInvalidInput
		}
		expiry := in.ExpiryDate
		b.ExpiryDate = &expiry
	}
	return b, nil
}
