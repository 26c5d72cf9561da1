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
	"opor-loyalty/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// MemberService handles the point ledger
type MemberService struct {
	memberRepo  repositories.MemberRepository
	benefits    *BenefitService
	seed        func() []domain.Member
	lookupDelay time.Duration
	now         func() time.Time
}

// NewMemberService creates a new member service.
// lookupDelay is the artificial latency applied to phone lookups.
func NewMemberService(
	memberRepo repositories.MemberRepository,
	benefits *BenefitService,
	seed func() []domain.Member,
	lookupDelay time.Duration,
) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		benefits:    benefits,
		seed:        seed,
		lookupDelay: lookupDelay,
		now:         time.Now,
	}
}

// CreateMemberInput represents member registration input
type CreateMemberInput struct {
	Name          string      `json:"name" validate:"required,max=100"`
	PhoneNumber   string      `json:"phoneNumber" validate:"required,max=20"`
	Tier          domain.Tier `json:"tier" validate:"required,oneof=Silver Gold"`
	InitialPoints int         `json:"initialPoints"`
}

// ListMembersOutput represents one roster page
type ListMembersOutput struct {
	Members []domain.Member  `json:"members"`
	Meta    *pagination.Meta `json:"meta"`
}

func (s *MemberService) today() string {
	return domain.FormatDate(s.now())
}

func newTransactionID() string {
	return ulid.Make().String()
}

// ListMembers returns every member.
// A never-written collection is seeded unless another writer created it
// first; an unreadable one is
// replaced by the seed set for this read only.
func (s *MemberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.memberRepo.List(ctx)
	switch {
	case err == nil:
		return members, nil
	case errors.Is(err, domain.ErrRecordAbsent):
		stored, err := s.memberRepo.Seed(ctx, s.seed())
		if err != nil {
			log.Printf("⚠️ Failed to persist seed members: %v", err)
			return s.seed(), nil
		}
		return stored, nil
	case errors.Is(err, domain.ErrRecordCorrupt):
		log.Printf("⚠️ %v, serving seed members", err)
		metrics.SeedFallbacks.WithLabelValues("members").Inc()
		return s.seed(), nil
	default:
		return nil, err
	}
}

// GetMember returns one member by id
func (s *MemberService) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	members, err := s.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == id {
			m := members[i]
			return &m, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

// FindMemberByPhone returns the first member whose phone equals phone byte for byte.
// The lookup waits lookupDelay first and stops early if ctx is cancelled.
func (s *MemberService) FindMemberByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	if s.lookupDelay > 0 {
		timer := time.NewTimer(s.lookupDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	if phone == "" {
		return nil, domain.ErrMemberNotFound
	}

	members, err := s.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].PhoneNumber == phone {
			m := members[i]
			return &m, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

// CreateMember registers a member with a single initial-points transaction
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*domain.Member, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.PhoneNumber)
	if name == "" || phone == "" || !input.Tier.Valid() {
		return nil, domain.ErrInvalidInput
	}

	today := s.today()
	member := domain.Member{
		ID:           uuid.NewString(),
		Name:         name,
		PhoneNumber:  phone,
		Tier:         input.Tier,
		Points:       input.InitialPoints,
		UsedBenefits: []string{},
		Transactions: []domain.Transaction{{
			ID:          newTransactionID(),
			Date:        today,
			Amount:      input.InitialPoints,
			Description: domain.DescInitialPoints,
		}},
		JoinedDate: today,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	metrics.MembersCreated.Inc()
	log.Printf("✅ Member registered: %s (%s)", member.ID, member.Tier)
	return &member, nil
}

// AddPoints adds amount (any sign) to the balance and prepends one transaction.
// An empty description records a dine-in visit.
func (s *MemberService) AddPoints(ctx context.Context, memberID string, amount int, description string) (*domain.Member, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		description = domain.DescDineIn
	}

	tx := domain.Transaction{
		ID:          newTransactionID(),
		Date:        s.today(),
		Amount:      amount,
		Description: description,
	}

	updated, err := s.memberRepo.Update(ctx, memberID, func(m *domain.Member) error {
		m.Points += amount
		m.Transactions = append([]domain.Transaction{tx}, m.Transactions...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		metrics.PointsGranted.Add(float64(amount))
	}
	return updated, nil
}

// RedeemBenefit spends pointsCost on benefitID. The balance check and the
// write commit together, so concurrent redemptions cannot overdraw.
// A zero cost always succeeds.
func (s *MemberService) RedeemBenefit(ctx context.Context, memberID, benefitID string, pointsCost int) (*domain.Member, error) {
	if pointsCost < 0 {
		return nil, domain.ErrInvalidInput
	}

	description := domain.DescRedeem
	if pointsCost == 0 {
		description = domain.DescRedeemFree
	}
	tx := domain.Transaction{
		ID:          newTransactionID(),
		Date:        s.today(),
		Amount:      -pointsCost,
		Description: description,
	}

	updated, err := s.memberRepo.Update(ctx, memberID, func(m *domain.Member) error {
		if pointsCost > 0 && m.Points < pointsCost {
			return domain.ErrInsufficientPoints
		}
		m.Points -= pointsCost
		m.UsedBenefits = append(m.UsedBenefits, benefitID)
		m.Transactions = append([]domain.Transaction{tx}, m.Transactions...)
		return nil
	})
	if err != nil {
		metrics.Redemptions.WithLabelValues(redemptionResult(err)).Inc()
		return nil, err
	}

	metrics.Redemptions.WithLabelValues("success").Inc()
	return updated, nil
}

// RedeemForMember redeems a stored benefit at its own cost after checking
// tier eligibility and expiry
func (s *MemberService) RedeemForMember(ctx context.Context, memberID, benefitID string) (*domain.Member, error) {
	member, err := s.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	benefit, err := s.benefits.GetBenefit(ctx, benefitID)
	if err != nil {
		return nil, err
	}

	if len(domain.EligibleBenefits(*member, []domain.Benefit{*benefit})) == 0 {
		metrics.Redemptions.WithLabelValues("not_eligible").Inc()
		return nil, domain.ErrBenefitNotEligible
	}
	if domain.IsExpired(*benefit, s.today()) {
		metrics.Redemptions.WithLabelValues("expired").Inc()
		return nil, domain.ErrBenefitExpired
	}

	return s.RedeemBenefit(ctx, memberID, benefit.ID, benefit.PointsCost)
}

// UpdateMember overwrites the stored member with the same id. Last writer wins.
func (s *MemberService) UpdateMember(ctx context.Context, member *domain.Member) error {
	if member == nil || member.ID == "" {
		return domain.ErrInvalidInput
	}
	if member.Tier != "" && !member.Tier.Valid() {
		return domain.ErrInvalidInput
	}

	next := member.Clone()
	_, err := s.memberRepo.Update(ctx, member.ID, func(m *domain.Member) error {
		if next.Tier == "" {
			next.Tier = m.Tier
		}
		*m = next
		return nil
	})
	return err
}

// EditMember applies fn to the current stored record and commits it with
// compare-and-swap, so fields fn leaves alone keep their latest values.
func (s *MemberService) EditMember(ctx context.Context, id string, fn func(*domain.Member) error) (*domain.Member, error) {
	if id == "" || fn == nil {
		return nil, domain.ErrInvalidInput
	}
	return s.memberRepo.Update(ctx, id, func(m *domain.Member) error {
		if err := fn(m); err != nil {
			return err
		}
		if m.ID != id || !m.Tier.Valid() {
			return domain.ErrInvalidInput
		}
		return nil
	})
}

// Roster returns one filtered, sorted page of the member list
func (s *MemberService) Roster(ctx context.Context, q domain.RosterQuery, params *pagination.Params) (*ListMembersOutput, error) {
	members, err := s.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := domain.FilterMembers(members, q)
	return &ListMembersOutput{
		Members: pagination.Slice(filtered, params),
		Meta:    pagination.GetMeta(params, int64(len(filtered))),
	}, nil
}

func redemptionResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient"
	case errors.Is(err, domain.ErrMemberNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrStoreConflict):
		return "conflict"
	default:
		return "error"
	}
}
