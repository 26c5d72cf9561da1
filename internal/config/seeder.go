package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"opor-loyalty/internal/adapters/persistence/repositories"
	"opor-loyalty/internal/core/domain"

	"gopkg.in/yaml.v3"
)

//go:embed seed/seed.yaml
var seedYAML []byte

type seedFile struct {
	Version  int           `yaml:"version"`
	Benefits []seedBenefit `yaml:"benefits"`
	Members  []seedMember  `yaml:"members"`
}

type seedBenefit struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Tier        string `yaml:"tier"`
	PointsCost  int    `yaml:"pointsCost"`
	DateAdded   string `yaml:"dateAdded"`
	ExpiryDate  string `yaml:"expiryDate"`
}

type seedTransaction struct {
	ID          string `yaml:"id"`
	Date        string `yaml:"date"`
	Amount      int    `yaml:"amount"`
	Description string `yaml:"description"`
}

type seedMember struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	PhoneNumber  string            `yaml:"phoneNumber"`
	Tier         string            `yaml:"tier"`
	Points       int               `yaml:"points"`
	UsedBenefits []string          `yaml:"usedBenefits"`
	Transactions []seedTransaction `yaml:"transactions"`
	JoinedDate   string            `yaml:"joinedDate"`
}

// Seeder holds the starting member and benefit sets
type Seeder struct {
	seed seedFile
}

// NewSeeder parses the embedded seed file
func NewSeeder() (*Seeder, error) {
	return parseSeed(seedYAML)
}

func parseSeed(data []byte) (*Seeder, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}
	if f.Version > repositories.SchemaVersion {
		return nil, fmt.Errorf("seed data version %d is newer than schema %d", f.Version, repositories.SchemaVersion)
	}
	return &Seeder{seed: f}, nil
}

// Members returns a fresh copy of the seed members
func (s *Seeder) Members() []domain.Member {
	out := make([]domain.Member, 0, len(s.seed.Members))
	for _, m := range s.seed.Members {
		txs := make([]domain.Transaction, 0, len(m.Transactions))
		for _, t := range m.Transactions {
			txs = append(txs, domain.Transaction{ID: t.ID, Date: t.Date, Amount: t.Amount, Description: t.Description})
		}
		out = append(out, domain.Member{
			ID:           m.ID,
			Name:         m.Name,
			PhoneNumber:  m.PhoneNumber,
			Tier:         domain.Tier(m.Tier),
			Points:       m.Points,
			UsedBenefits: append([]string{}, m.UsedBenefits...),
			Transactions: txs,
			JoinedDate:   m.JoinedDate,
		})
	}
	return out
}

// Benefits returns a fresh copy of the seed benefits
func (s *Seeder) Benefits() []domain.Benefit {
	out := make([]domain.Benefit, 0, len(s.seed.Benefits))
	for _, b := range s.seed.Benefits {
		benefit := domain.Benefit{
			ID:          b.ID,
			Title:       b.Title,
			Description: b.Description,
			Tier:        domain.Tier(b.Tier),
			PointsCost:  b.PointsCost,
			DateAdded:   b.DateAdded,
		}
		if b.ExpiryDate != "" {
			expiry := b.ExpiryDate
			benefit.ExpiryDate = &expiry
		}
		out = append(out, benefit)
	}
	return out
}

// Run writes the seed sets to collections that have never been stored
func (s *Seeder) Run(ctx context.Context, members repositories.MemberRepository, benefits repositories.BenefitRepository) error {
	log.Println("🌱 Running store seeders...")

	if _, err := members.List(ctx); errors.Is(err, domain.ErrRecordAbsent) {
		if _, err := members.Seed(ctx, s.Members()); err != nil {
			return fmt.Errorf("seeding members: %w", err)
		}
		log.Printf("🌱 Seeded %d members", len(s.seed.Members))
	} else if err != nil {
		log.Printf("⚠️ Member seeder skipped: %v", err)
	}

	if _, err := benefits.List(ctx); errors.Is(err, domain.ErrRecordAbsent) {
		if _, err := benefits.Seed(ctx, s.Benefits()); err != nil {
			return fmt.Errorf("seeding benefits: %w", err)
		}
		log.Printf("🌱 Seeded %d benefits", len(s.seed.Benefits))
	} else if err != nil {
		log.Printf("⚠️ Benefit seeder skipped: %v", err)
	}

	log.Println("✅ Store seeding completed")
	return nil
}
