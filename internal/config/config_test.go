package config

import (
	"context"
	"testing"
	"time"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/adapters/persistence/repositories"
	"opor-loyalty/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("STORE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Namespace != "zaab" {
		t.Errorf("expected zaab namespace, got %q", cfg.Store.Namespace)
	}
	if cfg.Staff.Passphrase != "opor45796" {
		t.Errorf("unexpected default passphrase %q", cfg.Staff.Passphrase)
	}
	if cfg.Chef.Model != "gemini-2.5-flash" || cfg.Chef.BaseURL != "" {
		t.Errorf("unexpected chef defaults %+v", cfg.Chef)
	}
	if cfg.Store.LookupDelay != 500*time.Millisecond {
		t.Errorf("unexpected lookup delay %v", cfg.Store.LookupDelay)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad mode", map[string]string{"APP_MODE": "staging"}},
		{"bad backend", map[string]string{"APP_MODE": "dev", "STORE_BACKEND": "etcd"}},
		{"prod default secret", map[string]string{"APP_MODE": "prod", "PROD_JWT_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_BACKEND", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSeederSets(t *testing.T) {
	s, err := NewSeeder()
	if err != nil {
		t.Fatalf("NewSeeder() error: %v", err)
	}

	members := s.Members()
	if len(members) != 2 {
		t.Fatalf("expected 2 seed members, got %d", len(members))
	}
	m2 := members[1]
	if m2.Tier != domain.TierGold || m2.Points != 850 || len(m2.UsedBenefits) != 1 || m2.UsedBenefits[0] != "b4" {
		t.Errorf("unexpected m2: %+v", m2)
	}
	if members[0].PhoneNumber != "0812345678" {
		t.Errorf("phone number must stay a string with leading zero, got %q", members[0].PhoneNumber)
	}

	benefits := s.Benefits()
	if len(benefits) != 6 {
		t.Fatalf("expected 6 seed benefits, got %d", len(benefits))
	}
	for _, b := range benefits {
		if b.ID == "b3" {
			if b.ExpiryDate == nil || *b.ExpiryDate != "2024-12-31" {
				t.Errorf("b3 expiry lost: %+v", b)
			}
		} else if b.ExpiryDate != nil {
			t.Errorf("%s should never expire", b.ID)
		}
	}

	// copies are independent
	members[0].UsedBenefits = append(members[0].UsedBenefits, "x")
	if len(s.Members()[0].UsedBenefits) != 0 {
		t.Error("Members() must return a fresh copy")
	}
}

func TestSeederRunOnlyFillsAbsent(t *testing.T) {
	ctx := context.Background()
	s, _ := NewSeeder()
	store := kv.NewMemoryStore()
	opts := repositories.Options{Namespace: "zaab"}
	members := repositories.NewMemberRepository(store, opts, s.Members)
	benefits := repositories.NewBenefitRepository(store, opts, s.Benefits)

	if err := benefits.SaveAll(ctx, []domain.Benefit{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(ctx, members, benefits); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got, err := members.List(ctx)
	if err != nil || len(got) != 2 {
		t.Errorf("expected seeded members, got %d (%v)", len(got), err)
	}
	bs, _ := benefits.List(ctx)
	if len(bs) != 0 {
		t.Errorf("existing benefits must not be overwritten, got %d", len(bs))
	}
}

func TestParseSeedRejectsNewerVersion(t *testing.T) {
	if _, err := parseSeed([]byte("version: 99\nmembers: []\n")); err == nil {
		t.Error("expected an error for a seed file from a newer schema")
	}
	s, err := parseSeed([]byte("version: 1\nmembers:\n  - id: m1\n    tier: Gold\n"))
	if err != nil {
		t.Fatalf("parseSeed() error: %v", err)
	}
	if got := s.Members(); len(got) != 1 || got[0].Tier != domain.TierGold {
		t.Errorf("unexpected members %+v", got)
	}
}

func TestBuildDSN(t *testing.T) {
	got := buildDSN(DatabaseConfig{Host: "db", Port: "3306", User: "app", Password: "pw", DBName: "opor"})
	want := "app:pw@tcp(db:3306)/opor?charset=utf8mb4&parseTime=True&loc=Local"
	if got != want {
		t.Errorf("buildDSN() = %q, want %q", got, want)
	}
}
