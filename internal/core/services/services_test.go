package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/adapters/persistence/repositories"
	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/domain"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	store      *kv.MemoryStore
	seeder     *config.Seeder
	members    *MemberService
	benefits   *BenefitService
	complaints *ComplaintService
	notifier   *recordingNotifier
}

// recordingNotifier keeps every message it is asked to send
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return n.err
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	seeder, err := config.NewSeeder()
	if err != nil {
		t.Fatalf("NewSeeder() error: %v", err)
	}

	store := kv.NewMemoryStore()
	opts := repositories.Options{Namespace: "zaab", MaxRetries: 100}
	memberRepo := repositories.NewMemberRepository(store, opts, seeder.Members)
	benefitRepo := repositories.NewBenefitRepository(store, opts, seeder.Benefits)
	complaintRepo := repositories.NewComplaintRepository(store, opts)

	clock := func() time.Time { return testNow }
	notifier := &recordingNotifier{}

	benefits := NewBenefitService(benefitRepo, seeder.Benefits)
	benefits.now = clock
	members := NewMemberService(memberRepo, benefits, seeder.Members, 0)
	members.now = clock
	complaints := NewComplaintService(complaintRepo, notifier)
	complaints.now = clock

	return &testEnv{
		store:      store,
		seeder:     seeder,
		members:    members,
		benefits:   benefits,
		complaints: complaints,
		notifier:   notifier,
	}
}

// memberWithPoints registers a fresh Silver member holding points
func (e *testEnv) memberWithPoints(t *testing.T, points int) *domain.Member {
	t.Helper()
	m, err := e.members.CreateMember(context.Background(), &CreateMemberInput{
		Name: "Test", PhoneNumber: "0800000000", Tier: domain.TierSilver, InitialPoints: points,
	})
	if err != nil {
		t.Fatalf("CreateMember() error: %v", err)
	}
	return m
}

func mustGet(t *testing.T, e *testEnv, id string) *domain.Member {
	t.Helper()
	m, err := e.members.GetMember(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMember(%s) error: %v", id, err)
	}
	return m
}

func wantErr(t *testing.T, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
