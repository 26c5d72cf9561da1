package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/core/domain"
)

func seedMembers() []domain.Member {
	return []domain.Member{
		{ID: "m1", Name: "Seed", PhoneNumber: "0812345678", Tier: domain.TierSilver, Points: 100,
			UsedBenefits: []string{}, Transactions: []domain.Transaction{}},
	}
}

// conflictStore loses every compare-and-swap
type conflictStore struct {
	*kv.MemoryStore
	attempts int
}

func (s *conflictStore) CompareAndSwap(_ context.Context, _, _, _ string) (bool, error) {
	s.attempts++
	return false, nil
}

func TestDecodeMembersBackfillsMissingFields(t *testing.T) {
	raw := `[{"id":"m1","name":"A","phoneNumber":"1","points":5},
	         {"id":"m2","name":"B","phoneNumber":"2","tier":"Gold","points":7,"usedBenefits":null,"transactions":"oops"}]`
	members, err := decodeMembers(raw)
	if err != nil {
		t.Fatalf("decodeMembers() error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	for _, m := range members {
		if m.UsedBenefits == nil || m.Transactions == nil {
			t.Errorf("member %s: slices must be backfilled, got %+v", m.ID, m)
		}
	}
	if members[0].Tier != domain.TierSilver {
		t.Errorf("expected default tier Silver, got %q", members[0].Tier)
	}
	if members[1].Tier != domain.TierGold {
		t.Errorf("expected stored tier Gold, got %q", members[1].Tier)
	}
}

func TestDecodeBenefitsNormalisesExpiry(t *testing.T) {
	benefits, err := decodeBenefits(`[{"id":"b1","expiryDate":""},{"id":"b2","expiryDate":"2024-12-31","tier":"Gold"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if benefits[0].ExpiryDate != nil {
		t.Error("empty expiry should decode as no expiry")
	}
	if benefits[0].Tier != domain.TierSilver {
		t.Errorf("expected default tier, got %q", benefits[0].Tier)
	}
	if benefits[1].ExpiryDate == nil || *benefits[1].ExpiryDate != "2024-12-31" {
		t.Error("expiry date lost")
	}
}

func TestListReportsAbsentAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewMemberRepository(store, Options{Namespace: "zaab"}, seedMembers)

	if _, err := repo.List(ctx); !errors.Is(err, domain.ErrRecordAbsent) {
		t.Fatalf("expected ErrRecordAbsent, got %v", err)
	}

	_ = store.Set(ctx, "zaab_members", "{not json")
	_, err := repo.List(ctx)
	if !errors.Is(err, domain.ErrRecordCorrupt) {
		t.Fatalf("expected ErrRecordCorrupt, got %v", err)
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Key != "zaab_members" {
		t.Errorf("expected DecodeError for zaab_members, got %v", err)
	}
}

func TestUpdateStartsFromSeedWhenAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewMemberRepository(store, Options{}, seedMembers)

	m, err := repo.Update(ctx, "m1", func(m *domain.Member) error {
		m.Points += 5
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if m.Points != 105 {
		t.Errorf("expected 105 points, got %d", m.Points)
	}

	stored, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Points != 105 {
		t.Errorf("update not persisted: %+v", stored)
	}
}

func TestUpdateUnknownMember(t *testing.T) {
	repo := NewMemberRepository(kv.NewMemoryStore(), Options{}, seedMembers)
	_, err := repo.Update(context.Background(), "ghost", func(*domain.Member) error { return nil })
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestUpdateFnErrorLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewMemberRepository(store, Options{}, seedMembers)
	_ = repo.SaveAll(ctx, seedMembers())
	before, _ := store.Get(ctx, "members")

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "m1", func(m *domain.Member) error {
		m.Points = -1
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	after, _ := store.Get(ctx, "members")
	if before != after {
		t.Error("store changed although fn failed")
	}
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewMemberRepository(store, Options{MaxRetries: 100}, seedMembers)
	_ = repo.SaveAll(ctx, seedMembers())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "m1", func(m *domain.Member) error {
				m.Points++
				return nil
			})
			if err != nil {
				t.Errorf("Update() error: %v", err)
			}
		}()
	}
	wg.Wait()

	members, _ := repo.List(ctx)
	if members[0].Points != 125 {
		t.Errorf("expected 125 points after 25 increments, got %d", members[0].Points)
	}
}

func TestConflictExhaustion(t *testing.T) {
	ctx := context.Background()
	store := &conflictStore{MemoryStore: kv.NewMemoryStore()}
	repo := NewMemberRepository(store, Options{MaxRetries: 3}, seedMembers)

	_, err := repo.Update(ctx, "m1", func(m *domain.Member) error {
		m.Points++
		return nil
	})
	if !errors.Is(err, domain.ErrStoreConflict) {
		t.Fatalf("expected ErrStoreConflict, got %v", err)
	}
	if store.attempts != 4 {
		t.Errorf("expected 4 swap attempts, got %d", store.attempts)
	}
}

func TestComplaintPrependAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewComplaintRepository(kv.NewMemoryStore(), Options{})

	for i := 1; i <= 3; i++ {
		c := domain.Complaint{ID: fmt.Sprintf("c%d", i), Status: domain.ComplaintPending}
		if err := repo.Prepend(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := repo.List(ctx)
	if len(list) != 3 || list[0].ID != "c3" || list[2].ID != "c1" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	_, err := repo.Update(ctx, "c2", func(c *domain.Complaint) error {
		c.Status = domain.ComplaintResolved
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	list, _ = repo.List(ctx)
	if list[1].Status != domain.ComplaintResolved {
		t.Errorf("expected c2 resolved, got %+v", list[1])
	}
}

func TestBenefitSaveAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBenefitRepository(kv.NewMemoryStore(), Options{}, func() []domain.Benefit { return nil })
	expiry := "2025-01-31"
	in := []domain.Benefit{
		{ID: "b2", Title: "two", Tier: domain.TierGold, PointsCost: 10, DateAdded: "2024-01-01", ExpiryDate: &expiry},
		{ID: "b1", Title: "one", Tier: domain.TierSilver, DateAdded: "2024-01-01"},
	}
	if err := repo.SaveAll(ctx, in); err != nil {
		t.Fatal(err)
	}
	out, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].ID != "b2" || out[1].ID != "b1" || *out[0].ExpiryDate != expiry || out[1].ExpiryDate != nil {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

// lateWriterStore reports the key missing once, after another writer has
// already stored it
type lateWriterStore struct {
	*kv.MemoryStore
	key   string
	value string
	fired bool
}

func (s *lateWriterStore) Get(ctx context.Context, key string) (string, error) {
	if !s.fired && key == s.key {
		s.fired = true
		_ = s.MemoryStore.Set(ctx, key, s.value)
		return "", kv.ErrKeyNotFound
	}
	return s.MemoryStore.Get(ctx, key)
}

func TestSeedWritesOnlyAbsentCollection(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewMemberRepository(store, Options{Namespace: "zaab"}, seedMembers)

	got, err := repo.Seed(ctx, seedMembers())
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("unexpected seeded members %+v", got)
	}

	if err := repo.Create(ctx, domain.Member{ID: "m9", Tier: domain.TierGold}); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Seed(ctx, seedMembers())
	if err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	if len(got) != 2 || got[1].ID != "m9" {
		t.Errorf("seed overwrote an existing collection: %+v", got)
	}
}

func TestSeedLosesToConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	other, _ := encode([]domain.Member{{ID: "new", Tier: domain.TierSilver}})
	store := &lateWriterStore{MemoryStore: kv.NewMemoryStore(), key: "members", value: other}
	repo := NewMemberRepository(store, Options{}, seedMembers)

	if _, err := repo.List(ctx); !errors.Is(err, domain.ErrRecordAbsent) {
		t.Fatalf("expected ErrRecordAbsent, got %v", err)
	}
	got, err := repo.Seed(ctx, seedMembers())
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("expected the concurrent writer's collection, got %+v", got)
	}
	raw, _ := store.MemoryStore.Get(ctx, "members")
	if raw != other {
		t.Error("seed replaced the concurrent write")
	}
}

func TestEncodeStampsSchemaVersion(t *testing.T) {
	raw, err := encode([]domain.Benefit{{ID: "b1", Tier: domain.TierGold}})
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf(`[{"schemaVersion":%d,"id":"b1"`, SchemaVersion)
	if len(raw) < len(want) || raw[:len(want)] != want {
		t.Errorf("expected stamped record, got %s", raw)
	}

	empty, _ := encode[domain.Benefit](nil)
	if empty != "[]" {
		t.Errorf("expected [], got %s", empty)
	}

	benefits, err := decodeBenefits(raw)
	if err != nil || len(benefits) != 1 || benefits[0].Tier != domain.TierGold {
		t.Errorf("round trip failed: %+v, %v", benefits, err)
	}
}

func TestNewerSchemaIsNeverOverwritten(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewComplaintRepository(store, Options{})
	future := fmt.Sprintf(`[{"schemaVersion":%d,"id":"c1","status":"ARCHIVED"}]`, SchemaVersion+1)
	_ = store.Set(ctx, "complaints", future)

	_, err := repo.List(ctx)
	if !errors.Is(err, domain.ErrRecordCorrupt) || !errors.Is(err, ErrNewerSchema) {
		t.Fatalf("expected a newer-schema decode error, got %v", err)
	}

	err = repo.Prepend(ctx, domain.Complaint{ID: "c2"})
	if !errors.Is(err, ErrNewerSchema) {
		t.Fatalf("expected ErrNewerSchema on write, got %v", err)
	}
	if raw, _ := store.Get(ctx, "complaints"); raw != future {
		t.Error("newer collection was overwritten")
	}
}
