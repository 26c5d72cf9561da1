package domain

import "testing"

func strPtr(s string) *string { return &s }

func sampleBenefits() []Benefit {
	return []Benefit{
		{ID: "b1", Tier: TierSilver, PointsCost: 0},
		{ID: "b3", Tier: TierGold, PointsCost: 0, ExpiryDate: strPtr("2024-12-31")},
		{ID: "b5", Tier: TierSilver, PointsCost: 50},
		{ID: "b6", Tier: TierGold, PointsCost: 500},
		{ID: "old", Tier: TierSilver, PointsCost: 10, ExpiryDate: strPtr("2020-01-01")},
	}
}

func ids(bs []Benefit) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEligibleBenefits(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		want []string
	}{
		{"gold sees all", TierGold, []string{"b1", "b3", "b5", "b6", "old"}},
		{"silver sees silver only", TierSilver, []string{"b1", "b5", "old"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(EligibleBenefits(Member{Tier: tt.tier}, sampleBenefits()))
			if !equalIDs(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPartitionByExpiry(t *testing.T) {
	active, expired := PartitionByExpiry(sampleBenefits(), "2024-01-01")
	if !equalIDs(ids(active), []string{"b1", "b3", "b5", "b6"}) {
		t.Errorf("unexpected active: %v", ids(active))
	}
	if !equalIDs(ids(expired), []string{"old"}) {
		t.Errorf("unexpected expired: %v", ids(expired))
	}
}

func TestPartitionByExpiryBoundaryDay(t *testing.T) {
	b := Benefit{ID: "edge", ExpiryDate: strPtr("2024-06-30")}
	active, _ := PartitionByExpiry([]Benefit{b}, "2024-06-30")
	if len(active) != 1 {
		t.Fatal("benefit expiring today should still be active")
	}
	_, expired := PartitionByExpiry([]Benefit{b}, "2024-07-01")
	if len(expired) != 1 {
		t.Fatal("benefit should be expired the day after its expiry date")
	}
}

func TestIsRedeemable(t *testing.T) {
	member := Member{Points: 100}
	tests := []struct {
		name    string
		benefit Benefit
		today   string
		want    bool
	}{
		{"affordable", Benefit{PointsCost: 100}, "2024-01-01", true},
		{"too expensive", Benefit{PointsCost: 150}, "2024-01-01", false},
		{"free perk", Benefit{PointsCost: 0}, "2024-01-01", true},
		{"expired", Benefit{PointsCost: 0, ExpiryDate: strPtr("2020-01-01")}, "2024-01-01", false},
		{"empty expiry never expires", Benefit{PointsCost: 0, ExpiryDate: strPtr("")}, "2024-01-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRedeemable(member, tt.benefit, tt.today); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsRedeemableNegativeBalance(t *testing.T) {
	member := Member{Points: -20}
	if !IsRedeemable(member, Benefit{PointsCost: 0}, "2024-01-01") {
		t.Error("free benefit should be redeemable with a negative balance")
	}
	if IsRedeemable(member, Benefit{PointsCost: 1}, "2024-01-01") {
		t.Error("paid benefit should not be redeemable with a negative balance")
	}
}

func TestUsedHistory(t *testing.T) {
	m := Member{Transactions: []Transaction{
		{ID: "t3", Amount: -50},
		{ID: "t2", Amount: 20},
		{ID: "t1", Amount: 0},
		{ID: "t0", Amount: -1},
	}}
	got := UsedHistory(m)
	if len(got) != 2 || got[0].ID != "t3" || got[1].ID != "t0" {
		t.Errorf("unexpected used history: %+v", got)
	}
}

func TestExpiringBetween(t *testing.T) {
	got := ExpiringBetween(sampleBenefits(), "2024-12-25", "2025-01-01")
	if !equalIDs(ids(got), []string{"b3"}) {
		t.Errorf("unexpected expiring set: %v", ids(got))
	}
}
