package domain

import "testing"

func rosterMembers() []Member {
	return []Member{
		{ID: "m1", Name: "คุณสมชาย ใจดี", PhoneNumber: "0812345678", Tier: TierSilver, Points: 120},
		{ID: "m2", Name: "คุณหญิง แอบแซ่บ", PhoneNumber: "0998887777", Tier: TierGold, Points: 850},
		{ID: "m3", Name: "Somsak", PhoneNumber: "0811111111", Tier: TierSilver, Points: 0},
	}
}

func memberIDs(ms []Member) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestFilterMembers(t *testing.T) {
	tests := []struct {
		name  string
		query RosterQuery
		want  []string
	}{
		{"default keeps order", RosterQuery{}, []string{"m1", "m2", "m3"}},
		{"sort desc", RosterQuery{Sort: SortDesc}, []string{"m2", "m1", "m3"}},
		{"sort asc", RosterQuery{Sort: SortAsc}, []string{"m3", "m1", "m2"}},
		{"tier gold", RosterQuery{Tier: TierGold}, []string{"m2"}},
		{"tier all", RosterQuery{Tier: "ALL", Sort: SortAsc}, []string{"m3", "m1", "m2"}},
		{"search phone prefix", RosterQuery{Search: "081"}, []string{"m1", "m3"}},
		{"search name", RosterQuery{Search: "แอบแซ่บ"}, []string{"m2"}},
		{"search and tier", RosterQuery{Search: "081", Tier: TierGold}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := memberIDs(FilterMembers(rosterMembers(), tt.query))
			if !equalIDs(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTierCounts(t *testing.T) {
	counts := TierCounts(rosterMembers())
	if counts[TierSilver] != 2 || counts[TierGold] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestMemberCloneIsDeep(t *testing.T) {
	m := Member{UsedBenefits: []string{"b1"}, Transactions: []Transaction{{ID: "t1"}}}
	c := m.Clone()
	c.UsedBenefits[0] = "changed"
	c.Transactions[0].ID = "changed"
	if m.UsedBenefits[0] != "b1" || m.Transactions[0].ID != "t1" {
		t.Error("clone shares backing arrays with the original")
	}
}
