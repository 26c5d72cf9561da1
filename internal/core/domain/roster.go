package domain

import (
	"sort"
	"strings"
)

// PointsSort orders the member roster by balance
type PointsSort string

const (
	SortNone PointsSort = "NONE"
	SortAsc  PointsSort = "ASC"
	SortDesc PointsSort = "DESC"
)

// RosterQuery filters and orders the staff member roster
type RosterQuery struct {
	Search string
	Tier   Tier // empty or "ALL" = any tier
	Sort   PointsSort
}

// FilterMembers applies search, tier filter and points ordering.
// Search matches a substring of the name or the phone number.
func FilterMembers(members []Member, q RosterQuery) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if q.Search != "" && !strings.Contains(m.Name, q.Search) && !strings.Contains(m.PhoneNumber, q.Search) {
			continue
		}
		if q.Tier != "" && q.Tier != "ALL" && m.Tier != q.Tier {
			continue
		}
		out = append(out, m)
	}

	switch q.Sort {
	case SortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Points < out[j].Points })
	case SortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	}
	return out
}

// TierCounts counts members per tier
func TierCounts(members []Member) map[Tier]int {
	counts := map[Tier]int{TierSilver: 0, TierGold: 0}
	for _, m := range members {
		counts[m.Tier]++
	}
	return counts
}
