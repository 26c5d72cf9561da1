package domain

// EligibleBenefits returns the benefits a member's tier may see.
// Gold sees everything, Silver sees Silver benefits only.
func EligibleBenefits(member Member, all []Benefit) []Benefit {
	out := make([]Benefit, 0, len(all))
	for _, b := range all {
		if member.Tier == TierGold || b.Tier == TierSilver {
			out = append(out, b)
		}
	}
	return out
}

// IsExpired reports whether the benefit's expiry date is before today
func IsExpired(b Benefit, today string) bool {
	return b.ExpiryDate != nil && *b.ExpiryDate != "" && *b.ExpiryDate < today
}

// PartitionByExpiry splits benefits into active and expired, preserving order
func PartitionByExpiry(benefits []Benefit, today string) (active, expired []Benefit) {
	active = make([]Benefit, 0, len(benefits))
	expired = make([]Benefit, 0)
	for _, b := range benefits {
		if IsExpired(b, today) {
			expired = append(expired, b)
			continue
		}
		active = append(active, b)
	}
	return active, expired
}

// IsRedeemable reports whether member can redeem benefit today.
// Free benefits stay redeemable whatever the balance.
func IsRedeemable(member Member, b Benefit, today string) bool {
	if IsExpired(b, today) {
		return false
	}
	return b.PointsCost == 0 || member.Points >= b.PointsCost
}

// UsedHistory returns the member's spending transactions, newest first
func UsedHistory(member Member) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range member.Transactions {
		if t.Amount < 0 {
			out = append(out, t)
		}
	}
	return out
}

// ExpiringBetween returns benefits whose expiry falls within [from, to]
func ExpiringBetween(benefits []Benefit, from, to string) []Benefit {
	out := make([]Benefit, 0)
	for _, b := range benefits {
		if b.ExpiryDate == nil || *b.ExpiryDate == "" {
			continue
		}
		if *b.ExpiryDate >= from && *b.ExpiryDate <= to {
			out = append(out, b)
		}
	}
	return out
}
