package domain

import "time"

// DateLayout is the ISO-8601 calendar date used for every date field.
// Zero-padded, so plain string comparison orders dates correctly.
const DateLayout = "2006-01-02"

// Tier represents membership level
type Tier string

const (
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Valid reports whether t is a known tier
func (t Tier) Valid() bool {
	return t == TierSilver || t == TierGold
}

// ComplaintStatus represents complaint lifecycle state
type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "PENDING"
	ComplaintResolved ComplaintStatus = "RESOLVED"
)

// Role represents an authenticated caller's role
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleStaff  Role = "STAFF"
)

// Fixed transaction descriptions
const (
	DescInitialPoints = "แต้มเริ่มต้น"
	DescDineIn        = "ทานอาหารที่ร้าน"
	DescRedeem        = "แลกสิทธิประโยชน์"
	DescRedeemFree    = "ใช้สิทธิพิเศษ (ฟรี)"
)

// Transaction is a signed point-ledger entry. Positive = earned, negative = spent.
type Transaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// Member represents a loyalty member
type Member struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	PhoneNumber  string        `json:"phoneNumber"`
	Tier         Tier          `json:"tier"`
	Points       int           `json:"points"`
	UsedBenefits []string      `json:"usedBenefits"`
	Transactions []Transaction `json:"transactions"` // newest first
	JoinedDate   string        `json:"joinedDate"`
}

// Clone returns a deep copy so callers can mutate without touching shared slices
func (m Member) Clone() Member {
	out := m
	out.UsedBenefits = append([]string{}, m.UsedBenefits...)
	out.Transactions = append([]Transaction{}, m.Transactions...)
	return out
}

// Benefit represents a redeemable or free perk
type Benefit struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tier        Tier    `json:"tier"`
	PointsCost  int     `json:"pointsCost"`
	DateAdded   string  `json:"dateAdded"`
	ExpiryDate  *string `json:"expiryDate"` // nil = never expires
}

// Complaint is a member-submitted issue. Member fields are a snapshot taken at submission.
type Complaint struct {
	ID          string          `json:"id"`
	MemberID    string          `json:"memberId"`
	MemberName  string          `json:"memberName"`
	MemberPhone string          `json:"memberPhone"`
	Topic       string          `json:"topic"`
	Message     string          `json:"message"`
	Status      ComplaintStatus `json:"status"`
	Date        string          `json:"date"`
}

// FormatDate formats t as a calendar date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
