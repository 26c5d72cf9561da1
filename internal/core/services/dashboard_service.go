package services

import (
	"context"

	"opor-loyalty/internal/core/domain"
)

// DashboardService aggregates staff dashboard figures
type DashboardService struct {
	members    *MemberService
	benefits   *BenefitService
	complaints *ComplaintService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(members *MemberService, benefits *BenefitService, complaints *ComplaintService) *DashboardService {
	return &DashboardService{
		members:    members,
		benefits:   benefits,
		complaints: complaints,
	}
}

// StaffDashboardData represents staff dashboard data
type StaffDashboardData struct {
	// Member Statistics
	TotalMembers int `json:"total_members"`
	SilverCount  int `json:"silver_count"`
	GoldCount    int `json:"gold_count"`
	TotalPoints  int `json:"total_points"`

	// Catalogue
	TotalBenefits    int `json:"total_benefits"`
	ExpiringBenefits int `json:"expiring_benefits"`

	// Complaints
	TotalComplaints   int `json:"total_complaints"`
	PendingComplaints int `json:"pending_complaints"`

	RecentComplaints []domain.Complaint `json:"recent_complaints"`
}

// recentComplaintLimit caps the dashboard's complaint preview
const recentComplaintLimit = 5

// GetStaffDashboard returns staff dashboard data
func (s *DashboardService) GetStaffDashboard(ctx context.Context) (*StaffDashboardData, error) {
	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	benefits, err := s.benefits.ListBenefits(ctx)
	if err != nil {
		return nil, err
	}
	expiring, err := s.benefits.ExpiringWithin(ctx, DigestExpiryWindowDays)
	if err != nil {
		return nil, err
	}
	complaints, err := s.complaints.ListComplaints(ctx)
	if err != nil {
		return nil, err
	}

	counts := domain.TierCounts(members)
	data := &StaffDashboardData{
		TotalMembers:     len(members),
		SilverCount:      counts[domain.TierSilver],
		GoldCount:        counts[domain.TierGold],
		TotalBenefits:    len(benefits),
		ExpiringBenefits: len(expiring),
		TotalComplaints:  len(complaints),
	}
	for _, m := range members {
		data.TotalPoints += m.Points
	}
	for _, c := range complaints {
		if c.Status == domain.ComplaintPending {
			data.PendingComplaints++
		}
	}

	recent := complaints
	if len(recent) > recentComplaintLimit {
		recent = recent[:recentComplaintLimit]
	}
	data.RecentComplaints = recent

	return data, nil
}
