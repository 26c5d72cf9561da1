package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"opor-loyalty/internal/adapters/persistence/repositories"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/metrics"

	"github.com/google/uuid"
)

// ComplaintService handles member complaints
type ComplaintService struct {
	complaintRepo repositories.ComplaintRepository
	notifier      Notifier
	now           func() time.Time
}

// NewComplaintService creates a new complaint service. notifier may be nil.
func NewComplaintService(complaintRepo repositories.ComplaintRepository, notifier Notifier) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// SubmitComplaintInput represents complaint submission input
type SubmitComplaintInput struct {
	MemberID    string `json:"-"`
	MemberName  string `json:"-"`
	MemberPhone string `json:"-"`
	Topic       string `json:"topic" validate:"required,max=100"`
	Message     string `json:"message" validate:"required,max=2000"`
}

// ListComplaints returns every complaint, newest first.
// Unreadable data is treated as no complaints.
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaintRepo.List(ctx)
	switch {
	case err == nil:
		return complaints, nil
	case errors.Is(err, domain.ErrRecordAbsent):
		return []domain.Complaint{}, nil
	case errors.Is(err, domain.ErrRecordCorrupt):
		log.Printf("⚠️ %v, serving no complaints", err)
		metrics.SeedFallbacks.WithLabelValues("complaints").Inc()
		return []domain.Complaint{}, nil
	default:
		return nil, err
	}
}

// ListByMember returns one member's complaints, newest first
func (s *ComplaintService) ListByMember(ctx context.Context, memberID string) ([]domain.Complaint, error) {
	all, err := s.ListComplaints(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Complaint, 0)
	for _, c := range all {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

// SubmitComplaint records a pending complaint at the top of the list and
// notifies staff. Notification failures do not fail the submission.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, input *SubmitComplaintInput) (*domain.Complaint, error) {
	topic := strings.TrimSpace(input.Topic)
	message := strings.TrimSpace(input.Message)
	if input.MemberID == "" || topic == "" || message == "" {
		return nil, domain.ErrInvalidInput
	}

	complaint := domain.Complaint{
		ID:          uuid.NewString(),
		MemberID:    input.MemberID,
		MemberName:  input.MemberName,
		MemberPhone: input.MemberPhone,
		Topic:       topic,
		Message:     message,
		Status:      domain.ComplaintPending,
		Date:        domain.FormatDate(s.now()),
	}

	if err := s.complaintRepo.Prepend(ctx, complaint); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("\n📣 เรื่องร้องเรียนใหม่\n\n👤 สมาชิก: %s (%s)\n📌 หัวข้อ: %s\n📝 %s",
			complaint.MemberName, complaint.MemberPhone, complaint.Topic, complaint.Message)
		if err := s.notifier.Notify(ctx, msg); err != nil {
			log.Printf("⚠️ Complaint notification failed: %v", err)
		}
	}

	return &complaint, nil
}

// ResolveComplaint marks a complaint resolved. Resolving twice is a no-op.
func (s *ComplaintService) ResolveComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	return s.complaintRepo.Update(ctx, id, func(c *domain.Complaint) error {
		c.Status = domain.ComplaintResolved
		return nil
	})
}

// PendingCount counts unresolved complaints
func (s *ComplaintService) PendingCount(ctx context.Context) (int, error) {
	all, err := s.ListComplaints(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range all {
		if c.Status == domain.ComplaintPending {
			n++
		}
	}
	return n, nil
}
