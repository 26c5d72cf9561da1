package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// DigestExpiryWindowDays is how far ahead the digest looks for expiring benefits
const DigestExpiryWindowDays = 7

// CronService runs the scheduled staff digest
type CronService struct {
	complaints *ComplaintService
	benefits   *BenefitService
	notifier   Notifier
	spec       string
	cron       *cron.Cron
}

// NewCronService creates a new cron service for the given schedule
func NewCronService(complaints *ComplaintService, benefits *BenefitService, notifier Notifier, spec string) *CronService {
	return &CronService{
		complaints: complaints,
		benefits:   benefits,
		notifier:   notifier,
		spec:       spec,
		cron:       cron.New(),
	}
}

// Start registers the digest job and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.RunDigest(ctx); err != nil {
			log.Printf("❌ Staff digest failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.Printf("🚀 CronService started [digest: %s]", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RunDigest sends the pending-complaint and expiring-benefit summary
func (s *CronService) RunDigest(ctx context.Context) error {
	msg, err := s.BuildDigest(ctx)
	if err != nil {
		return err
	}
	return s.notifier.Notify(ctx, msg)
}

// BuildDigest renders the staff digest message
func (s *CronService) BuildDigest(ctx context.Context) (string, error) {
	pending, err := s.complaints.PendingCount(ctx)
	if err != nil {
		return "", err
	}
	expiring, err := s.benefits.ExpiringWithin(ctx, DigestExpiryWindowDays)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("\n📊 สรุปประจำวัน โอปอโภชนา\n\n")
	fmt.Fprintf(&sb, "📣 เรื่องร้องเรียนรอดำเนินการ: %d\n", pending)
	fmt.Fprintf(&sb, "⏰ สิทธิประโยชน์ใกล้หมดอายุ (%d วัน): %d", DigestExpiryWindowDays, len(expiring))
	for _, b := range expiring {
		fmt.Fprintf(&sb, "\n- %s (%s)", b.Title, *b.ExpiryDate)
	}
	return sb.String(), nil
}
