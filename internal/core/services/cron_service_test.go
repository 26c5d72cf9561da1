package services

import (
	"context"
	"strings"
	"testing"

	"opor-loyalty/internal/core/domain"
)

func TestRunDigest(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_ = e.benefits.SaveBenefits(ctx, []domain.Benefit{
		{ID: "a", Title: "ส่วนลดปีใหม่", Tier: domain.TierSilver, ExpiryDate: strPtr("2024-01-03")},
		{ID: "b", Title: "ไม่มีวันหมดอายุ", Tier: domain.TierSilver},
	})
	submit(t, e, "m1", "บริการ")
	e.notifier.messages = nil

	cron := NewCronService(e.complaints, e.benefits, e.notifier, "30 8 * * *")
	if err := cron.RunDigest(ctx); err != nil {
		t.Fatalf("RunDigest() error: %v", err)
	}

	if len(e.notifier.messages) != 1 {
		t.Fatalf("expected one digest message, got %d", len(e.notifier.messages))
	}
	msg := e.notifier.messages[0]
	for _, want := range []string{"รอดำเนินการ: 1", "(7 วัน): 1", "ส่วนลดปีใหม่ (2024-01-03)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("digest missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "ไม่มีวันหมดอายุ") {
		t.Error("benefit without expiry listed in digest")
	}
}

func TestCronStartRejectsBadSpec(t *testing.T) {
	e := newTestEnv(t)
	cron := NewCronService(e.complaints, e.benefits, e.notifier, "not a schedule")
	if err := cron.Start(); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestCronStartStop(t *testing.T) {
	e := newTestEnv(t)
	cron := NewCronService(e.complaints, e.benefits, e.notifier, "@every 1h")
	if err := cron.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	cron.Stop()
}
