package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// LineNotifyURL is the LINE Notify endpoint
const LineNotifyURL = "https://notify-api.line.me/api/notify"

// NotificationService handles LINE notifications to staff
type NotificationService struct {
	lineNotifyToken string
	endpoint        string
	client          *http.Client
}

// NewNotificationService creates a new notification service.
// An empty token disables sending.
func NewNotificationService(token string) *NotificationService {
	return &NotificationService{
		lineNotifyToken: token,
		endpoint:        LineNotifyURL,
		client:          &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.lineNotifyToken != ""
}

// Notify sends a message via LINE Notify
func (s *NotificationService) Notify(ctx context.Context, message string) error {
	if !s.IsEnabled() {
		return nil
	}

	data := url.Values{}
	data.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.lineNotifyToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("LINE Notify error (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}
