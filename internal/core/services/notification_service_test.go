package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifyDisabledWithoutToken(t *testing.T) {
	s := NewNotificationService("")
	if s.IsEnabled() {
		t.Fatal("expected disabled")
	}
	if err := s.Notify(context.Background(), "hi"); err != nil {
		t.Errorf("disabled notify should be a no-op, got %v", err)
	}
}

func TestNotifySendsForm(t *testing.T) {
	var gotAuth, gotMsg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = r.ParseForm()
		gotMsg = r.PostForm.Get("message")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewNotificationService("tok")
	s.endpoint = srv.URL
	if err := s.Notify(context.Background(), "สวัสดี"); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if gotAuth != "Bearer tok" || gotMsg != "สวัสดี" {
		t.Errorf("got auth %q message %q", gotAuth, gotMsg)
	}
}

func TestNotifyReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewNotificationService("bad")
	s.endpoint = srv.URL
	if err := s.Notify(context.Background(), "x"); err == nil {
		t.Error("expected error on 401")
	}
}
