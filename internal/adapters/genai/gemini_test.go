package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	SystemInstruction *wireContent  `json:"systemInstruction"`
	Contents          []wireContent `json:"contents"`
}

func newTestClient(t *testing.T, model string, h http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewGeminiClient(context.Background(), "k", srv.URL+"/", model)
	if err != nil {
		t.Fatalf("NewGeminiClient() error: %v", err)
	}
	return c
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("missing api key header")
		}
		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.SystemInstruction == nil || len(req.SystemInstruction.Parts) == 0 || req.SystemInstruction.Parts[0].Text != "sys" {
			t.Errorf("system prompt not sent: %+v", req.SystemInstruction)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("user prompt not sent: %+v", req.Contents)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"สวัสดี"},{"text":"ครับ "}]}}]}`))
	})

	got, err := c.Generate(context.Background(), "sys", "hello")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got != "สวัสดีครับ" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"rejected request", http.StatusBadRequest, `{"error":{"code":400,"message":"bad prompt","status":"INVALID_ARGUMENT"}}`, "bad prompt"},
		{"bad json", http.StatusOK, `not json`, "Gemini API error"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "m", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			got, err := c.Generate(context.Background(), "", "x")
			if tt.wantErr == "" {
				if err != nil || got != "" {
					t.Errorf("got (%q, %v)", got, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	c, err := NewGeminiClient(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("NewGeminiClient() error: %v", err)
	}
	if _, err := c.Generate(context.Background(), "", "x"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}
