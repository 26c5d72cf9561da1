package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	googleai "google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	requestTimeout = 15 * time.Second
)

// ErrNoAPIKey is returned when the client has no key configured
var ErrNoAPIKey = errors.New("GEMINI_API_KEY not set")

// GeminiClient wraps the Gemini API SDK. Single-shot, no retries.
type GeminiClient struct {
	model  string
	client *googleai.Client
}

// NewGeminiClient creates a client. An empty baseURL uses the SDK endpoint,
// an empty model uses DefaultModel. Without apiKey every Generate call
// fails with ErrNoAPIKey.
func NewGeminiClient(ctx context.Context, apiKey, baseURL, model string) (*GeminiClient, error) {
	if model == "" {
		model = DefaultModel
	}
	c := &GeminiClient{model: model}
	if apiKey == "" {
		return c, nil
	}

	client, err := googleai.NewClient(ctx, &googleai.ClientConfig{
		APIKey:      apiKey,
		Backend:     googleai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: requestTimeout},
		HTTPOptions: googleai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

// Generate sends one system+user prompt and returns the first candidate's text.
// A response without candidates yields empty text and no error.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.client == nil {
		return "", ErrNoAPIKey
	}

	var cfg *googleai.GenerateContentConfig
	if systemPrompt != "" {
		cfg = &googleai.GenerateContentConfig{
			SystemInstruction: googleai.NewContentFromText(systemPrompt, googleai.RoleUser),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, googleai.Text(userPrompt), cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}
