package services

import "context"

// TextGenerator produces free text from a system prompt and a user prompt
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Notifier delivers a message to staff
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
