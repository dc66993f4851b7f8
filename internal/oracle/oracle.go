// Package oracle wraps the Gemini API behind a small client interface so
// services and tests never touch the SDK directly.
package oracle

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/synkhq/synk/internal/core"
)

var (
	// ErrNoAPIKey means no Gemini key was configured.
	ErrNoAPIKey = errors.New("gemini api key not configured")

	// ErrEmptyResponse means the model returned no usable text.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrRateLimited means the API refused the request over quota.
	ErrRateLimited = errors.New("gemini rate limited")
)

// Client is the model surface the services depend on. Gemini implements
// it for real; Fake implements it for tests.
type Client interface {
	// GenerateJSON runs a one-shot structured generation and returns the
	// raw JSON text the model produced.
	GenerateJSON(ctx context.Context, req JSONRequest) ([]byte, error)

	// NewChat opens a conversation seeded with a system instruction and
	// an optional replayed history.
	NewChat(ctx context.Context, system string, history []core.ChatMessage) (Chat, error)
}

// Chat is one open conversation.
type Chat interface {
	Send(ctx context.Context, text string) (string, error)
}

// JSONRequest describes a structured generation call.
type JSONRequest struct {
	System string
	Prompt string
	Schema *genai.Schema
}

// IsRateLimited reports whether err is a quota rejection, either our own
// sentinel or a 429 / RESOURCE_EXHAUSTED from the API.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
