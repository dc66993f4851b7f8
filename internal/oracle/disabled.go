package oracle

import (
	"context"

	"github.com/synkhq/synk/internal/core"
)

// Disabled is the Client used when no API key is configured. Every call
// fails with ErrNoAPIKey so the daemon can run with degraded AI
// features instead of refusing to start.
type Disabled struct{}

func (Disabled) GenerateJSON(context.Context, JSONRequest) ([]byte, error) {
	return nil, ErrNoAPIKey
}

func (Disabled) NewChat(context.Context, string, []core.ChatMessage) (Chat, error) {
	return nil, ErrNoAPIKey
}
