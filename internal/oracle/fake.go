package oracle

import (
	"context"
	"sync"

	"github.com/synkhq/synk/internal/core"
)

// Fake is a scripted Client for tests. Responses are queued ahead of
// time; an empty queue falls back to Err or a canned reply.
type Fake struct {
	mu sync.Mutex

	// JSONQueue feeds GenerateJSON, one element per call.
	JSONQueue []string
	// ReplyQueue feeds Chat.Send, one element per call.
	ReplyQueue []string
	// Err, when set, fails every call.
	Err error

	// Recorded inputs, newest last.
	Prompts   []string
	Systems   []string
	Histories [][]core.ChatMessage
	Sent      []string
}

func (f *Fake) GenerateJSON(_ context.Context, req JSONRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Prompts = append(f.Prompts, req.Prompt)
	f.Systems = append(f.Systems, req.System)

	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.JSONQueue) == 0 {
		return nil, ErrEmptyResponse
	}

	out := f.JSONQueue[0]
	f.JSONQueue = f.JSONQueue[1:]
	return []byte(out), nil
}

func (f *Fake) NewChat(_ context.Context, system string, history []core.ChatMessage) (Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Systems = append(f.Systems, system)
	f.Histories = append(f.Histories, append([]core.ChatMessage(nil), history...))

	if f.Err != nil {
		return nil, f.Err
	}
	return &fakeChat{fake: f}, nil
}

type fakeChat struct {
	fake *Fake
}

func (c *fakeChat) Send(_ context.Context, text string) (string, error) {
	f := c.fake
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Sent = append(f.Sent, text)

	if f.Err != nil {
		return "", f.Err
	}
	if len(f.ReplyQueue) == 0 {
		return "", ErrEmptyResponse
	}

	out := f.ReplyQueue[0]
	f.ReplyQueue = f.ReplyQueue[1:]
	return out, nil
}
