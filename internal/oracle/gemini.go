package oracle

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/synkhq/synk/internal/config"
	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/logging"
)

// Gemini is the production Client backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client from config.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateJSON runs a one-shot structured generation.
func (g *Gemini) GenerateJSON(ctx context.Context, req JSONRequest) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, wrapAPIError("generate", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}
	return []byte(text), nil
}

// NewChat opens a conversation, replaying any stored history so the
// model picks up where the transcript left off.
func (g *Gemini) NewChat(ctx context.Context, system string, history []core.ChatMessage) (Chat, error) {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	var contents []*genai.Content
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.OracleRole() == core.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	chat, err := g.client.Chats.Create(ctx, g.model, cfg, contents)
	if err != nil {
		return nil, wrapAPIError("open chat", err)
	}

	return &geminiChat{chat: chat}, nil
}

// Close releases the underlying client. genai.Client holds no
// resources that need explicit release.
func (g *Gemini) Close() error {
	return nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) Send(ctx context.Context, text string) (string, error) {
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", wrapAPIError("send message", err)
	}

	out := resp.Text()
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// wrapAPIError tags quota rejections with ErrRateLimited so callers can
// show the dedicated quota message.
func wrapAPIError(op string, err error) error {
	if IsRateLimited(err) {
		logging.Warn("gemini %s rate limited: %v", op, err)
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("gemini %s failed: %w", op, err)
}
