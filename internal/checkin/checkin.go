// Package checkin serves the daily mood prompt: an AI-generated question
// with a deterministic fallback, answered at most once per day.
package checkin

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"

	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/logging"
	"github.com/synkhq/synk/internal/oracle"
	"github.com/synkhq/synk/internal/state"
)

const questionPrompt = `Genera un objeto JSON para un chequeo de estado de ánimo diario. El objeto debe tener dos claves:
1. "question": una pregunta corta, única y cálida para el usuario sobre cómo se siente hoy (en español, <100 caracteres).
2. "answers": un array de 4 respuestas de una sola palabra (en español) que cubran un rango de sentimientos.

No incluyas comentarios fuera del JSON.`

var questionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"question": {Type: genai.TypeString},
		"answers": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"question", "answers"},
}

// Question is one daily prompt with its answer options.
type Question struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Fallback bool     `json:"fallback"`
}

// FallbackQuestion never fails and is served whenever generation does.
func FallbackQuestion() Question {
	return Question{
		Question: "¿Cómo te sientes hoy?",
		Answers:  []string{"Bien", "Normal", "Meh", "Mal"},
		Fallback: true,
	}
}

// Service generates daily questions and records the answers.
type Service struct {
	oracle oracle.Client
	state  *state.Manager
}

// New creates a check-in service.
func New(client oracle.Client, st *state.Manager) *Service {
	return &Service{oracle: client, state: st}
}

// Done reports whether today's check-in is already recorded.
func (s *Service) Done() bool {
	return s.state.CheckinDoneToday()
}

// Question returns today's prompt. Generation failures, including a
// model answer set with fewer than 3 options, fall back to the fixed
// question so the check-in is never blocked.
func (s *Service) Question(ctx context.Context) Question {
	raw, err := s.oracle.GenerateJSON(ctx, oracle.JSONRequest{
		Prompt: questionPrompt,
		Schema: questionSchema,
	})
	if err != nil {
		logging.Warn("daily question generation failed: %v", err)
		return FallbackQuestion()
	}

	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		logging.Warn("daily question decode failed: %v", err)
		return FallbackQuestion()
	}
	if q.Question == "" || len(q.Answers) < 3 {
		logging.Warn("daily question rejected: %d answers", len(q.Answers))
		return FallbackQuestion()
	}
	return q
}

// Submit records today's answer.
func (s *Service) Submit(question, label, note string) (core.DailyCheckin, error) {
	return s.state.AppendDailyCheckin(question, label, note)
}
