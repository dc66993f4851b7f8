// Package diagnosis turns intake answers into the structured social
// profile that unlocks the practice surface.
package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/logging"
	"github.com/synkhq/synk/internal/oracle"
	"github.com/synkhq/synk/internal/state"
	"github.com/synkhq/synk/internal/survey"
)

// recommendedScenarios are the values the model may put in
// recommended_scenario. They double as practice scenario keys.
var recommendedScenarios = map[string]bool{
	"social_anxiety":          true,
	"authenticity_boundaries": true,
	"communication_gaps":      true,
	"social_energy":           true,
	"general":                 true,
}

// resultSchema constrains the model to the six-field diagnosis contract.
var resultSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"main_challenge": {Type: genai.TypeString},
		"confidence":     {Type: genai.TypeNumber},
		"traits": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"insight":              {Type: genai.TypeString},
		"recommended_scenario": {Type: genai.TypeString},
		"scores": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"social_energy":           {Type: genai.TypeNumber},
				"social_anxiety":          {Type: genai.TypeNumber},
				"communication_gaps":      {Type: genai.TypeNumber},
				"authenticity_boundaries": {Type: genai.TypeNumber},
			},
			Required: []string{"social_energy", "social_anxiety", "communication_gaps", "authenticity_boundaries"},
		},
	},
	Required: []string{"main_challenge", "confidence", "traits", "insight", "recommended_scenario", "scores"},
}

// Service runs the diagnosis flow against the oracle.
type Service struct {
	oracle oracle.Client
	state  *state.Manager
}

// New creates a diagnosis service.
func New(client oracle.Client, st *state.Manager) *Service {
	return &Service{oracle: client, state: st}
}

// Run asks the oracle for a profile from the intake answers. The stored
// diagnosis is replaced only when the response validates; any failure
// leaves the previous one untouched.
func (s *Service) Run(ctx context.Context, answers map[int]string) (core.DiagnosisResult, error) {
	snap := s.state.Snapshot()
	if snap.Baseline == nil {
		return core.DiagnosisResult{}, core.ErrBaselineRequired
	}

	prompt := buildPrompt(snap.Nickname, *snap.Baseline, answers)

	raw, err := s.oracle.GenerateJSON(ctx, oracle.JSONRequest{
		Prompt: prompt,
		Schema: resultSchema,
	})
	if err != nil {
		return core.DiagnosisResult{}, fmt.Errorf("diagnosis generation failed: %w", err)
	}

	var result core.DiagnosisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return core.DiagnosisResult{}, fmt.Errorf("%w: %v", core.ErrDiagnosisInvalid, err)
	}
	if err := validate(result); err != nil {
		logging.Warn("discarding diagnosis: %v", err)
		return core.DiagnosisResult{}, err
	}

	s.state.SetDiagnosis(result)
	return result, nil
}

func validate(r core.DiagnosisResult) error {
	if !r.MainChallenge.Valid() {
		return fmt.Errorf("%w: unknown main_challenge %q", core.ErrDiagnosisInvalid, r.MainChallenge)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range", core.ErrDiagnosisInvalid, r.Confidence)
	}
	if len(r.Traits) < 3 || len(r.Traits) > 5 {
		return fmt.Errorf("%w: %d traits, want 3 to 5", core.ErrDiagnosisInvalid, len(r.Traits))
	}
	if r.Insight == "" {
		return fmt.Errorf("%w: empty insight", core.ErrDiagnosisInvalid)
	}
	if !recommendedScenarios[r.RecommendedScenario] {
		return fmt.Errorf("%w: unknown recommended_scenario %q", core.ErrDiagnosisInvalid, r.RecommendedScenario)
	}
	for name, v := range map[string]int{
		"social_energy":           r.Scores.SocialEnergy,
		"social_anxiety":          r.Scores.SocialAnxiety,
		"communication_gaps":      r.Scores.CommunicationGaps,
		"authenticity_boundaries": r.Scores.AuthenticityBoundaries,
	} {
		if v < 1 || v > 100 {
			return fmt.Errorf("%w: score %s=%d out of range", core.ErrDiagnosisInvalid, name, v)
		}
	}
	return nil
}

// buildPrompt assembles the analysis request: baseline context, then the
// numbered answers in question order.
func buildPrompt(nickname string, baseline core.BaselineCheckin, answers map[int]string) string {
	var formatted []string
	for _, q := range survey.Questions {
		answer := answers[q.ID]
		if answer == "" {
			answer = "No respondida"
		}
		formatted = append(formatted, fmt.Sprintf("P%d: %q\nR: %q", q.ID, q.Text, answer))
	}

	note := baseline.Note
	if note == "" {
		note = "Ninguna"
	}

	baselineInfo := fmt.Sprintf(`Información del chequeo inicial de %s:
- Pregunta de estado de ánimo: %q
- Puntuación: %d/5
- Nota adicional: %q
Utiliza esta información como contexto clave para tu análisis.`, nickname, baseline.Question, baseline.Score, note)

	return fmt.Sprintf(`Eres "Synk Diagnóstico". Recibirás respuestas de una encuesta y un chequeo de estado de ánimo de un usuario llamado %s.
Analiza las respuestas a través de 4 factores clave: Energía Social, Ansiedad Social, Habilidades de Comunicación y Autenticidad/Límites.

%s

Respuestas de %s a la encuesta principal:
%s

Basado en todo esto, devuelve un único objeto JSON estricto con la siguiente estructura:
1.  `+"`main_challenge`"+`: Elige uno de: ["social_anxiety", "boundary_issues", "communication_gaps", "authenticity_doubt", "other"].
2.  `+"`confidence`"+`: Un número de 0 a 1 que representa tu confianza en el diagnóstico.
3.  `+"`traits`"+`: Un array de 3 a 5 etiquetas en minúsculas y en español que describen al usuario.
4.  `+"`insight`"+`: Un párrafo breve (≤80 palabras) en un tono cálido y empático.
5.  `+"`recommended_scenario`"+`: Elige uno de: ["social_anxiety", "authenticity_boundaries", "communication_gaps", "social_energy", "general"]. Debe corresponder al 'main_challenge' o ser 'general' si no hay un enfoque claro.
6.  `+"`scores`"+`: Un objeto con puntuaciones numéricas del 1 al 100 para los 4 factores ('social_energy', 'social_anxiety', 'communication_gaps', 'authenticity_boundaries') para el gráfico de radar. Una puntuación más alta es mejor.

No incluyas comentarios fuera del objeto JSON.`, nickname, baselineInfo, nickname, strings.Join(formatted, "\n\n"))
}

// RecommendedProfile maps a diagnosis to the connect persona suggested
// first: the recommended scenario decides, then the main challenge, and
// Leo is the default.
func RecommendedProfile(d core.DiagnosisResult) string {
	switch d.RecommendedScenario {
	case "social_anxiety", "social_energy":
		return "mateo"
	case "authenticity_boundaries":
		return "clara"
	case "communication_gaps":
		return "leo"
	}

	switch d.MainChallenge {
	case core.ChallengeSocialAnxiety:
		return "mateo"
	case core.ChallengeBoundaryIssues:
		return "clara"
	case core.ChallengeCommunicationGaps:
		return "leo"
	case core.ChallengeAuthenticityDoubt:
		return "sofia"
	default:
		return "leo"
	}
}
