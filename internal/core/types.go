// Package core defines the fundamental types for Synk.
// These types are the DNA of the entire system.
package core

import (
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// PAGES - Where the single user can be
// -----------------------------------------------------------------------------

// Page is a top-level application page. Exactly one is active at a time,
// resolved from session state, never stored.
type Page string

const (
	PageLogin      Page = "login"
	PageNickname   Page = "nickname"
	PageOnboarding Page = "onboarding"
	PageBaseline   Page = "baseline"
	PageMain       Page = "main"
)

// Tab is one of the four tabs inside the main page.
type Tab string

const (
	TabChequeo  Tab = "chequeo"
	TabPractica Tab = "practica"
	TabConectar Tab = "conectar"
	TabTaller   Tab = "taller"
)

// -----------------------------------------------------------------------------
// CHECK-INS - Baseline (once, ever) and daily mood prompts
// -----------------------------------------------------------------------------

// BaselineCheckin is the one-time initial mood survey. Once stored it is
// never replaced.
type BaselineCheckin struct {
	Question  string    `json:"question"`
	Score     int       `json:"score"` // 1..5
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyCheckin is a recurring mood answer, recorded at most once per local
// calendar day. The list is append-only.
type DailyCheckin struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Label     string    `json:"label"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// LowMoodLabels flag the workshop recommendation when they appear in any
// daily check-in. Matching is case-insensitive.
var LowMoodLabels = []string{"mal", "meh", "cansado/a", "triste"}

// IsLowMood reports whether a daily check-in label is in the low-mood set.
func IsLowMood(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, m := range LowMoodLabels {
		if l == m {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// DIAGNOSIS - The AI-derived social profile
// -----------------------------------------------------------------------------

// MainChallenge is the primary focus area the diagnosis identifies.
type MainChallenge string

const (
	ChallengeSocialAnxiety     MainChallenge = "social_anxiety"
	ChallengeBoundaryIssues    MainChallenge = "boundary_issues"
	ChallengeCommunicationGaps MainChallenge = "communication_gaps"
	ChallengeAuthenticityDoubt MainChallenge = "authenticity_doubt"
	ChallengeOther             MainChallenge = "other"
)

// Valid reports whether the challenge is one of the known values.
func (c MainChallenge) Valid() bool {
	switch c {
	case ChallengeSocialAnxiety, ChallengeBoundaryIssues,
		ChallengeCommunicationGaps, ChallengeAuthenticityDoubt, ChallengeOther:
		return true
	}
	return false
}

// ProfileScores are the four radar factors, each 1..100, higher is better.
type ProfileScores struct {
	SocialEnergy           int `json:"social_energy"`
	SocialAnxiety          int `json:"social_anxiety"`
	CommunicationGaps      int `json:"communication_gaps"`
	AuthenticityBoundaries int `json:"authenticity_boundaries"`
}

// DiagnosisResult is the structured profile returned by the oracle after
// the intake survey. It is replaced wholesale or not at all.
type DiagnosisResult struct {
	MainChallenge       MainChallenge `json:"main_challenge"`
	Confidence          float64       `json:"confidence"` // 0..1
	Traits              []string      `json:"traits"`     // 3..5 short labels
	Insight             string        `json:"insight"`
	RecommendedScenario string        `json:"recommended_scenario"`
	Scores              ProfileScores `json:"scores"`
}

// -----------------------------------------------------------------------------
// PRACTICE - Completed coaching sessions
// -----------------------------------------------------------------------------

// PracticeSession records one completed practice scenario. A session counts
// toward progression iff Score == 100.
type PracticeSession struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Answer    string    `json:"answer"`
	Score     int       `json:"score"`
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// CHAT - Transcripts shared by the practice and connect surfaces
// -----------------------------------------------------------------------------

// Surface identifies which feature owns a chat transcript.
type Surface string

const (
	SurfacePracticar Surface = "practicar"
	SurfaceConectar  Surface = "conectar"
)

// ChatRole tags a transcript entry. Error entries stay in the stored
// transcript so the user sees what happened.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
	RoleError ChatRole = "error"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// OracleRole maps a stored role onto the role used when replaying history
// into a fresh oracle session. Error entries ride along as model turns so
// the replayed history stays alternating.
func (m ChatMessage) OracleRole() ChatRole {
	if m.Role == RoleError {
		return RoleModel
	}
	return m.Role
}

// -----------------------------------------------------------------------------
// SURVEY - Diagnosis intake questions
// -----------------------------------------------------------------------------

// QuestionType distinguishes 1-5 scale questions from multiple choice.
type QuestionType string

const (
	QuestionScale          QuestionType = "scale"
	QuestionMultipleChoice QuestionType = "multiple-choice"
)

// Question is one fixed intake question.
type Question struct {
	ID         int          `json:"id"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Options    []string     `json:"options,omitempty"`
	HelperText string       `json:"helper_text,omitempty"`
}

// -----------------------------------------------------------------------------
// CATALOG - Practice scenarios and connect profiles
// -----------------------------------------------------------------------------

// Scenario describes one practice roleplay.
type Scenario struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Module       string `json:"module"` // badge name, quoted verbatim in the coach prompt
	Character    string `json:"character"`
	Setting      string `json:"setting"`
	Instructions string `json:"instructions"`
}

// Profile is one connect-page chatbot persona.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar"`
	Bio         string   `json:"bio"`
	Personality []string `json:"personality"`
}
