package state

import (
	"github.com/synkhq/synk/internal/core"
)

// LoadDemo replaces the whole session with the sample dataset in one
// step: an onboarded user with a finished diagnosis and three completed
// practice modules, enough to unlock every surface.
func (m *Manager) LoadDemo() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	m.nickname = "Demo"
	m.consented = true
	m.passiveAI = true
	m.baseline = &core.BaselineCheckin{
		Question:  "¿Cómo te sientes en este preciso momento?",
		Score:     4,
		Note:      "Listo para probar la app.",
		Timestamp: now,
	}
	m.diagnosis = &core.DiagnosisResult{
		MainChallenge:       core.ChallengeSocialAnxiety,
		Confidence:          0.95,
		Traits:              []string{"reflexivo", "empático", "cauteloso"},
		Insight:             "Parece que te tomas tiempo para entender las situaciones sociales, pero a veces la ansiedad puede interponerse. Explorar formas de iniciar conversaciones podría aumentar tu confianza.",
		RecommendedScenario: "social_anxiety",
		Scores: core.ProfileScores{
			SocialEnergy:           60,
			SocialAnxiety:          75,
			CommunicationGaps:      65,
			AuthenticityBoundaries: 85,
		},
	}
	m.practice = []core.PracticeSession{
		{ID: "demo-1", Prompt: "Iniciar una Conversación", Answer: "Completó el módulo Rompehielos.", Score: 100, Feedback: "Sesión completa!", Timestamp: now},
		{ID: "demo-2", Prompt: "Establecer un Límite", Answer: "Completó el módulo Rechazar Cortésmente.", Score: 100, Feedback: "Sesión completa!", Timestamp: now},
		{ID: "demo-3", Prompt: "Mantener una Conversación", Answer: "Completó el módulo Encontrando Conexiones.", Score: 100, Feedback: "Sesión completa!", Timestamp: now},
	}
	m.daily = nil

	m.persist(keyNickname, m.nickname)
	m.persist(keyConsent, m.consented)
	m.persist(keyPassiveAI, m.passiveAI)
	m.persist(keyBaseline, m.baseline)
	m.persist(keyDiagnosis, m.diagnosis)
	m.persist(keyPractice, m.practice)
	m.remove(keyDaily)
}
