package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synkhq/synk/internal/chat"
	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/diagnosis"
	"github.com/synkhq/synk/internal/gate"
)

// --- Practice handlers ---

func (s *Server) handleGetScenarios(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()

	recommended := ""
	if snap.Diagnosis != nil {
		recommended = snap.Diagnosis.RecommendedScenario
		if _, ok := chat.Scenarios[recommended]; !ok {
			recommended = chat.DefaultScenario
		}
	}

	scenarios := make([]core.Scenario, 0, len(chat.Scenarios))
	for _, sc := range chat.Scenarios {
		scenarios = append(scenarios, sc)
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios":   scenarios,
		"recommended": recommended,
		"gates":       gate.Evaluate(snap),
	})
}

func (s *Server) handleGetPracticeHistory(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": snap.Practice,
		"gates":    gate.Evaluate(snap),
	})
}

func (s *Server) handleOpenPractice(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Scenario string `json:"scenario"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.chats.OpenPractice(r.Context(), input.Scenario)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePracticeMessage(w http.ResponseWriter, r *http.Request) {
	s.handleChatMessage(w, r, core.SurfacePracticar, chi.URLParam(r, "scenario"))
}

func (s *Server) handleEndPractice(w http.ResponseWriter, r *http.Request) {
	s.chats.EndPractice(chi.URLParam(r, "scenario"))
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

// --- Connect handlers ---

// profileView pairs a persona with the affinity figure derived from the
// user's own diagnosis scores.
type profileView struct {
	core.Profile
	Compatibility int  `json:"compatibility"`
	Recommended   bool `json:"recommended"`
}

func (s *Server) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	if !gate.ConnectUnlocked(snap) {
		s.respondServiceError(w, core.ErrConnectLocked)
		return
	}

	recommended := diagnosis.RecommendedProfile(*snap.Diagnosis)
	score := gate.CompatibilityScore(snap.Diagnosis.Scores)

	profiles := make([]profileView, 0, len(chat.Profiles))
	for _, p := range chat.Profiles {
		profiles = append(profiles, profileView{
			Profile:       p,
			Compatibility: score,
			Recommended:   p.ID == recommended,
		})
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"profiles":    profiles,
		"recommended": recommended,
	})
}

func (s *Server) handleOpenConnect(w http.ResponseWriter, r *http.Request) {
	result, err := s.chats.OpenConnect(r.Context(), chi.URLParam(r, "profile"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleConnectMessage(w http.ResponseWriter, r *http.Request) {
	s.handleChatMessage(w, r, core.SurfaceConectar, chi.URLParam(r, "profile"))
}

func (s *Server) handleCloseConnect(w http.ResponseWriter, r *http.Request) {
	s.chats.CloseConnect(chi.URLParam(r, "profile"))
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

// handleChatMessage is the shared exchange path for both surfaces.
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request, surface core.Surface, id string) {
	var input struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.chats.Message(r.Context(), surface, id, input.Message)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.Broadcast("chat.message", map[string]interface{}{
		"surface": surface,
		"id":      id,
	})
	if result.Completed {
		s.Broadcast("practice.completed", result.Session)
		s.broadcastSession()
	}

	s.respondJSON(w, http.StatusOK, result)
}

// --- Workshop handlers ---

func (s *Server) handleGetWorkshop(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"prompts":     chat.PracticePrompts,
		"recommended": gate.WorkshopRecommended(snap),
	})
}
