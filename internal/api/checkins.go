package api

import (
	"encoding/json"
	"net/http"
)

// --- Daily check-in handlers ---

func (s *Server) handleCheckinQuestion(w http.ResponseWriter, r *http.Request) {
	q := s.checkin.Question(r.Context())
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"question": q,
		"done":     s.checkin.Done(),
	})
}

func (s *Server) handleSubmitCheckin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Question string `json:"question"`
		Label    string `json:"label"`
		Note     string `json:"note"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	checkin, err := s.checkin.Submit(input.Question, input.Label, input.Note)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.Broadcast("checkin.recorded", checkin)
	s.broadcastSession()
	s.respondJSON(w, http.StatusCreated, checkin)
}

func (s *Server) handleGetCheckins(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"baseline": snap.Baseline,
		"daily":    snap.Daily,
		"done":     s.checkin.Done(),
	})
}
