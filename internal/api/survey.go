package api

import (
	"encoding/json"
	"net/http"

	"github.com/synkhq/synk/internal/diagnosis"
)

// --- Intake survey handlers ---

func (s *Server) handleGetSurvey(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.intake.Current())
}

func (s *Server) handleSurveyAnswer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Answer string `json:"answer"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.intake.Answer(input.Answer); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, s.intake.Current())
}

func (s *Server) handleSurveyBack(w http.ResponseWriter, r *http.Request) {
	if err := s.intake.Back(); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.intake.Current())
}

func (s *Server) handleSurveyReset(w http.ResponseWriter, r *http.Request) {
	s.intake.Reset()
	s.respondJSON(w, http.StatusOK, s.intake.Current())
}

// --- Diagnosis handlers ---

// handleRunDiagnosis submits the completed questionnaire to the oracle.
// The intake is only reset once a valid diagnosis is stored, so a
// failed run can be retried without retyping anything.
func (s *Server) handleRunDiagnosis(w http.ResponseWriter, r *http.Request) {
	answers, err := s.intake.Submit()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	result, err := s.diagnosis.Run(r.Context(), answers)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.intake.Reset()
	s.Broadcast("diagnosis.updated", result)
	s.broadcastSession()

	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"diagnosis":           result,
		"recommended_profile": diagnosis.RecommendedProfile(result),
	})
}

func (s *Server) handleGetDiagnosis(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	if snap.Diagnosis == nil {
		s.respondError(w, http.StatusNotFound, "no diagnosis yet")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"diagnosis":           *snap.Diagnosis,
		"recommended_profile": diagnosis.RecommendedProfile(*snap.Diagnosis),
	})
}
