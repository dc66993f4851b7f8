// Package api provides the HTTP API server for the Synk daemon.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/synkhq/synk/internal/chat"
	"github.com/synkhq/synk/internal/checkin"
	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/diagnosis"
	"github.com/synkhq/synk/internal/gate"
	"github.com/synkhq/synk/internal/logging"
	"github.com/synkhq/synk/internal/oracle"
	"github.com/synkhq/synk/internal/router"
	"github.com/synkhq/synk/internal/state"
	"github.com/synkhq/synk/internal/survey"
)

// Server is the HTTP API server
type Server struct {
	mux        *chi.Mux
	httpServer *http.Server

	// Components
	nav       *router.Router
	state     *state.Manager
	intake    *survey.Intake
	diagnosis *diagnosis.Service
	checkin   *checkin.Service
	chats     *chat.Manager
	wsHub     *WebSocketHub
}

// Config for the server
type Config struct {
	Host      string
	Port      int
	Router    *router.Router
	State     *state.Manager
	Intake    *survey.Intake
	Diagnosis *diagnosis.Service
	Checkin   *checkin.Service
	Chats     *chat.Manager
}

// New creates a new API server
func New(cfg Config) *Server {
	s := &Server{
		nav:       cfg.Router,
		state:     cfg.State,
		intake:    cfg.Intake,
		diagnosis: cfg.Diagnosis,
		checkin:   cfg.Checkin,
		chats:     cfg.Chats,
		wsHub:     NewWebSocketHub(),
	}

	s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRouter configures all routes
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Open to the login screen
		r.Post("/login", s.handleLogin)
		r.Get("/session", s.handleGetSession)

		// Everything else needs a signed-in session
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			// Onboarding
			r.Post("/nickname", s.handleSetNickname)
			r.Post("/consent", s.handleGrantConsent)
			r.Post("/passive-ai", s.handleSetPassiveAI)
			r.Post("/baseline", s.handleSubmitBaseline)
			r.Post("/demo", s.handleLoadDemo)

			// Navigation
			r.Post("/tab", s.handleSelectTab)
			r.Post("/emergency/open", s.handleOpenEmergency)
			r.Post("/emergency/close", s.handleCloseEmergency)

			// Daily check-in
			r.Get("/checkin/question", s.handleCheckinQuestion)
			r.Post("/checkin", s.handleSubmitCheckin)
			r.Get("/checkins", s.handleGetCheckins)

			// Intake survey and diagnosis
			r.Get("/survey", s.handleGetSurvey)
			r.Post("/survey/answer", s.handleSurveyAnswer)
			r.Post("/survey/back", s.handleSurveyBack)
			r.Post("/survey/reset", s.handleSurveyReset)
			r.Post("/diagnosis", s.handleRunDiagnosis)
			r.Get("/diagnosis", s.handleGetDiagnosis)

			// Practice
			r.Get("/practice/scenarios", s.handleGetScenarios)
			r.Get("/practice/history", s.handleGetPracticeHistory)
			r.Post("/practice/chat", s.handleOpenPractice)
			r.Post("/practice/chat/{scenario}/message", s.handlePracticeMessage)
			r.Post("/practice/chat/{scenario}/end", s.handleEndPractice)

			// Connect
			r.Get("/connect/profiles", s.handleGetProfiles)
			r.Post("/connect/chat/{profile}", s.handleOpenConnect)
			r.Post("/connect/chat/{profile}/message", s.handleConnectMessage)
			r.Post("/connect/chat/{profile}/close", s.handleCloseConnect)

			// Workshop
			r.Get("/workshop", s.handleGetWorkshop)
		})
	})

	// WebSocket
	r.Get("/ws", s.handleWebSocket)

	// Health
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.mux = r
}

// requireAuth rejects requests before a successful login.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.nav.Authenticated() {
			s.respondServiceError(w, core.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go s.wsHub.Run()

	logging.Info("API server listening on http://%s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Broadcast sends a message to all WebSocket clients
func (s *Server) Broadcast(msgType string, data interface{}) {
	s.wsHub.Broadcast(WebSocketMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps sentinel errors onto HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, core.ErrDiagnosisRequired),
		errors.Is(err, core.ErrConnectLocked),
		errors.Is(err, core.ErrConsentRequired):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrScenarioUnknown),
		errors.Is(err, core.ErrProfileUnknown),
		errors.Is(err, core.ErrChatNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrBaselineExists),
		errors.Is(err, core.ErrCheckinDone),
		errors.Is(err, core.ErrChatBusy):
		status = http.StatusConflict
	case oracle.IsRateLimited(err):
		status = http.StatusTooManyRequests
	case errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrInvalidScore),
		errors.Is(err, core.ErrNicknameRequired),
		errors.Is(err, core.ErrMissingRequired),
		errors.Is(err, core.ErrSurveyIncomplete),
		errors.Is(err, core.ErrAtFirstQuestion),
		errors.Is(err, core.ErrBaselineRequired):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrDiagnosisInvalid),
		errors.Is(err, oracle.ErrEmptyResponse),
		errors.Is(err, oracle.ErrNoAPIKey):
		status = http.StatusBadGateway
	}

	s.respondError(w, status, err.Error())
}

// --- Session handlers ---

// sessionView is the full client-facing session, re-derived per request
// so navigation can never go stale.
type sessionView struct {
	Page          core.Page              `json:"page"`
	Tab           core.Tab               `json:"tab"`
	Authenticated bool                   `json:"authenticated"`
	EmergencyOpen bool                   `json:"emergency_open"`
	Nickname      string                 `json:"nickname,omitempty"`
	Consented     bool                   `json:"consented"`
	PassiveAI     bool                   `json:"passive_ai"`
	Baseline      *core.BaselineCheckin  `json:"baseline,omitempty"`
	Diagnosis     *core.DiagnosisResult  `json:"diagnosis,omitempty"`
	CheckinDone   bool                   `json:"checkin_done"`
	Gates         gate.Status            `json:"gates"`
	Practice      []core.PracticeSession `json:"practice"`
	Daily         []core.DailyCheckin    `json:"daily"`
}

func (s *Server) sessionView() sessionView {
	snap := s.state.Snapshot()
	return sessionView{
		Page:          s.nav.Resolve(snap),
		Tab:           s.nav.ActiveTab(),
		Authenticated: s.nav.Authenticated(),
		EmergencyOpen: s.nav.EmergencyOpen(),
		Nickname:      snap.Nickname,
		Consented:     snap.Consented,
		PassiveAI:     snap.PassiveAI,
		Baseline:      snap.Baseline,
		Diagnosis:     snap.Diagnosis,
		CheckinDone:   s.state.CheckinDoneToday(),
		Gates:         gate.Evaluate(snap),
		Practice:      snap.Practice,
		Daily:         snap.Daily,
	}
}

func (s *Server) broadcastSession() {
	s.Broadcast("session.updated", s.sessionView())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.nav.Login(input.Username, input.Password); err != nil {
		s.respondError(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos.")
		return
	}

	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleSetNickname(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Nickname string `json:"nickname"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.state.SetNickname(input.Nickname); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.broadcastSession()
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleGrantConsent(w http.ResponseWriter, r *http.Request) {
	s.state.GrantConsent()
	s.broadcastSession()
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleSetPassiveAI(w http.ResponseWriter, r *http.Request) {
	var input struct {
		OptIn bool `json:"opt_in"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.state.SetPassiveAI(input.OptIn)
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleSubmitBaseline(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Question string `json:"question"`
		Score    int    `json:"score"`
		Note     string `json:"note"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.state.SubmitBaseline(input.Question, input.Score, input.Note); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.broadcastSession()
	s.respondJSON(w, http.StatusCreated, s.sessionView())
}

func (s *Server) handleLoadDemo(w http.ResponseWriter, r *http.Request) {
	s.state.LoadDemo()
	s.broadcastSession()
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

// --- Navigation handlers ---

func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Tab string `json:"tab"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.nav.SelectTab(s.state.Snapshot(), core.Tab(input.Tab)); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleOpenEmergency(w http.ResponseWriter, r *http.Request) {
	s.nav.OpenEmergency()
	s.respondJSON(w, http.StatusOK, s.sessionView())
}

func (s *Server) handleCloseEmergency(w http.ResponseWriter, r *http.Request) {
	s.nav.CloseEmergency()
	s.respondJSON(w, http.StatusOK, s.sessionView())
}
