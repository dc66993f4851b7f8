// Package router resolves which page and tab the user sees. The page is
// never stored: it is re-derived from the session on every request, so
// there is no stale navigation state to reconcile.
package router

import (
	"sync"

	"github.com/synkhq/synk/internal/config"
	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/gate"
	"github.com/synkhq/synk/internal/state"
)

// rule pairs a predicate with the page shown while it holds. Rules are
// evaluated top to bottom; the first match wins.
type rule struct {
	blocked func(state.Snapshot) bool
	page    core.Page
}

var rules = []rule{
	{func(s state.Snapshot) bool { return s.Nickname == "" }, core.PageNickname},
	{func(s state.Snapshot) bool { return !s.Consented }, core.PageOnboarding},
	{func(s state.Snapshot) bool { return s.Baseline == nil }, core.PageBaseline},
}

// Router holds the transient navigation state: the auth flag, the active
// tab, and the emergency modal. None of it survives a restart.
type Router struct {
	mu            sync.Mutex
	auth          config.AuthConfig
	authenticated bool
	tab           core.Tab
	emergencyOpen bool
}

// New creates a router checking logins against the configured credentials.
func New(auth config.AuthConfig) *Router {
	return &Router{
		auth: auth,
		tab:  core.TabChequeo,
	}
}

// Login checks the fixed credentials. Success is remembered in memory
// only; a daemon restart logs the user out.
func (r *Router) Login(username, password string) error {
	if username != r.auth.Username || password != r.auth.Password {
		return core.ErrInvalidCredentials
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.authenticated = true
	return nil
}

// Authenticated reports whether a login succeeded this run.
func (r *Router) Authenticated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.authenticated
}

// Resolve returns the page for the current session. Login always wins;
// after that the first incomplete onboarding step claims the screen.
func (r *Router) Resolve(snap state.Snapshot) core.Page {
	if !r.Authenticated() {
		return core.PageLogin
	}
	for _, rl := range rules {
		if rl.blocked(snap) {
			return rl.page
		}
	}
	return core.PageMain
}

// SelectTab switches the active tab, enforcing the surface locks:
// Práctica needs a diagnosis, Conectar needs the connect gate.
func (r *Router) SelectTab(snap state.Snapshot, tab core.Tab) error {
	switch tab {
	case core.TabChequeo, core.TabTaller:
		// always open
	case core.TabPractica:
		if snap.Diagnosis == nil {
			return core.ErrDiagnosisRequired
		}
	case core.TabConectar:
		if !gate.ConnectUnlocked(snap) {
			return core.ErrConnectLocked
		}
	default:
		return core.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tab = tab
	return nil
}

// ActiveTab returns the current tab.
func (r *Router) ActiveTab() core.Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tab
}

// OpenEmergency shows the emergency resources modal.
func (r *Router) OpenEmergency() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emergencyOpen = true
}

// CloseEmergency hides the emergency resources modal.
func (r *Router) CloseEmergency() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emergencyOpen = false
}

// EmergencyOpen reports whether the modal is showing.
func (r *Router) EmergencyOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emergencyOpen
}
