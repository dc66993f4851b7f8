package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/gate"
	"github.com/synkhq/synk/internal/logging"
	"github.com/synkhq/synk/internal/oracle"
	"github.com/synkhq/synk/internal/state"
)

// Manager owns the open chat sessions on both surfaces. Transcripts are
// the durable record, held by the state manager; sessions are the live
// oracle conversations rebuilt on demand.
type Manager struct {
	mu       sync.Mutex
	oracle   oracle.Client
	state    *state.Manager
	sessions map[string]*session
}

type session struct {
	surface core.Surface
	id      string
	chat    oracle.Chat
	busy    bool
}

// OpenResult is what a freshly opened chat looks like to the caller.
type OpenResult struct {
	Surface    core.Surface       `json:"surface"`
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Resumed    bool               `json:"resumed"`
	Transcript []core.ChatMessage `json:"transcript"`
}

// MessageResult is the transcript after one exchange.
type MessageResult struct {
	Transcript []core.ChatMessage    `json:"transcript"`
	Completed  bool                  `json:"completed"`
	Session    *core.PracticeSession `json:"session,omitempty"`
}

// NewManager creates a chat manager.
func NewManager(client oracle.Client, st *state.Manager) *Manager {
	return &Manager{
		oracle:   client,
		state:    st,
		sessions: make(map[string]*session),
	}
}

func sessionKey(surface core.Surface, id string) string {
	return string(surface) + "/" + id
}

// OpenPractice starts or resumes a practice roleplay. An empty key picks
// the scenario the diagnosis recommends, falling back to the general
// one. A saved transcript is resumed by replaying it into a fresh
// oracle conversation; otherwise the coach kicks off the scene.
func (m *Manager) OpenPractice(ctx context.Context, key string) (OpenResult, error) {
	snap := m.state.Snapshot()
	if snap.Diagnosis == nil {
		return OpenResult{}, core.ErrDiagnosisRequired
	}

	if key == "" {
		key = snap.Diagnosis.RecommendedScenario
		if _, ok := Scenarios[key]; !ok {
			key = DefaultScenario
		}
	}
	sc, ok := Scenarios[key]
	if !ok {
		return OpenResult{}, core.ErrScenarioUnknown
	}

	return m.open(ctx, openSpec{
		surface:  core.SurfacePracticar,
		id:       key,
		title:    sc.Title,
		system:   coachSystemPrompt,
		kickoff:  practiceKickoff(snap.Nickname, snap.Diagnosis, sc),
		initErr:  msgInitPracticeErr,
	})
}

// OpenConnect starts or resumes a conversation with a connect persona.
// The surface must be unlocked.
func (m *Manager) OpenConnect(ctx context.Context, profileID string) (OpenResult, error) {
	snap := m.state.Snapshot()
	if !gate.ConnectUnlocked(snap) {
		return OpenResult{}, core.ErrConnectLocked
	}

	profile, ok := ProfileByID(profileID)
	if !ok {
		return OpenResult{}, core.ErrProfileUnknown
	}

	return m.open(ctx, openSpec{
		surface:  core.SurfaceConectar,
		id:       profile.ID,
		title:    profile.Name,
		system:   connectSystemPrompt(profile, snap.Nickname),
		kickoff:  "Hola",
		initErr:  msgInitConnectErr,
	})
}

type openSpec struct {
	surface core.Surface
	id      string
	title   string
	system  string
	kickoff string
	initErr string
}

func (m *Manager) open(ctx context.Context, spec openSpec) (OpenResult, error) {
	saved, resumed := m.state.Transcript(spec.surface, spec.id)

	var history []core.ChatMessage
	if resumed {
		history = saved
	}

	oc, err := m.oracle.NewChat(ctx, spec.system, history)
	if err != nil {
		return OpenResult{}, err
	}

	m.mu.Lock()
	m.sessions[sessionKey(spec.surface, spec.id)] = &session{
		surface: spec.surface,
		id:      spec.id,
		chat:    oc,
	}
	m.mu.Unlock()

	result := OpenResult{
		Surface: spec.surface,
		ID:      spec.id,
		Title:   spec.title,
		Resumed: resumed,
	}

	if resumed {
		result.Transcript = saved
		return result, nil
	}

	// Fresh session: the hidden kickoff produces the opening message.
	reply, err := oc.Send(ctx, spec.kickoff)
	if err != nil {
		logging.Warn("chat kickoff failed on %s/%s: %v", spec.surface, spec.id, err)
		result.Transcript = []core.ChatMessage{{Role: core.RoleError, Content: errorEntry(err, spec.initErr)}}
	} else {
		result.Transcript = []core.ChatMessage{{Role: core.RoleModel, Content: reply}}
	}

	m.state.SaveTranscript(spec.surface, spec.id, result.Transcript)
	return result, nil
}

// Message sends one user message on an open session. The user entry is
// recorded before the oracle is consulted; an oracle failure becomes an
// error entry in the transcript rather than a lost turn. A coach reply
// carrying the badge phrase completes the practice session: the
// transcript is discarded and a perfect-score practice is recorded.
func (m *Manager) Message(ctx context.Context, surface core.Surface, id, text string) (MessageResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return MessageResult{}, core.ErrInvalidInput
	}

	m.mu.Lock()
	sess, ok := m.sessions[sessionKey(surface, id)]
	if !ok {
		m.mu.Unlock()
		return MessageResult{}, core.ErrChatNotFound
	}
	if sess.busy {
		m.mu.Unlock()
		return MessageResult{}, core.ErrChatBusy
	}
	sess.busy = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		sess.busy = false
		m.mu.Unlock()
	}()

	// Optimistic append: the user's turn is saved no matter what.
	transcript, _ := m.state.Transcript(surface, id)
	transcript = append(transcript, core.ChatMessage{Role: core.RoleUser, Content: text})
	m.state.SaveTranscript(surface, id, transcript)

	reply, err := sess.chat.Send(ctx, text)
	if err != nil {
		logging.Warn("chat send failed on %s/%s: %v", surface, id, err)
		transcript = append(transcript, core.ChatMessage{Role: core.RoleError, Content: errorEntry(err, msgSendErr)})
		m.state.SaveTranscript(surface, id, transcript)
		return MessageResult{Transcript: transcript}, nil
	}

	transcript = append(transcript, core.ChatMessage{Role: core.RoleModel, Content: reply})

	if surface == core.SurfacePracticar && strings.Contains(reply, CompletionMarker) {
		sc := Scenarios[id]
		recorded := m.state.AppendPractice(core.PracticeSession{
			Prompt:   sc.Title,
			Answer:   "Completó el módulo " + sc.Module + ".",
			Score:    100,
			Feedback: "Sesión completa!",
		})
		m.state.DeleteTranscript(surface, id)

		m.mu.Lock()
		delete(m.sessions, sessionKey(surface, id))
		m.mu.Unlock()

		return MessageResult{Transcript: transcript, Completed: true, Session: &recorded}, nil
	}

	m.state.SaveTranscript(surface, id, transcript)
	return MessageResult{Transcript: transcript}, nil
}

// EndPractice abandons a practice session: the transcript is discarded
// and nothing is recorded.
func (m *Manager) EndPractice(id string) {
	m.state.DeleteTranscript(core.SurfacePracticar, id)

	m.mu.Lock()
	delete(m.sessions, sessionKey(core.SurfacePracticar, id))
	m.mu.Unlock()
}

// CloseConnect closes a connect conversation. The transcript is kept so
// the exchange resumes next time.
func (m *Manager) CloseConnect(id string) {
	m.mu.Lock()
	delete(m.sessions, sessionKey(core.SurfaceConectar, id))
	m.mu.Unlock()
}

// errorEntry picks the user-facing message for an oracle failure.
func errorEntry(err error, generic string) string {
	if oracle.IsRateLimited(err) {
		return msgQuotaPaused
	}
	return generic
}
