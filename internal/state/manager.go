package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/logging"
)

// Persistence keys. They mirror the web client's storage keys so a
// stored session survives either frontend.
const (
	keyNickname  = "nickname"
	keyConsent   = "consent"
	keyBaseline  = "baseline-checkin"
	keyDaily     = "daily-checkins"
	keyPassiveAI = "passive-ai-opt-in"
	keyDiagnosis = "diagnosis"
	keyPractice  = "practice-history"
	chatPrefix   = "chat-"
)

// Manager owns the single user's session. All entities live in memory;
// every mutation is mirrored to the backend before it returns. Backend
// failures are logged and swallowed: a failed save means the change is
// memory-only, a failed load means the value is absent. Callers never
// see persistence errors.
type Manager struct {
	mu      sync.Mutex
	backend Backend
	now     func() time.Time

	nickname    string
	consented   bool
	passiveAI   bool
	baseline    *core.BaselineCheckin
	diagnosis   *core.DiagnosisResult
	daily       []core.DailyCheckin
	practice    []core.PracticeSession
	transcripts map[string][]core.ChatMessage
}

// Snapshot is an immutable copy of the session, safe to hand to the
// gate engine and API responses without holding the manager lock.
type Snapshot struct {
	Nickname  string
	Consented bool
	PassiveAI bool
	Baseline  *core.BaselineCheckin
	Diagnosis *core.DiagnosisResult
	Daily     []core.DailyCheckin
	Practice  []core.PracticeSession
}

// NewManager creates a manager and rehydrates the session from the backend.
func NewManager(backend Backend) *Manager {
	m := &Manager{
		backend:     backend,
		now:         time.Now,
		transcripts: make(map[string][]core.ChatMessage),
	}
	m.rehydrate()
	return m
}

func (m *Manager) rehydrate() {
	m.load(keyNickname, &m.nickname)
	m.load(keyConsent, &m.consented)
	m.load(keyPassiveAI, &m.passiveAI)

	var baseline core.BaselineCheckin
	if m.load(keyBaseline, &baseline) {
		m.baseline = &baseline
	}
	var diagnosis core.DiagnosisResult
	if m.load(keyDiagnosis, &diagnosis) {
		m.diagnosis = &diagnosis
	}
	m.load(keyDaily, &m.daily)
	m.load(keyPractice, &m.practice)
}

// load reads a key from the backend, treating any failure as absence.
func (m *Manager) load(key string, dest any) bool {
	ok, err := m.backend.Load(key, dest)
	if err != nil {
		logging.WithField("key", key).Warn("state load failed: %v", err)
		return false
	}
	return ok
}

// persist mirrors a value to the backend, swallowing failures.
func (m *Manager) persist(key string, v any) {
	if err := m.backend.Save(key, v); err != nil {
		logging.WithField("key", key).Warn("state save failed: %v", err)
	}
}

func (m *Manager) remove(key string) {
	if err := m.backend.Delete(key); err != nil {
		logging.WithField("key", key).Warn("state delete failed: %v", err)
	}
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		Nickname:  m.nickname,
		Consented: m.consented,
		PassiveAI: m.passiveAI,
		Daily:     append([]core.DailyCheckin(nil), m.daily...),
		Practice:  append([]core.PracticeSession(nil), m.practice...),
	}
	if m.baseline != nil {
		b := *m.baseline
		snap.Baseline = &b
	}
	if m.diagnosis != nil {
		d := *m.diagnosis
		snap.Diagnosis = &d
	}
	return snap
}

// SetNickname stores the display name. Blank names are rejected.
func (m *Manager) SetNickname(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrNicknameRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nickname = name
	m.persist(keyNickname, name)
	return nil
}

// GrantConsent records acceptance of the data-use terms.
func (m *Manager) GrantConsent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consented = true
	m.persist(keyConsent, true)
}

// SetPassiveAI toggles the passive analysis opt-in.
func (m *Manager) SetPassiveAI(optIn bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passiveAI = optIn
	m.persist(keyPassiveAI, optIn)
}

// SubmitBaseline records the one-time initial check-in. Consent comes
// first; a second submit is rejected, the first answer is permanent.
func (m *Manager) SubmitBaseline(question string, score int, note string) error {
	if score < 1 || score > 5 {
		return core.ErrInvalidScore
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.consented {
		return core.ErrConsentRequired
	}
	if m.baseline != nil {
		return core.ErrBaselineExists
	}

	m.baseline = &core.BaselineCheckin{
		Question:  question,
		Score:     score,
		Note:      note,
		Timestamp: m.now(),
	}
	m.persist(keyBaseline, m.baseline)
	return nil
}

// CheckinDoneToday reports whether a daily check-in was already recorded
// on the current local calendar day.
func (m *Manager) CheckinDoneToday() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkinDoneTodayLocked()
}

func (m *Manager) checkinDoneTodayLocked() bool {
	if len(m.daily) == 0 {
		return false
	}
	last := m.daily[len(m.daily)-1].Timestamp
	y1, mo1, d1 := last.Local().Date()
	y2, mo2, d2 := m.now().Local().Date()
	return y1 == y2 && mo1 == mo2 && d1 == d2
}

// AppendDailyCheckin records today's mood answer. At most one per local
// calendar day; the list is append-only.
func (m *Manager) AppendDailyCheckin(question, label, note string) (core.DailyCheckin, error) {
	if strings.TrimSpace(label) == "" {
		return core.DailyCheckin{}, core.ErrMissingRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkinDoneTodayLocked() {
		return core.DailyCheckin{}, core.ErrCheckinDone
	}

	checkin := core.DailyCheckin{
		ID:        uuid.New().String(),
		Question:  question,
		Label:     label,
		Note:      note,
		Timestamp: m.now(),
	}
	m.daily = append(m.daily, checkin)
	m.persist(keyDaily, m.daily)
	return checkin, nil
}

// SetDiagnosis replaces the stored diagnosis wholesale.
func (m *Manager) SetDiagnosis(d core.DiagnosisResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diagnosis = &d
	m.persist(keyDiagnosis, m.diagnosis)
}

// AppendPractice records a completed practice session.
func (m *Manager) AppendPractice(p core.PracticeSession) core.PracticeSession {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.practice = append(m.practice, p)
	m.persist(keyPractice, m.practice)
	return p
}

func transcriptKey(surface core.Surface, id string) string {
	return chatPrefix + string(surface) + "-" + id
}

// Transcript returns the saved transcript for (surface, id), consulting
// the in-memory cache first and falling back to the backend.
func (m *Manager) Transcript(surface core.Surface, id string) ([]core.ChatMessage, bool) {
	key := transcriptKey(surface, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if msgs, ok := m.transcripts[key]; ok {
		return append([]core.ChatMessage(nil), msgs...), true
	}

	var msgs []core.ChatMessage
	if !m.load(key, &msgs) || len(msgs) == 0 {
		return nil, false
	}
	m.transcripts[key] = msgs
	return append([]core.ChatMessage(nil), msgs...), true
}

// SaveTranscript replaces the transcript for (surface, id).
func (m *Manager) SaveTranscript(surface core.Surface, id string, msgs []core.ChatMessage) {
	key := transcriptKey(surface, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[key] = append([]core.ChatMessage(nil), msgs...)
	m.persist(key, msgs)
}

// DeleteTranscript discards the transcript for (surface, id).
func (m *Manager) DeleteTranscript(surface core.Surface, id string) {
	key := transcriptKey(surface, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transcripts, key)
	m.remove(key)
}
