package state

import (
	"errors"
	"testing"
	"time"

	"github.com/synkhq/synk/internal/core"
)

// failingBackend errors on every operation.
type failingBackend struct{}

func (failingBackend) Save(string, any) error          { return errors.New("disk on fire") }
func (failingBackend) Load(string, any) (bool, error)  { return false, errors.New("disk on fire") }
func (failingBackend) Delete(string) error             { return errors.New("disk on fire") }

func testManager(t *testing.T) (*Manager, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return NewManager(backend), backend
}

// =============================================================================
// Rehydration
// =============================================================================

func TestManager_Rehydrate(t *testing.T) {
	backend := NewMemoryBackend()

	first := NewManager(backend)
	if err := first.SetNickname("Alex"); err != nil {
		t.Fatalf("SetNickname() error = %v", err)
	}
	first.GrantConsent()
	if err := first.SubmitBaseline("¿Cómo te sientes?", 3, "bien"); err != nil {
		t.Fatalf("SubmitBaseline() error = %v", err)
	}
	first.SetDiagnosis(core.DiagnosisResult{
		MainChallenge: core.ChallengeOther,
		Confidence:    0.5,
		Traits:        []string{"a", "b", "c"},
		Scores:        core.ProfileScores{SocialEnergy: 50, SocialAnxiety: 50, CommunicationGaps: 50, AuthenticityBoundaries: 50},
	})

	// A fresh manager over the same backend sees everything
	second := NewManager(backend)
	snap := second.Snapshot()

	if snap.Nickname != "Alex" {
		t.Errorf("Nickname = %q, want Alex", snap.Nickname)
	}
	if !snap.Consented {
		t.Error("Consented should be true after rehydrate")
	}
	if snap.Baseline == nil || snap.Baseline.Score != 3 {
		t.Errorf("Baseline = %+v, want score 3", snap.Baseline)
	}
	if snap.Diagnosis == nil || snap.Diagnosis.MainChallenge != core.ChallengeOther {
		t.Errorf("Diagnosis = %+v, want main_challenge other", snap.Diagnosis)
	}
}

func TestManager_Rehydrate_EmptyBackend(t *testing.T) {
	m, _ := testManager(t)
	snap := m.Snapshot()

	if snap.Nickname != "" || snap.Consented || snap.Baseline != nil || snap.Diagnosis != nil {
		t.Errorf("fresh session should be empty, got %+v", snap)
	}
}

// =============================================================================
// Mutations
// =============================================================================

func TestManager_SetNickname_RejectsBlank(t *testing.T) {
	m, _ := testManager(t)

	for _, name := range []string{"", "   ", "\t"} {
		if err := m.SetNickname(name); !errors.Is(err, core.ErrNicknameRequired) {
			t.Errorf("SetNickname(%q) error = %v, want ErrNicknameRequired", name, err)
		}
	}
}

func TestManager_SetNickname_Trims(t *testing.T) {
	m, _ := testManager(t)

	if err := m.SetNickname("  Alex  "); err != nil {
		t.Fatalf("SetNickname() error = %v", err)
	}
	if got := m.Snapshot().Nickname; got != "Alex" {
		t.Errorf("Nickname = %q, want Alex", got)
	}
}

func TestManager_SubmitBaseline_RequiresConsent(t *testing.T) {
	m, _ := testManager(t)

	if err := m.SubmitBaseline("q", 4, ""); !errors.Is(err, core.ErrConsentRequired) {
		t.Errorf("SubmitBaseline() before consent error = %v, want ErrConsentRequired", err)
	}
}

func TestManager_SubmitBaseline_Once(t *testing.T) {
	m, _ := testManager(t)
	m.GrantConsent()

	if err := m.SubmitBaseline("q", 4, ""); err != nil {
		t.Fatalf("SubmitBaseline() error = %v", err)
	}
	if err := m.SubmitBaseline("q", 2, ""); !errors.Is(err, core.ErrBaselineExists) {
		t.Errorf("second SubmitBaseline() error = %v, want ErrBaselineExists", err)
	}

	// First answer is permanent
	if got := m.Snapshot().Baseline.Score; got != 4 {
		t.Errorf("Baseline.Score = %d, want 4", got)
	}
}

func TestManager_SubmitBaseline_ScoreRange(t *testing.T) {
	m, _ := testManager(t)
	m.GrantConsent()

	for _, score := range []int{0, -1, 6, 100} {
		if err := m.SubmitBaseline("q", score, ""); !errors.Is(err, core.ErrInvalidScore) {
			t.Errorf("SubmitBaseline(score=%d) error = %v, want ErrInvalidScore", score, err)
		}
	}
}

func TestManager_DailyCheckin_OncePerDay(t *testing.T) {
	m, _ := testManager(t)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	m.now = func() time.Time { return base }

	if _, err := m.AppendDailyCheckin("¿Cómo te sientes hoy?", "Bien", ""); err != nil {
		t.Fatalf("AppendDailyCheckin() error = %v", err)
	}

	// Same day, later hour: rejected
	m.now = func() time.Time { return base.Add(8 * time.Hour) }
	if _, err := m.AppendDailyCheckin("q", "Mal", ""); !errors.Is(err, core.ErrCheckinDone) {
		t.Errorf("same-day AppendDailyCheckin() error = %v, want ErrCheckinDone", err)
	}

	// Next calendar day, even one minute past midnight: allowed
	m.now = func() time.Time { return time.Date(2026, 8, 31, 0, 1, 0, 0, time.Local) }
	if _, err := m.AppendDailyCheckin("q", "Mal", ""); err != nil {
		t.Errorf("next-day AppendDailyCheckin() error = %v", err)
	}

	if got := len(m.Snapshot().Daily); got != 2 {
		t.Errorf("daily check-ins = %d, want 2", got)
	}
}

func TestManager_DailyCheckin_AssignsID(t *testing.T) {
	m, _ := testManager(t)

	checkin, err := m.AppendDailyCheckin("q", "Normal", "nota")
	if err != nil {
		t.Fatalf("AppendDailyCheckin() error = %v", err)
	}
	if checkin.ID == "" {
		t.Error("check-in should get a generated ID")
	}
	if checkin.Timestamp.IsZero() {
		t.Error("check-in should get a timestamp")
	}
}

func TestManager_AppendPractice_FillsDefaults(t *testing.T) {
	m, _ := testManager(t)

	p := m.AppendPractice(core.PracticeSession{Prompt: "Iniciar una Conversación", Score: 100})
	if p.ID == "" {
		t.Error("practice session should get a generated ID")
	}
	if p.Timestamp.IsZero() {
		t.Error("practice session should get a timestamp")
	}
	if got := len(m.Snapshot().Practice); got != 1 {
		t.Errorf("practice history = %d entries, want 1", got)
	}
}

// =============================================================================
// Transcripts
// =============================================================================

func TestManager_Transcript_RoundTrip(t *testing.T) {
	m, backend := testManager(t)

	msgs := []core.ChatMessage{
		{Role: core.RoleModel, Content: "¡Hola!"},
		{Role: core.RoleUser, Content: "Hola, ¿qué tal?"},
	}
	m.SaveTranscript(core.SurfacePracticar, "cafetería", msgs)

	got, ok := m.Transcript(core.SurfacePracticar, "cafetería")
	if !ok {
		t.Fatal("Transcript() should find saved transcript")
	}
	if len(got) != 2 || got[1].Content != "Hola, ¿qué tal?" {
		t.Errorf("Transcript() = %+v", got)
	}

	// Survives a restart
	m2 := NewManager(backend)
	got, ok = m2.Transcript(core.SurfacePracticar, "cafetería")
	if !ok || len(got) != 2 {
		t.Errorf("Transcript() after restart = %v (present=%v), want 2 messages", got, ok)
	}
}

func TestManager_Transcript_KeyedBySurface(t *testing.T) {
	m, _ := testManager(t)

	m.SaveTranscript(core.SurfacePracticar, "leo", []core.ChatMessage{{Role: core.RoleUser, Content: "practica"}})
	m.SaveTranscript(core.SurfaceConectar, "leo", []core.ChatMessage{{Role: core.RoleUser, Content: "conecta"}})

	practicar, _ := m.Transcript(core.SurfacePracticar, "leo")
	conectar, _ := m.Transcript(core.SurfaceConectar, "leo")
	if practicar[0].Content == conectar[0].Content {
		t.Error("surfaces should not share transcripts for the same id")
	}
}

func TestManager_DeleteTranscript(t *testing.T) {
	m, backend := testManager(t)

	m.SaveTranscript(core.SurfacePracticar, "cafe", []core.ChatMessage{{Role: core.RoleUser, Content: "x"}})
	m.DeleteTranscript(core.SurfacePracticar, "cafe")

	if _, ok := m.Transcript(core.SurfacePracticar, "cafe"); ok {
		t.Error("transcript should be gone after delete")
	}
	if _, ok := NewManager(backend).Transcript(core.SurfacePracticar, "cafe"); ok {
		t.Error("transcript should be gone from the backend too")
	}
}

// =============================================================================
// Persistence failure semantics
// =============================================================================

func TestManager_BackendFailures_AreSwallowed(t *testing.T) {
	m := NewManager(failingBackend{})

	// Mutations succeed even though every mirror write fails
	if err := m.SetNickname("Alex"); err != nil {
		t.Errorf("SetNickname() error = %v, want nil despite backend failure", err)
	}
	m.GrantConsent()
	if err := m.SubmitBaseline("q", 3, ""); err != nil {
		t.Errorf("SubmitBaseline() error = %v, want nil despite backend failure", err)
	}

	snap := m.Snapshot()
	if snap.Nickname != "Alex" || !snap.Consented || snap.Baseline == nil {
		t.Errorf("in-memory state should hold despite backend failure, got %+v", snap)
	}
}

// =============================================================================
// Demo dataset
// =============================================================================

func TestManager_LoadDemo(t *testing.T) {
	m, backend := testManager(t)

	m.LoadDemo()
	snap := m.Snapshot()

	if snap.Nickname != "Demo" {
		t.Errorf("Nickname = %q, want Demo", snap.Nickname)
	}
	if !snap.Consented || !snap.PassiveAI {
		t.Error("demo session should be consented with passive AI on")
	}
	if snap.Baseline == nil || snap.Baseline.Score != 4 {
		t.Errorf("Baseline = %+v, want score 4", snap.Baseline)
	}
	if snap.Diagnosis == nil || snap.Diagnosis.Scores.AuthenticityBoundaries != 85 {
		t.Errorf("Diagnosis = %+v, want authenticity_boundaries 85", snap.Diagnosis)
	}
	if len(snap.Practice) != 3 {
		t.Errorf("practice history = %d entries, want 3", len(snap.Practice))
	}
	for _, p := range snap.Practice {
		if p.Score != 100 {
			t.Errorf("demo practice score = %d, want 100", p.Score)
		}
	}

	// Mirrored: a restart sees the demo session
	snap2 := NewManager(backend).Snapshot()
	if snap2.Nickname != "Demo" || len(snap2.Practice) != 3 {
		t.Errorf("demo session should survive restart, got %+v", snap2)
	}
}
