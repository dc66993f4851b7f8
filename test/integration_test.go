// Package test contains integration tests for Synk.
package test

import (
	"path/filepath"
	"testing"

	"github.com/synkhq/synk/internal/chat"
	"github.com/synkhq/synk/internal/config"
	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/diagnosis"
	"github.com/synkhq/synk/internal/gate"
	"github.com/synkhq/synk/internal/oracle"
	"github.com/synkhq/synk/internal/router"
	"github.com/synkhq/synk/internal/state"
	"github.com/synkhq/synk/internal/storage"
	"github.com/synkhq/synk/internal/survey"
	"github.com/synkhq/synk/internal/testutil"
)

const diagnosisJSON = `{
	"main_challenge": "social_anxiety",
	"confidence": 0.9,
	"traits": ["reflexivo", "empático", "cauteloso"],
	"insight": "Tu energía social es un recurso valioso.",
	"recommended_scenario": "social_anxiety",
	"scores": {
		"social_energy": 60,
		"social_anxiety": 75,
		"communication_gaps": 65,
		"authenticity_boundaries": 85
	}
}`

// TestFullWorkflow walks the complete Synk journey on a file-backed
// database: login, onboarding, diagnosis, three practice badges, the
// connect unlock, and finally a restart to prove it all survives.
func TestFullWorkflow(t *testing.T) {
	ctx := testutil.TestContext(t)
	dbPath := filepath.Join(testutil.TempDir(t), "synk.db")

	fake := &oracle.Fake{JSONQueue: []string{diagnosisJSON}}
	cfg := config.Default()

	db, err := storage.Open(storage.Config{Path: dbPath})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	st := state.NewManager(storage.NewStateStore(db))
	nav := router.New(cfg.Auth)

	// 1. Login
	t.Run("Login", func(t *testing.T) {
		if err := nav.Login("synk28h", "wrong"); err == nil {
			t.Error("Expected error for wrong password")
		}
		if err := nav.Login("synk28h", "lima2025"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if page := nav.Resolve(st.Snapshot()); page != core.PageNickname {
			t.Errorf("Expected nickname page after login, got %s", page)
		}
	})

	// 2. Onboarding
	t.Run("Onboarding", func(t *testing.T) {
		if err := st.SetNickname("Viajera"); err != nil {
			t.Fatalf("SetNickname failed: %v", err)
		}
		st.GrantConsent()
		if err := st.SubmitBaseline("¿Cómo te sientes?", 4, "tranquila"); err != nil {
			t.Fatalf("SubmitBaseline failed: %v", err)
		}
		if page := nav.Resolve(st.Snapshot()); page != core.PageMain {
			t.Errorf("Expected main page after onboarding, got %s", page)
		}
	})

	// 3. Diagnosis from a completed survey
	t.Run("Diagnosis", func(t *testing.T) {
		answers := make(map[int]string)
		for _, q := range survey.Questions {
			answers[q.ID] = q.Options[0]
		}

		svc := diagnosis.New(fake, st)
		result, err := svc.Run(ctx, answers)
		if err != nil {
			t.Fatalf("Diagnosis failed: %v", err)
		}
		if result.RecommendedScenario != "social_anxiety" {
			t.Errorf("Expected social_anxiety scenario, got %s", result.RecommendedScenario)
		}
	})

	// 4. Three practice badges unlock the connect surface
	t.Run("PracticeUnlock", func(t *testing.T) {
		chats := chat.NewManager(fake, st)

		for i := 0; i < 3; i++ {
			fake.ReplyQueue = []string{
				"*Hola* ¿Qué te trae por aquí?",
				"¡Gran trabajo! ¡Has ganado la insignia 'Rompehielos'!",
			}

			opened, err := chats.OpenPractice(ctx, "")
			if err != nil {
				t.Fatalf("OpenPractice %d failed: %v", i, err)
			}
			if opened.ID != "social_anxiety" {
				t.Fatalf("Expected recommended scenario, got %s", opened.ID)
			}

			result, err := chats.Message(ctx, core.SurfacePracticar, opened.ID, "Hola, ¿qué estás leyendo?")
			if err != nil {
				t.Fatalf("Message %d failed: %v", i, err)
			}
			if !result.Completed {
				t.Fatalf("Exchange %d should have completed the practice", i)
			}
		}

		if !gate.ConnectUnlocked(st.Snapshot()) {
			t.Error("Connect should unlock after three perfect practices")
		}
	})

	// 5. Daily check-in gates on the calendar day
	t.Run("DailyCheckin", func(t *testing.T) {
		if _, err := st.AppendDailyCheckin("¿Cómo te sientes hoy?", "Bien", ""); err != nil {
			t.Fatalf("AppendDailyCheckin failed: %v", err)
		}
		if _, err := st.AppendDailyCheckin("¿Cómo te sientes hoy?", "Mal", ""); err == nil {
			t.Error("Expected error for a second check-in on the same day")
		}
	})

	// 6. Restart: everything persisted except the login
	t.Run("Restart", func(t *testing.T) {
		if err := db.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		db2, err := storage.Open(storage.Config{Path: dbPath})
		if err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		defer db2.Close()
		if err := db2.Migrate(); err != nil {
			t.Fatalf("Migration on reopen failed: %v", err)
		}

		st2 := state.NewManager(storage.NewStateStore(db2))
		snap := st2.Snapshot()

		if snap.Nickname != "Viajera" {
			t.Errorf("Expected nickname to survive restart, got %q", snap.Nickname)
		}
		if snap.Diagnosis == nil {
			t.Error("Expected diagnosis to survive restart")
		}
		if got := gate.SuccessfulPractices(snap.Practice); got != 3 {
			t.Errorf("Expected 3 practice badges after restart, got %d", got)
		}
		if !gate.ConnectUnlocked(snap) {
			t.Error("Connect unlock should be derived again after restart")
		}

		nav2 := router.New(config.Default().Auth)
		if page := nav2.Resolve(snap); page != core.PageLogin {
			t.Errorf("Login must not survive a restart, got page %s", page)
		}
	})
}
