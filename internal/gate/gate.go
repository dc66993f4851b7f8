// Package gate derives progression from the session. Nothing here is
// stored: every value is recomputed from a snapshot, so gates can never
// drift out of sync with the entities they summarize.
package gate

import (
	"math"

	"github.com/synkhq/synk/internal/core"
	"github.com/synkhq/synk/internal/state"
)

// RequiredPractices is how many successful sessions unlock the connect surface.
const RequiredPractices = 3

// Status is the full gate picture for one snapshot.
type Status struct {
	SuccessfulPractices int  `json:"successful_practices"`
	RequiredPractices   int  `json:"required_practices"`
	HasDiagnosis        bool `json:"has_diagnosis"`
	ConnectUnlocked     bool `json:"connect_unlocked"`
	WorkshopRecommended bool `json:"workshop_recommended"`
	CompatibilityScore  int  `json:"compatibility_score"`
}

// Evaluate computes every gate from a snapshot. The compatibility score
// is zero until a diagnosis exists.
func Evaluate(snap state.Snapshot) Status {
	successes := SuccessfulPractices(snap.Practice)
	compat := 0
	if snap.Diagnosis != nil {
		compat = CompatibilityScore(snap.Diagnosis.Scores)
	}
	return Status{
		SuccessfulPractices: successes,
		RequiredPractices:   RequiredPractices,
		HasDiagnosis:        snap.Diagnosis != nil,
		ConnectUnlocked:     snap.Diagnosis != nil && successes >= RequiredPractices,
		WorkshopRecommended: WorkshopRecommended(snap),
		CompatibilityScore:  compat,
	}
}

// SuccessfulPractices counts sessions with a perfect score. Partial
// scores never count toward progression.
func SuccessfulPractices(history []core.PracticeSession) int {
	n := 0
	for _, p := range history {
		if p.Score == 100 {
			n++
		}
	}
	return n
}

// ConnectUnlocked reports whether the social surface is open: a stored
// diagnosis plus three successful practices.
func ConnectUnlocked(snap state.Snapshot) bool {
	return snap.Diagnosis != nil && SuccessfulPractices(snap.Practice) >= RequiredPractices
}

// CompatibilityScore collapses the four profile factors into a single
// 0-100 affinity figure shown next to each connect profile.
func CompatibilityScore(s core.ProfileScores) int {
	raw := 0.3*float64(s.SocialEnergy) +
		0.3*float64(s.CommunicationGaps) +
		0.2*float64(s.AuthenticityBoundaries) +
		0.2*float64(s.SocialAnxiety)
	return int(math.Round(raw))
}

// WorkshopRecommended reports whether the workshop tab should carry the
// recommendation badge: a low baseline score, or any low-mood daily
// check-in. Recommendations never clear once earned, which falls out of
// the append-only history rather than a stored flag.
func WorkshopRecommended(snap state.Snapshot) bool {
	if snap.Baseline != nil && snap.Baseline.Score <= 2 {
		return true
	}
	for _, c := range snap.Daily {
		if core.IsLowMood(c.Label) {
			return true
		}
	}
	return false
}
