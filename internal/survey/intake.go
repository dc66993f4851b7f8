package survey

import (
	"sync"
	"time"

	"github.com/synkhq/synk/internal/core"
)

// DefaultAdvanceDelay is the pause between selecting an answer and the
// questionnaire moving on, long enough to show the selection highlight.
const DefaultAdvanceDelay = 300 * time.Millisecond

// Intake walks the fixed questionnaire. Answering any question but the
// last schedules an automatic advance; the last question waits for an
// explicit Submit so the user can review before committing.
type Intake struct {
	mu           sync.Mutex
	questions    []core.Question
	answers      map[int]string
	index        int
	advanceDelay time.Duration
	pending      *time.Timer
}

// Progress describes where the user is in the questionnaire.
type Progress struct {
	Question core.Question `json:"question"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Answer   string        `json:"answer,omitempty"`
	Last     bool          `json:"last"`
}

// NewIntake creates an intake over the standard questions.
func NewIntake() *Intake {
	return NewIntakeWithDelay(DefaultAdvanceDelay)
}

// NewIntakeWithDelay creates an intake with a custom auto-advance delay.
func NewIntakeWithDelay(delay time.Duration) *Intake {
	return &Intake{
		questions:    Questions,
		answers:      make(map[int]string),
		advanceDelay: delay,
	}
}

// Current returns the question on screen and overall progress.
func (i *Intake) Current() Progress {
	i.mu.Lock()
	defer i.mu.Unlock()

	q := i.questions[i.index]
	return Progress{
		Question: q,
		Index:    i.index,
		Total:    len(i.questions),
		Answer:   i.answers[q.ID],
		Last:     i.index == len(i.questions)-1,
	}
}

// Answer records the answer for the current question. Answers must be
// one of the question's options. Re-answering before the advance fires
// replaces the previous choice and restarts the timer.
func (i *Intake) Answer(answer string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	q := i.questions[i.index]
	if !validOption(q, answer) {
		return core.ErrInvalidInput
	}

	i.answers[q.ID] = answer
	i.cancelPendingLocked()

	if i.index < len(i.questions)-1 {
		at := i.index
		i.pending = time.AfterFunc(i.advanceDelay, func() {
			i.mu.Lock()
			defer i.mu.Unlock()
			// Only advance if nothing moved us in the meantime
			if i.index == at {
				i.index++
				i.pending = nil
			}
		})
	}
	return nil
}

// Back returns to the previous question, cancelling any scheduled
// advance. Earlier answers stay selected.
func (i *Intake) Back() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.cancelPendingLocked()
	if i.index == 0 {
		return core.ErrAtFirstQuestion
	}
	i.index--
	return nil
}

// Submit finishes the questionnaire and returns the answer set. Every
// question must be answered.
func (i *Intake) Submit() (map[int]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, q := range i.questions {
		if _, ok := i.answers[q.ID]; !ok {
			return nil, core.ErrSurveyIncomplete
		}
	}

	out := make(map[int]string, len(i.answers))
	for k, v := range i.answers {
		out[k] = v
	}
	return out, nil
}

// Reset clears all answers and returns to the first question.
func (i *Intake) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.cancelPendingLocked()
	i.answers = make(map[int]string)
	i.index = 0
}

func (i *Intake) cancelPendingLocked() {
	if i.pending != nil {
		i.pending.Stop()
		i.pending = nil
	}
}

func validOption(q core.Question, answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}
