package trial

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-participant mutable context carried through a run. It is
// owned by exactly one Machine, lives in memory for the whole run and is
// discarded at process end; only the appended interaction records are durable.
type Session struct {
	// ID is generated once and never changes.
	ID string
	// TrialID starts at 1 and increments only on trial completion (accept
	// or manual save).
	TrialID int
	// FailCounter counts consecutive rejects within the current trial.
	FailCounter int
	// ConsentGiven is monotonic false to true.
	ConsentGiven bool
	// Lock holds the experimental condition assignment.
	Lock ConditionLock
	// View is the screen the presentation layer renders next.
	View View
	// DecisionStartedAt is set while a response-time window is open.
	DecisionStartedAt *time.Time
	// PhotoRef is the opaque handle of the current trial's photo, empty
	// until the participant supplies one.
	PhotoRef string
	// PrefillText carries wizard output into the manual form on override.
	PrefillText string
	// Assessment is the wizard output revealed for the current trial, nil
	// outside the result flow.
	Assessment *Assessment
}

// NewSession creates a fresh session at first participant contact.
func NewSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		TrialID: 1,
		View:    ViewConsent,
	}
}

// Condition returns the session's condition assignment.
func (s *Session) Condition() Condition {
	return s.Lock.Value()
}

// HasPhoto reports whether a photo reference exists for the current trial.
func (s *Session) HasPhoto() bool {
	return s.PhotoRef != ""
}
