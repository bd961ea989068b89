package trial

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/Shirel25/NutriSnap-HAI/server/internal/errors"
	"github.com/Shirel25/NutriSnap-HAI/store"
	"github.com/lithammer/shortuuid/v4"
)

// Machine drives one session through the screen sequence. It is purely
// reactive: state changes only inside the event methods below, each of which
// runs to completion under the machine lock before the next event is
// accepted. A transition that must log does so before mutating any state, so
// a failed append leaves the session exactly where it was.
type Machine struct {
	mu      sync.Mutex
	session *Session
	store   *store.Store
	now     func() time.Time
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock overrides the time source, for deterministic decision-time tests.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine creates a machine owning the given session and appending records
// to the given store.
func NewMachine(session *Session, st *store.Store, opts ...MachineOption) *Machine {
	m := &Machine{
		session: session,
		store:   st,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State is a read-only snapshot of the session for the presentation layer.
type State struct {
	SessionID          string
	View               View
	TrialID            int
	FailCounter        int
	ConsentGiven       bool
	Condition          Condition
	ConditionConfirmed bool
	HasPhoto           bool
	PhotoRef           string
	PrefillText        string
	DecisionWindowOpen bool
	Abstained          bool
}

// Snapshot returns the current session state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session
	return State{
		SessionID:          s.ID,
		View:               s.View,
		TrialID:            s.TrialID,
		FailCounter:        s.FailCounter,
		ConsentGiven:       s.ConsentGiven,
		Condition:          s.Condition(),
		ConditionConfirmed: s.Lock.Confirmed(),
		HasPhoto:           s.HasPhoto(),
		PhotoRef:           s.PhotoRef,
		PrefillText:        s.PrefillText,
		DecisionWindowOpen: s.DecisionStartedAt != nil,
		Abstained:          s.View == ViewResult && ShouldAbstain(s.Assessment),
	}
}

// GiveConsent records the participant's consent. Consent is monotonic;
// repeating it is a no-op.
func (m *Machine) GiveConsent() (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.ConsentGiven = true
	if m.session.View == ViewConsent {
		m.session.View = ViewUpload
	}
	return m.session.View, nil
}

// SelectCondition stages the experimental condition (wizard-only event).
func (m *Machine) SelectCondition(c Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Lock.Select(c)
}

// ConfirmCondition locks the staged condition for the session's lifetime and
// resets the consecutive-failure count.
func (m *Machine) ConfirmCondition() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.session.Lock.Confirm(); err != nil {
		return err
	}
	m.session.FailCounter = 0
	return nil
}

// SupplyPhoto registers a photo for the current trial and returns the next
// view: manual entry under the human-only condition, wizard preparation
// otherwise. The photo itself is handled by the presentation layer; the
// machine only keeps an opaque reference.
func (m *Machine) SupplyPhoto() (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.gate(); err != nil {
		return m.session.View, err
	}
	if m.session.View != ViewUpload {
		return m.session.View, errs.InvalidEvent(fmt.Sprintf("photo supplied while in view %s", m.session.View))
	}

	m.session.PhotoRef = shortuuid.New()
	if m.session.Condition() == ConditionHumanOnly {
		m.enterManual()
	} else {
		m.session.View = ViewWizardPrepare
	}
	return m.session.View, nil
}

// Ready reveals the wizard's assessment to the participant (wizard-only
// event) and opens the decision window.
func (m *Machine) Ready(a Assessment) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.gate(); err != nil {
		return m.session.View, err
	}
	if m.session.View != ViewWizardPrepare {
		return m.session.View, errs.InvalidEvent(fmt.Sprintf("ready signaled while in view %s", m.session.View))
	}

	a.Normalize()
	if err := a.Validate(); err != nil {
		return m.session.View, err
	}

	m.session.Assessment = &a
	now := m.now()
	m.session.DecisionStartedAt = &now
	m.session.View = ViewResult
	return m.session.View, nil
}

// Decide applies a participant decision on the revealed assessment. The
// interaction is logged before any state changes; on log failure the trial is
// left untouched and the error surfaces to the operator.
func (m *Machine) Decide(ctx context.Context, action Action) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.gate(); err != nil {
		return m.session.View, err
	}
	if m.session.View != ViewResult || m.session.Assessment == nil {
		return m.session.View, errs.InvalidEvent(fmt.Sprintf("decision while in view %s", m.session.View))
	}
	if ShouldAbstain(m.session.Assessment) {
		return m.session.View, errs.Abstained("assessment withheld: only retake or manual entry are available")
	}
	switch action {
	case ActionAccept, ActionOverride, ActionReject:
	default:
		return m.session.View, errs.InvalidEvent(fmt.Sprintf("unknown decision %q", action))
	}

	if err := m.append(ctx, action, ""); err != nil {
		return m.session.View, err
	}

	switch action {
	case ActionAccept:
		m.completeTrial()
	case ActionOverride:
		a := m.session.Assessment
		m.session.PrefillText = fmt.Sprintf("%s, %d kcal, %s", a.DisplayedText, a.Calories, a.Macros)
		// Same trial, window stays open.
		m.enterManual()
	case ActionReject:
		next, stored, closeWindow := NextAfterReject(m.session.FailCounter + 1)
		m.session.FailCounter = stored
		if closeWindow {
			m.session.DecisionStartedAt = nil
		}
		if next == ViewManual {
			m.enterManual()
		} else {
			// Second chance within the same trial.
			m.session.PhotoRef = ""
			m.session.Assessment = nil
			m.session.View = ViewUpload
		}
	}
	return m.session.View, nil
}

// Retake returns to the upload screen after an abstention. Nothing is logged
// and no rejection is counted.
func (m *Machine) Retake() (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.gate(); err != nil {
		return m.session.View, err
	}
	if m.session.View != ViewResult || !ShouldAbstain(m.session.Assessment) {
		return m.session.View, errs.InvalidEvent("retake is only available while the assessment is withheld")
	}
	m.session.PhotoRef = ""
	m.session.Assessment = nil
	m.session.View = ViewUpload
	return m.session.View, nil
}

// ChooseManual switches to manual entry after an abstention. Nothing is
// logged yet; the manual submission will be.
func (m *Machine) ChooseManual() (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.gate(); err != nil {
		return m.session.View, err
	}
	if m.session.View != ViewResult || !ShouldAbstain(m.session.Assessment) {
		return m.session.View, errs.InvalidEvent("manual fallback is only available while the assessment is withheld")
	}
	m.enterManual()
	return m.session.View, nil
}

// SubmitManual logs the manual entry and completes the trial.
func (m *Machine) SubmitManual(ctx context.Context, text string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.gate(); err != nil {
		return m.session.View, err
	}
	if m.session.View != ViewManual {
		return m.session.View, errs.InvalidEvent(fmt.Sprintf("manual submit while in view %s", m.session.View))
	}

	if err := m.append(ctx, ActionManualEntry, text); err != nil {
		return m.session.View, err
	}
	m.completeTrial()
	return m.session.View, nil
}

// gate rejects participant-facing events until consent is given and the
// condition is confirmed.
func (m *Machine) gate() error {
	if !m.session.ConsentGiven {
		return errs.ConsentRequired("participant has not consented yet")
	}
	if !m.session.Lock.Confirmed() {
		return errs.ConditionNotConfirmed("select and confirm the experimental condition first")
	}
	return nil
}

// enterManual switches to the manual entry view, opening a decision window if
// none is running so manual entry times are measured too.
func (m *Machine) enterManual() {
	m.session.View = ViewManual
	if m.session.DecisionStartedAt == nil {
		now := m.now()
		m.session.DecisionStartedAt = &now
	}
}

// completeTrial advances to the next trial: this is the only place the trial
// counter increments.
func (m *Machine) completeTrial() {
	m.session.TrialID++
	m.session.FailCounter = 0
	m.session.DecisionStartedAt = nil
	m.session.PhotoRef = ""
	m.session.PrefillText = ""
	m.session.Assessment = nil
	m.session.View = ViewUpload
}

// append writes one interaction record derived from the pre-transition state.
func (m *Machine) append(ctx context.Context, action Action, manualInput string) error {
	record := newInteraction(m.session, action, manualInput, m.now())
	if err := m.store.CreateInteraction(ctx, record); err != nil {
		return errs.LogWriteFailed("interaction record not persisted; trial halted", err)
	}
	return nil
}
