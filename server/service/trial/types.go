// Package trial implements the lifecycle of a Wizard-of-Oz study session:
// the screen-flow state machine, the experimental condition lock, the
// guardrails, and the derivation of immutable interaction log records. The
// "AI" output is always wizard-supplied; nothing in this package performs or
// calls real inference.
package trial

// View identifies the screen the presentation layer should render.
type View string

const (
	ViewConsent       View = "consent"
	ViewUpload        View = "upload"
	ViewWizardPrepare View = "wizard_prepare"
	ViewResult        View = "result"
	ViewManual        View = "manual"
)

// Condition is the experimental group assignment, fixed per session once
// confirmed.
type Condition string

const (
	ConditionUnset      Condition = ""
	ConditionAIAssisted Condition = "ai_assisted"
	ConditionHumanOnly  Condition = "human_only"
)

// Uncertainty is the wizard-simulated confidence level shown with an
// assessment.
type Uncertainty string

const (
	UncertaintyLow    Uncertainty = "low"
	UncertaintyMedium Uncertainty = "medium"
	UncertaintyHigh   Uncertainty = "high"
)

// Action is a participant decision on a revealed assessment, or the manual
// entry fallback.
type Action string

const (
	ActionAccept      Action = "accept"
	ActionOverride    Action = "override"
	ActionReject      Action = "reject"
	ActionManualEntry Action = "manual_entry"
)
