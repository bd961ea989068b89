package store

// Sentinel is the fixed literal written for every "not applicable" field in
// the interaction log: suppressed AI output under the human-only condition,
// absent manual input, and decision times with no open window.
const Sentinel = "na"

// InteractionColumns is the fixed column order of the interaction log. The
// header is written exactly once, when the sink is first created; rows are
// append-only and never rewritten.
var InteractionColumns = []string{
	"timestamp",
	"session_id",
	"trial_id",
	"condition",
	"ai_category",
	"ai_text",
	"ai_calories",
	"ai_uncertainty",
	"human_action",
	"manual_input",
	"final_entry",
	"human_intervention",
	"explanation_variant",
	"correct",
	"decision_time_ms",
}

// Interaction is one immutable row of the study log. All derivation
// (human-only suppression, final entry, intervention flag, decision time)
// happens before an Interaction reaches the store; fields hold the exact
// values to persist, with Sentinel standing in for "not applicable".
type Interaction struct {
	// Timestamp is formatted as "2006-01-02 15:04:05".
	Timestamp string
	SessionID string
	TrialID   int
	Condition string

	// Wizard-supplied AI output, quoted into the record.
	AICategory    string
	AIText        string
	AICalories    string
	AIUncertainty string

	// HumanAction is one of accept, override, reject, manual_entry.
	HumanAction string
	ManualInput string
	FinalEntry  string
	// HumanIntervention is 1 iff the action was override or manual_entry.
	HumanIntervention int

	ExplanationVariant string
	Correct            string
	// DecisionTimeMs is an integer millisecond count, or Sentinel when no
	// decision window was open.
	DecisionTimeMs string
}

// FindInteraction holds filters for listing logged interactions.
type FindInteraction struct {
	SessionID *string
	TrialID   *int
	Limit     *int
}
