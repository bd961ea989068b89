package trial

import (
	"strconv"
	"time"

	"github.com/Shirel25/NutriSnap-HAI/store"
)

const timestampLayout = "2006-01-02 15:04:05"

// newInteraction derives the immutable log row from the session, the current
// assessment and the action taken. All conditional field rules live here, in
// one place, so no caller can leak AI output into a control-group record:
//   - manual_entry rows never quote the assessment (only its explanation,
//     under the AI condition, survives as the explanation variant);
//   - under the human-only condition every AI-derived field is forced to the
//     sentinel regardless of what the wizard console holds;
//   - final_entry and human_intervention are derived, never supplied;
//   - decision_time_ms is measured against the open window, or sentinel.
//
// The caller must not mutate the session before appending the returned row:
// the row quotes the pre-transition state (same trial, open window).
func newInteraction(s *Session, action Action, manualInput string, now time.Time) *store.Interaction {
	in := &store.Interaction{
		Timestamp:          now.Format(timestampLayout),
		SessionID:          s.ID,
		TrialID:            s.TrialID,
		Condition:          string(s.Condition()),
		AICategory:         store.Sentinel,
		AIText:             store.Sentinel,
		AICalories:         store.Sentinel,
		AIUncertainty:      store.Sentinel,
		HumanAction:        string(action),
		ManualInput:        store.Sentinel,
		ExplanationVariant: store.Sentinel,
		Correct:            store.Sentinel,
		DecisionTimeMs:     store.Sentinel,
	}

	if s.DecisionStartedAt != nil {
		in.DecisionTimeMs = strconv.FormatInt(now.Sub(*s.DecisionStartedAt).Milliseconds(), 10)
	}

	a := s.Assessment
	if a != nil && action != ActionManualEntry {
		in.AICategory = a.Category
		in.AIText = a.DisplayedText
		in.AICalories = strconv.Itoa(a.Calories)
		in.AIUncertainty = string(a.Uncertainty)
		in.Correct = a.JudgedCorrect
	}
	if a != nil && s.Condition() == ConditionAIAssisted {
		in.ExplanationVariant = a.Explanation
	}

	if action == ActionManualEntry {
		in.ManualInput = manualInput
	}

	// Control group: no AI output leaves the logger, whatever the console
	// held at the time.
	if s.Condition() == ConditionHumanOnly {
		in.AICategory = store.Sentinel
		in.AIText = store.Sentinel
		in.AICalories = store.Sentinel
		in.AIUncertainty = store.Sentinel
		in.ExplanationVariant = store.Sentinel
		in.Correct = store.Sentinel
	}

	if in.ManualInput != store.Sentinel {
		in.FinalEntry = in.ManualInput
	} else {
		in.FinalEntry = in.AIText
	}

	if action == ActionOverride || action == ActionManualEntry {
		in.HumanIntervention = 1
	}

	return in
}
