package trial

import (
	"fmt"

	errs "github.com/Shirel25/NutriSnap-HAI/server/internal/errors"
)

// Calorie bounds accepted from the wizard console.
const (
	MinCalories = 0
	MaxCalories = 2000
)

// Categories is the closed vocabulary of dish types the wizard console can
// report.
var Categories = []string{
	"Pates", "Riz/Cereales", "Salade", "Fruit", "Legume", "Oeuf", "Pain",
	"Poisson", "Fromage", "Viande", "Sandwich", "Pizza", "Poke Bowl",
	"Soupe", "Snack/Gouter", "Dessert", "Boisson",
}

// Assessment is the wizard-supplied simulated AI output for one trial. It is
// ephemeral: it is never persisted on its own, only quoted into interaction
// records.
type Assessment struct {
	Category      string
	DisplayedText string
	Calories      int
	Uncertainty   Uncertainty
	// Macros is experimenter-authored stimulus in "P/C/F" convention,
	// treated as an opaque string.
	Macros      string
	Explanation string
	// JudgedCorrect is the wizard's own call on whether the simulated
	// output is right ("Y" or "N"), used downstream to measure reliance.
	JudgedCorrect string
}

// Normalize applies console defaults: the displayed text falls back to the
// category name when left empty.
func (a *Assessment) Normalize() {
	if a.DisplayedText == "" {
		a.DisplayedText = a.Category
	}
}

// Validate rejects malformed console input at the boundary so it can never
// reach the log.
func (a *Assessment) Validate() error {
	if !validCategory(a.Category) {
		return errs.InvalidAssessment(fmt.Sprintf("unknown dish category %q", a.Category))
	}
	if a.Calories < MinCalories || a.Calories > MaxCalories {
		return errs.InvalidAssessment(fmt.Sprintf("calories %d outside %d-%d", a.Calories, MinCalories, MaxCalories))
	}
	switch a.Uncertainty {
	case UncertaintyLow, UncertaintyMedium, UncertaintyHigh:
	default:
		return errs.InvalidAssessment(fmt.Sprintf("unknown uncertainty %q", a.Uncertainty))
	}
	switch a.JudgedCorrect {
	case "Y", "N":
	default:
		return errs.InvalidAssessment(fmt.Sprintf("judged correct must be Y or N, got %q", a.JudgedCorrect))
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
