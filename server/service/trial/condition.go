package trial

import (
	"fmt"

	errs "github.com/Shirel25/NutriSnap-HAI/server/internal/errors"
)

// ConditionLock holds the one-time assignment of the experimental condition.
// Once confirmed, the stored value is immutable for the session's lifetime.
type ConditionLock struct {
	value     Condition
	confirmed bool
}

// Select stages a condition. It fails once the lock is confirmed and leaves
// the stored value untouched.
func (l *ConditionLock) Select(c Condition) error {
	if l.confirmed {
		return errs.AlreadyConfirmed("experimental condition is locked for this session")
	}
	switch c {
	case ConditionAIAssisted, ConditionHumanOnly:
	default:
		return errs.InvalidEvent(fmt.Sprintf("unknown condition %q", c))
	}
	l.value = c
	return nil
}

// Confirm locks the staged condition. It fails when nothing was selected, and
// is irreversible afterwards.
func (l *ConditionLock) Confirm() error {
	if l.confirmed {
		return errs.AlreadyConfirmed("experimental condition is locked for this session")
	}
	if l.value == ConditionUnset {
		return errs.NoConditionSelected("select a condition before confirming")
	}
	l.confirmed = true
	return nil
}

// Value returns the staged or locked condition.
func (l *ConditionLock) Value() Condition {
	return l.value
}

// Confirmed reports whether the condition is locked.
func (l *ConditionLock) Confirmed() bool {
	return l.confirmed
}
