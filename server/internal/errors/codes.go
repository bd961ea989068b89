package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for study operations.
type ErrorCode string

const (
	// ErrCodeAlreadyConfirmed indicates the experimental condition is locked.
	ErrCodeAlreadyConfirmed ErrorCode = "ALREADY_CONFIRMED"
	// ErrCodeNoConditionSelected indicates confirm was called before any
	// condition was selected.
	ErrCodeNoConditionSelected ErrorCode = "NO_CONDITION_SELECTED"
	// ErrCodeConditionNotConfirmed indicates a participant event arrived
	// before the wizard confirmed the experimental condition.
	ErrCodeConditionNotConfirmed ErrorCode = "CONDITION_NOT_CONFIRMED"
	// ErrCodeConsentRequired indicates a trial event arrived before consent.
	ErrCodeConsentRequired ErrorCode = "CONSENT_REQUIRED"
	// ErrCodeInvalidEvent indicates an event that is not legal in the
	// session's current view.
	ErrCodeInvalidEvent ErrorCode = "INVALID_EVENT"
	// ErrCodeInvalidAssessment indicates malformed wizard console input.
	ErrCodeInvalidAssessment ErrorCode = "INVALID_ASSESSMENT"
	// ErrCodeAbstained indicates a decision was attempted while the
	// high-uncertainty abstention guardrail withholds decision controls.
	ErrCodeAbstained ErrorCode = "ABSTAINED"
	// ErrCodeLogWriteFailed indicates the interaction log append failed. The
	// triggering transition is not applied.
	ErrCodeLogWriteFailed ErrorCode = "LOG_WRITE_FAILED"
	// ErrCodeSessionNotFound indicates an unknown session identifier.
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
)

// StudyError represents a structured error for study operations.
type StudyError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StudyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StudyError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *StudyError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// AlreadyConfirmed creates a locked-condition error.
func AlreadyConfirmed(msg string) *StudyError {
	return &StudyError{Code: ErrCodeAlreadyConfirmed, Message: msg}
}

// NoConditionSelected creates a confirm-before-select error.
func NoConditionSelected(msg string) *StudyError {
	return &StudyError{Code: ErrCodeNoConditionSelected, Message: msg}
}

// ConditionNotConfirmed creates an event-before-confirmation error.
func ConditionNotConfirmed(msg string) *StudyError {
	return &StudyError{Code: ErrCodeConditionNotConfirmed, Message: msg}
}

// ConsentRequired creates an event-before-consent error.
func ConsentRequired(msg string) *StudyError {
	return &StudyError{Code: ErrCodeConsentRequired, Message: msg}
}

// InvalidEvent creates an error for an event illegal in the current view.
func InvalidEvent(msg string) *StudyError {
	return &StudyError{Code: ErrCodeInvalidEvent, Message: msg}
}

// InvalidAssessment creates a malformed-console-input error.
func InvalidAssessment(msg string) *StudyError {
	return &StudyError{Code: ErrCodeInvalidAssessment, Message: msg}
}

// Abstained creates a decision-withheld error.
func Abstained(msg string) *StudyError {
	return &StudyError{Code: ErrCodeAbstained, Message: msg}
}

// LogWriteFailed creates a log append failure error.
func LogWriteFailed(msg string, cause error) *StudyError {
	return &StudyError{Code: ErrCodeLogWriteFailed, Message: msg, Cause: cause}
}

// SessionNotFound creates an unknown-session error.
func SessionNotFound(sessionID string) *StudyError {
	return &StudyError{
		Code:    ErrCodeSessionNotFound,
		Message: fmt.Sprintf("session not found: %s", sessionID),
	}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	var studyErr *StudyError
	if errors.As(err, &studyErr) {
		return studyErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
func GetCodeFromError(err error) (ErrorCode, bool) {
	var studyErr *StudyError
	if errors.As(err, &studyErr) {
		return studyErr.Code, true
	}
	return "", false
}
