package session

import (
	"errors"
	"fmt"
)

// Guard names carried on TransitionError so callers can show a precise
// message for the exact precondition that failed.
const (
	GuardWrongActor          = "wrongActor"
	GuardInvalidStatus       = "invalidStatus"
	GuardTerminalState       = "terminalState"
	GuardMeetingLinkRequired = "meetingLinkRequired"
	GuardReasonRequired      = "reasonRequired"
	GuardCancelWindowClosed  = "cancelWindowClosed"
	GuardSessionNotStarted   = "sessionNotStarted"
)

// ValidationError reports bad booking input. Recoverable by re-prompting;
// nothing is partially applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransitionError reports a lifecycle transition attempted outside its guard.
// The state machine re-validates every guard itself; a stale eligibility
// check on the caller's side always surfaces as one of these.
type TransitionError struct {
	Guard   string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition not allowed (%s): %s", e.Guard, e.Message)
}

func newTransitionError(guard, format string, args ...any) error {
	return &TransitionError{Guard: guard, Message: fmt.Sprintf(format, args...)}
}

// IsTransitionError reports whether err is (or wraps) a TransitionError.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}

// Booking input failures with fixed identities, so handlers can map them.
var (
	ErrMissingSelection    = NewValidationError("booking", "date and time slot must be selected")
	ErrTherapistUnresolved = NewValidationError("therapist", "therapist record not loaded")
)
