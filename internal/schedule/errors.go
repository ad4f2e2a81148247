package schedule

import "fmt"

// Stable error codes shared with the client. Do not rename: the UI maps
// these to localized messages.
const (
	CodePastTime         = "PAST_TIME"
	CodeInvalidTimeOrder = "INVALID_TIME_ORDER"
	CodeDifferentDays    = "DIFFERENT_DAYS"
	CodeDateChanged      = "DATE_CHANGED"
	CodeDurationTooLong  = "DURATION_TOO_LONG"
	CodeScheduleConflict = "SCHEDULE_CONFLICT"
	CodeAlreadyScheduled = "ALREADY_SCHEDULED"
	CodeImmutableStatus  = "IMMUTABLE_STATUS"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeResultRequired   = "RESULT_REQUIRED"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
	CodeNoFreeSlot       = "NO_FREE_SLOT"
)

// ValidationError is a guard violation a caller should surface to the
// user. Conflict is set when Code is SCHEDULE_CONFLICT.
type ValidationError struct {
	Code     string
	Message  string
	Conflict *Booking
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newErr(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError names the conflicting booking so the caller can report
// who holds the slot.
func NewConflictError(b *Booking) *ValidationError {
	name := b.ApplicantName
	if name == "" {
		name = fmt.Sprintf("application %d", b.ApplicationID)
	}
	return &ValidationError{
		Code: CodeScheduleConflict,
		Message: fmt.Sprintf("slot conflicts with the interview of %s (%s-%s)",
			name, b.StartTime.Format("15:04"), b.EndTime.Format("15:04")),
		Conflict: b,
	}
}
