package schedule

import (
	"strings"
	"time"
)

// Rules carries the scheduling policy. The zero value is unusable; use
// DefaultRules or build one from configuration.
type Rules struct {
	MaxDuration time.Duration
	// Business hours for auto-allocation: candidate start hours run from
	// StartHour to EndHour inclusive.
	StartHour int
	EndHour   int
}

func DefaultRules() Rules {
	return Rules{MaxDuration: 4 * time.Hour, StartHour: 8, EndHour: 16}
}

// validateInterval holds the checks shared by create and reschedule.
func (r Rules) validateInterval(iv Interval) *ValidationError {
	if !iv.Valid() {
		return newErr(CodeInvalidTimeOrder, "start time must be before end time")
	}
	if !iv.SameDay() {
		return newErr(CodeDifferentDays, "start and end must fall on the same day")
	}
	if iv.Duration() > r.MaxDuration {
		return newErr(CodeDurationTooLong, "interview may not exceed %v", r.MaxDuration)
	}
	return nil
}

// ValidateCreate guards a new booking for applicationID at candidate
// against the current snapshot. existing should hold every non-REJECTED
// booking, not just the candidate day: one application may hold at most
// one non-terminal booking across the whole process.
func (r Rules) ValidateCreate(candidate Interval, applicationID int64, existing []Booking, now time.Time) error {
	if err := r.validateInterval(candidate); err != nil {
		return err
	}
	if candidate.Start.Before(now) {
		return newErr(CodePastTime, "start time must not be in the past")
	}
	for i := range existing {
		b := &existing[i]
		if b.ApplicationID == applicationID && !b.Status.Terminal() {
			return newErr(CodeAlreadyScheduled, "application %d already has an interview scheduled", applicationID)
		}
	}
	if c := FindConflict(candidate, existing, applicationID, ""); c != nil {
		return NewConflictError(c)
	}
	return nil
}

// ValidateReschedule guards a move or resize of booking to next. The hour
// may change; the calendar day may not.
func (r Rules) ValidateReschedule(booking Booking, next Interval, existing []Booking) error {
	if !booking.Status.Editable() {
		return newErr(CodeImmutableStatus, "a %s interview can no longer be modified", Normalize(booking.Status))
	}
	if err := r.validateInterval(next); err != nil {
		return err
	}
	if !booking.Interval().SameDate(next) {
		return newErr(CodeDateChanged, "only the hour may change, not the date")
	}
	if c := FindConflict(next, existing, booking.ApplicationID, booking.ID); c != nil {
		return NewConflictError(c)
	}
	return nil
}

// ValidateDelete permits deletion only before the interview took place.
func ValidateDelete(booking Booking) error {
	if !booking.Status.Editable() {
		return newErr(CodeImmutableStatus, "a %s interview cannot be deleted", Normalize(booking.Status))
	}
	return nil
}

// ValidateResult guards the outcome-recording transition. The reason text
// is mandatory when rejecting.
func ValidateResult(booking Booking, next Status, result string) error {
	if !next.Known() {
		return newErr(CodeInvalidStatus, "unknown status %q", string(next))
	}
	if !CanTransition(booking.Status, next) {
		return newErr(CodeImmutableStatus, "cannot move a %s interview to %s",
			Normalize(booking.Status), Normalize(next))
	}
	if Normalize(next) == StatusRejected && strings.TrimSpace(result) == "" {
		return newErr(CodeResultRequired, "a reason is required when rejecting")
	}
	return nil
}

// AllocateSlot runs the allocator with this policy's business hours after
// checking its preconditions: no past days, and one booking per
// application across all days.
func (r Rules) AllocateSlot(day time.Time, applicationID int64, existing []Booking, now time.Time) (Interval, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return Interval{}, newErr(CodePastTime, "cannot schedule on a past day")
	}
	// a candidate's own bookings never conflict; only terminal ones can
	// remain here, and those must not block an hour
	others := make([]Booking, 0, len(existing))
	for i := range existing {
		b := &existing[i]
		if b.ApplicationID == applicationID {
			if !b.Status.Terminal() {
				return Interval{}, newErr(CodeAlreadyScheduled, "application %d already has an interview scheduled", applicationID)
			}
			continue
		}
		others = append(others, *b)
	}
	slot, ok := NextFreeHourSlot(day, others, r.StartHour, r.EndHour)
	if !ok {
		return Interval{}, newErr(CodeNoFreeSlot, "no free slot on %s", day.Format("2006-01-02"))
	}
	return slot, nil
}
