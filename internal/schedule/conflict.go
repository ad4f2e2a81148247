package schedule

// FindConflict returns the first booking whose interval overlaps the
// candidate, or nil when the slot is free.
//
// Exempt from comparison:
//   - the booking identified by excludeID (the booking being edited),
//   - bookings of excludeApplicationID (a candidate never conflicts with
//     their own booking), when non-zero,
//   - DONE bookings (completed interviews are kept for history and their
//     slot may be reused).
//
// The candidate must be well-formed (Start < End); FindConflict does not
// re-validate that. Timestamps are compared absolutely, so callers must
// normalize inputs to one location first.
func FindConflict(candidate Interval, existing []Booking, excludeApplicationID int64, excludeID string) *Booking {
	for i := range existing {
		b := &existing[i]
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if excludeApplicationID != 0 && b.ApplicationID == excludeApplicationID {
			continue
		}
		if Normalize(b.Status) == StatusDone {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			return b
		}
	}
	return nil
}
