package schedule

// Status of an interview booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusScheduled Status = "SCHEDULED"
	StatusDone      Status = "DONE"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"

	// StatusApproved is a legacy alias for ACCEPTED still sent by old
	// clients. Normalize before comparing or storing.
	StatusApproved Status = "APPROVED"
)

// Normalize maps legacy aliases onto the canonical status set.
func Normalize(s Status) Status {
	if s == StatusApproved {
		return StatusAccepted
	}
	return s
}

// Known reports whether s is a recognized status (after normalization).
func (s Status) Known() bool {
	switch Normalize(s) {
	case StatusPending, StatusScheduled, StatusDone, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Editable statuses may be moved, resized or deleted.
func (s Status) Editable() bool {
	switch Normalize(s) {
	case StatusPending, StatusScheduled:
		return true
	}
	return false
}

// Locked statuses are immutable: no time mutation, no deletion.
func (s Status) Locked() bool {
	switch Normalize(s) {
	case StatusDone, StatusAccepted:
		return true
	}
	return false
}

// Terminal statuses end the booking's lifecycle.
func (s Status) Terminal() bool {
	return s.Locked() || Normalize(s) == StatusRejected
}

// resultTransitions lists the status changes the result-recording action
// may perform. Time mutation is governed separately by Editable.
var resultTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusScheduled: true,
		StatusDone:      true,
		StatusAccepted:  true,
		StatusRejected:  true,
	},
	StatusScheduled: {
		StatusDone:     true,
		StatusAccepted: true,
		StatusRejected: true,
	},
	StatusDone: {
		StatusAccepted: true,
		StatusRejected: true,
	},
}

// CanTransition reports whether a result-recording action may move a
// booking from one status to another. Both sides are normalized.
func CanTransition(from, to Status) bool {
	return resultTransitions[Normalize(from)][Normalize(to)]
}
