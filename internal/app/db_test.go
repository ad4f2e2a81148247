package app

import (
	"errors"
	"testing"

	"interview-scheduler/internal/schedule"
)

func assertImmutable(t *testing.T, err error) {
	t.Helper()
	var verr *schedule.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if verr.Code != schedule.CodeImmutableStatus {
		t.Errorf("code = %s, want %s", verr.Code, schedule.CodeImmutableStatus)
	}
}

// guardEditable runs on the row read FOR UPDATE, so a booking locked by a
// concurrent result record cannot be moved or deleted on the strength of
// the handler's stale snapshot.
func TestGuardEditable(t *testing.T) {
	tests := []struct {
		status string
		locked bool
	}{
		{status: "PENDING"},
		{status: "SCHEDULED"},
		{status: "DONE", locked: true},
		{status: "ACCEPTED", locked: true},
		{status: "APPROVED", locked: true}, // legacy alias
		{status: "REJECTED", locked: true},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			err := guardEditable(Schedule{ID: "s1", Status: tt.status})
			if !tt.locked {
				if err != nil {
					t.Errorf("guardEditable() error = %v", err)
				}
				return
			}
			assertImmutable(t, err)
		})
	}
}

func TestGuardTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    schedule.Status
		wantErr bool
	}{
		{name: "scheduled to done", current: "SCHEDULED", next: schedule.StatusDone},
		{name: "done to accepted", current: "DONE", next: schedule.StatusAccepted},
		{name: "done already recorded twice", current: "DONE", next: schedule.StatusDone, wantErr: true},
		{name: "accepted is final", current: "ACCEPTED", next: schedule.StatusDone, wantErr: true},
		{name: "rejected is final", current: "REJECTED", next: schedule.StatusDone, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guardTransition(Schedule{ID: "s1", Status: tt.current}, tt.next)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("guardTransition() error = %v", err)
				}
				return
			}
			assertImmutable(t, err)
		})
	}
}
