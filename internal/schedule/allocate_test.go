package schedule

import (
	"testing"
	"time"
)

func TestNextFreeHourSlot(t *testing.T) {
	day := ts(t, "2025-03-01T00:00")

	booked := func(app int64, start, end string, status Status) Booking {
		return Booking{
			ID:            start,
			ApplicationID: app,
			StartTime:     ts(t, start),
			EndTime:       ts(t, end),
			Status:        status,
		}
	}

	tests := []struct {
		name     string
		existing []Booking
		wantHour int
		wantOK   bool
	}{
		{
			name:     "empty day gives first business hour",
			wantHour: 8,
			wantOK:   true,
		},
		{
			name: "skips occupied leading hours",
			existing: []Booking{
				booked(1, "2025-03-01T08:00", "2025-03-01T09:00", StatusScheduled),
				booked(2, "2025-03-01T09:00", "2025-03-01T10:00", StatusPending),
			},
			wantHour: 10,
			wantOK:   true,
		},
		{
			name: "done bookings do not occupy their slot",
			existing: []Booking{
				booked(1, "2025-03-01T08:00", "2025-03-01T09:00", StatusDone),
			},
			wantHour: 8,
			wantOK:   true,
		},
		{
			name: "other days are ignored",
			existing: []Booking{
				booked(1, "2025-03-02T08:00", "2025-03-02T09:00", StatusScheduled),
			},
			wantHour: 8,
			wantOK:   true,
		},
		{
			name: "full day",
			existing: []Booking{
				booked(1, "2025-03-01T08:00", "2025-03-01T17:00", StatusScheduled),
			},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := NextFreeHourSlot(day, tt.existing, 8, 16)
			if ok != tt.wantOK {
				t.Fatalf("NextFreeHourSlot() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if slot.Start.Hour() != tt.wantHour {
				t.Errorf("slot starts at %d:00, want %d:00", slot.Start.Hour(), tt.wantHour)
			}
			if slot.Duration() != time.Hour {
				t.Errorf("slot duration = %v, want 1h", slot.Duration())
			}
		})
	}
}

func TestAllocateSlotPreconditions(t *testing.T) {
	rules := DefaultRules()
	now := ts(t, "2025-03-01T12:00")

	existing := []Booking{{
		ID:            "b1",
		ApplicationID: 7,
		StartTime:     ts(t, "2025-03-03T09:00"),
		EndTime:       ts(t, "2025-03-03T10:00"),
		Status:        StatusScheduled,
	}}

	t.Run("past day rejected", func(t *testing.T) {
		_, err := rules.AllocateSlot(ts(t, "2025-02-28T00:00"), 9, nil, now)
		assertCode(t, err, CodePastTime)
	})

	t.Run("today is allowed", func(t *testing.T) {
		if _, err := rules.AllocateSlot(ts(t, "2025-03-01T00:00"), 9, nil, now); err != nil {
			t.Errorf("AllocateSlot() error = %v", err)
		}
	})

	t.Run("one booking per application across days", func(t *testing.T) {
		_, err := rules.AllocateSlot(ts(t, "2025-03-05T00:00"), 7, existing, now)
		assertCode(t, err, CodeAlreadyScheduled)
	})

	t.Run("terminal booking does not block a new one", func(t *testing.T) {
		done := existing
		done[0].Status = StatusDone
		if _, err := rules.AllocateSlot(ts(t, "2025-03-05T00:00"), 7, done, now); err != nil {
			t.Errorf("AllocateSlot() error = %v", err)
		}
		done[0].Status = StatusScheduled
	})

	t.Run("own accepted booking does not block its hour", func(t *testing.T) {
		accepted := []Booking{{
			ID:            "b3",
			ApplicationID: 7,
			StartTime:     ts(t, "2025-03-05T08:00"),
			EndTime:       ts(t, "2025-03-05T09:00"),
			Status:        StatusAccepted,
		}}
		slot, err := rules.AllocateSlot(ts(t, "2025-03-05T00:00"), 7, accepted, now)
		if err != nil {
			t.Fatalf("AllocateSlot() error = %v", err)
		}
		if slot.Start.Hour() != 8 {
			t.Errorf("slot starts at %d:00, want 8:00", slot.Start.Hour())
		}
		// another applicant still sees the hour as taken
		slot, err = rules.AllocateSlot(ts(t, "2025-03-05T00:00"), 9, accepted, now)
		if err != nil {
			t.Fatalf("AllocateSlot() error = %v", err)
		}
		if slot.Start.Hour() != 9 {
			t.Errorf("slot starts at %d:00, want 9:00", slot.Start.Hour())
		}
	})

	t.Run("full day reported", func(t *testing.T) {
		full := []Booking{{
			ID:            "b2",
			ApplicationID: 8,
			StartTime:     ts(t, "2025-03-05T08:00"),
			EndTime:       ts(t, "2025-03-05T17:00"),
			Status:        StatusScheduled,
		}}
		_, err := rules.AllocateSlot(ts(t, "2025-03-05T00:00"), 9, full, now)
		assertCode(t, err, CodeNoFreeSlot)
	})
}
