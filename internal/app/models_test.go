package app

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"interview-scheduler/internal/schedule"
)

func TestColorForStatus(t *testing.T) {
	tests := []struct {
		status schedule.Status
		want   string
	}{
		{schedule.StatusScheduled, "#1890ff"},
		{schedule.StatusPending, "#faad14"},
		{schedule.StatusDone, "#52c41a"},
		{schedule.StatusAccepted, "#722ed1"},
		{schedule.StatusApproved, "#722ed1"}, // legacy alias shares the accepted color
		{schedule.StatusRejected, "#ff4d4f"},
		{schedule.Status("???"), "#d9d9d9"},
	}
	for _, tt := range tests {
		if got := colorForStatus(tt.status); got != tt.want {
			t.Errorf("colorForStatus(%s) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestParseTimeParam(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatal(err)
	}
	a := &App{Loc: loc}

	got, err := a.parseTimeParam("2025-03-01T09:30:00")
	if err != nil {
		t.Fatalf("parseTimeParam() error = %v", err)
	}
	want := time.Date(2025, 3, 1, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("parseTimeParam() = %v, want %v", got, want)
	}

	if _, err := a.parseTimeParam("01/03/2025 09:30"); err == nil {
		t.Error("parseTimeParam() accepted a malformed timestamp")
	}
}

func TestBookingConversion(t *testing.T) {
	s := Schedule{
		ID:            "s1",
		ApplicationID: 5,
		ApplicantName: "Nguyen Van A",
		JobTitle:      "Math Teacher",
		StartTime:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:        "SCHEDULED",
	}
	b := s.booking()
	if b.ID != s.ID || b.ApplicationID != s.ApplicationID || b.Status != schedule.StatusScheduled {
		t.Errorf("booking() = %+v", b)
	}
	if !b.StartTime.Equal(s.StartTime) || !b.EndTime.Equal(s.EndTime) {
		t.Errorf("booking() times = %v-%v", b.StartTime, b.EndTime)
	}
}

func TestScheduleTimestampsAlwaysSerialized(t *testing.T) {
	b, err := json.Marshal(Schedule{ID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"createdAt"`, `"updatedAt"`} {
		if !strings.Contains(string(b), field) {
			t.Errorf("marshaled schedule misses %s: %s", field, b)
		}
	}
}
