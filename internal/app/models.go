package app

import (
	"time"

	"interview-scheduler/internal/schedule"
)

// Schedule is the interview booking as stored and served. Field names
// match what the calendar client binds to.
type Schedule struct {
	ID            string    `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	ApplicantName string    `json:"applicantName"`
	JobTitle      string    `json:"jobTitle"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	Result        string    `json:"result,omitempty"`
	Color         string    `json:"color,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (s Schedule) booking() schedule.Booking {
	return schedule.Booking{
		ID:            s.ID,
		ApplicationID: s.ApplicationID,
		ApplicantName: s.ApplicantName,
		JobTitle:      s.JobTitle,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        schedule.Status(s.Status),
	}
}

func bookings(schedules []Schedule) []schedule.Booking {
	out := make([]schedule.Booking, len(schedules))
	for i, s := range schedules {
		out[i] = s.booking()
	}
	return out
}

// colorForStatus keys the calendar display color off the booking status.
func colorForStatus(s schedule.Status) string {
	switch schedule.Normalize(s) {
	case schedule.StatusScheduled:
		return "#1890ff"
	case schedule.StatusPending:
		return "#faad14"
	case schedule.StatusDone:
		return "#52c41a"
	case schedule.StatusAccepted:
		return "#722ed1"
	case schedule.StatusRejected:
		return "#ff4d4f"
	default:
		return "#d9d9d9"
	}
}

// Application is a recruitment application a booking points at.
type Application struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	JobTitle  string    `json:"jobTitle"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	applicationPending  = "PENDING"
	applicationApproved = "APPROVED"
	applicationRejected = "REJECTED"
)
