package schedule

import "time"

// Booking pairs a recruitment application with an interview time slot.
type Booking struct {
	ID            string
	ApplicationID int64
	ApplicantName string
	JobTitle      string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
}

func (b Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// OnDay reports whether the booking starts on the same calendar day as t.
func (b Booking) OnDay(t time.Time) bool {
	y1, m1, d1 := b.StartTime.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
