package schedule

import "time"

// NextFreeHourSlot finds the first free one-hour slot [h:00, h+1:00) on
// day, trying start hours from startHour to endHour inclusive. Only
// bookings starting on that day participate in the conflict check. The
// second return value is false when every hour in range is taken.
func NextFreeHourSlot(day time.Time, existing []Booking, startHour, endHour int) (Interval, bool) {
	sameDay := make([]Booking, 0, len(existing))
	for _, b := range existing {
		if b.OnDay(day) {
			sameDay = append(sameDay, b)
		}
	}

	year, month, dom := day.Date()
	for hour := startHour; hour <= endHour; hour++ {
		candidate := Interval{
			Start: time.Date(year, month, dom, hour, 0, 0, 0, day.Location()),
			End:   time.Date(year, month, dom, hour+1, 0, 0, 0, day.Location()),
		}
		if FindConflict(candidate, sameDay, 0, "") == nil {
			return candidate, true
		}
	}
	return Interval{}, false
}
