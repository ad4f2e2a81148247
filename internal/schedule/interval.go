package schedule

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval is non-degenerate.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// SameDay reports whether start and end fall on the same calendar day.
func (iv Interval) SameDay() bool {
	y1, m1, d1 := iv.Start.Date()
	y2, m2, d2 := iv.End.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SameDate reports whether both intervals start on the same calendar day.
func (iv Interval) SameDate(other Interval) bool {
	y1, m1, d1 := iv.Start.Date()
	y2, m2, d2 := other.Start.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps uses half-open semantics: touching intervals do not overlap.
// The exact-match case is covered by the general inequality.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}
