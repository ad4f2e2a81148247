package schedule

import (
	"testing"
	"time"
)

func TestCreateGuard(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := base
	g := NewCreateGuard(2*time.Second, func() time.Time { return now })

	if err := g.Begin(5); err != nil {
		t.Fatalf("first Begin() error = %v", err)
	}

	// duplicate while in flight
	assertCode(t, g.Begin(5), CodeDuplicateRequest)

	// other applications are independent
	if err := g.Begin(6); err != nil {
		t.Errorf("Begin(6) error = %v", err)
	}
	g.End(6)

	g.End(5)

	// still inside the debounce window
	now = base.Add(time.Second)
	assertCode(t, g.Begin(5), CodeDuplicateRequest)

	// window elapsed
	now = base.Add(2 * time.Second)
	if err := g.Begin(5); err != nil {
		t.Errorf("Begin() after window error = %v", err)
	}
	g.End(5)
}
