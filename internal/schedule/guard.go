package schedule

import (
	"sync"
	"time"
)

// CreateGuard rejects duplicate create requests for the same application:
// a second request while the first is still in flight, or within the
// debounce window after the last accepted one. The clock is injected so
// tests control time.
type CreateGuard struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	inflight map[int64]struct{}
	last     map[int64]time.Time
}

func NewCreateGuard(window time.Duration, now func() time.Time) *CreateGuard {
	if now == nil {
		now = time.Now
	}
	return &CreateGuard{
		window:   window,
		now:      now,
		inflight: make(map[int64]struct{}),
		last:     make(map[int64]time.Time),
	}
}

// Begin claims the application for a create request. Callers must pair a
// successful Begin with End once the request settles.
func (g *CreateGuard) Begin(applicationID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[applicationID]; busy {
		return newErr(CodeDuplicateRequest, "a request for application %d is already in flight", applicationID)
	}
	now := g.now()
	if last, ok := g.last[applicationID]; ok && now.Sub(last) < g.window {
		return newErr(CodeDuplicateRequest, "please wait before retrying for application %d", applicationID)
	}
	g.inflight[applicationID] = struct{}{}
	g.last[applicationID] = now
	return nil
}

// End releases the in-flight claim. The debounce window keeps applying
// from the time Begin accepted the request.
func (g *CreateGuard) End(applicationID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, applicationID)
}
