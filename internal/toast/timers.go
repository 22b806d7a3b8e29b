package toast

import (
	"sync"
	"time"
)

// Timers owns the auto-dismiss timers of one Store
type Timers struct {
	store   *Store
	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
	after   func(time.Duration, func()) *time.Timer
}

// NewTimers creates a timer owner for store.
func NewTimers(store *Store) *Timers {
	return &Timers{
		store:   store,
		pending: make(map[string]*time.Timer),
		after:   time.AfterFunc,
	}
}

// Schedule arms the auto-dismiss timer for t. Toasts with duration 0 are
// left alone. Scheduling the same id twice replaces the earlier timer.
func (tm *Timers) Schedule(t Toast) {
	d := t.Duration()
	if d <= 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.stopped {
		return
	}
	if old, ok := tm.pending[t.ID]; ok {
		old.Stop()
	}

	id := t.ID
	tm.pending[id] = tm.after(d, func() {
		tm.mu.Lock()
		delete(tm.pending, id)
		stopped := tm.stopped
		tm.mu.Unlock()
		if !stopped {
			tm.store.Remove(id)
		}
	})
}

// Cancel stops the timer for id, if any.
func (tm *Timers) Cancel(id string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if timer, ok := tm.pending[id]; ok {
		timer.Stop()
		delete(tm.pending, id)
	}
}

// Pending is the number of armed timers.
func (tm *Timers) Pending() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.pending)
}

// Stop cancels every timer. Later Schedule calls are ignored.
func (tm *Timers) Stop() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.stopped = true
	for id, timer := range tm.pending {
		timer.Stop()
		delete(tm.pending, id)
	}
}
