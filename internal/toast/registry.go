package toast

import "sync"

// Broadcaster pushes toast events to the browser session they belong to
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
}

type entry struct {
	store  *Store
	timers *Timers
	// pushing counts Push calls in flight; guarded by Registry.mu.
	pushing int
}

// Registry keeps one toast store per browser session
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	broadcaster Broadcaster
}

// NewRegistry creates a registry. broadcaster may be nil.
func NewRegistry(broadcaster Broadcaster) *Registry {
	return &Registry{
		sessions:    make(map[string]*entry),
		broadcaster: broadcaster,
	}
}

// SetBroadcaster installs the push channel after construction.
func (r *Registry) SetBroadcaster(b Broadcaster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcaster = b
}

func (r *Registry) get(sessionID string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionID]
}

// acquire returns the session's entry, creating it, and holds it against
// Prune until release.
func (r *Registry) acquire(sessionID string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sessionID]
	if !ok {
		store := NewStore(func(ev Event) { r.publish(sessionID, ev) })
		e = &entry{store: store, timers: NewTimers(store)}
		r.sessions[sessionID] = e
	}
	e.pushing++
	return e
}

func (r *Registry) release(e *entry) {
	r.mu.Lock()
	e.pushing--
	r.mu.Unlock()
}

func (r *Registry) publish(sessionID string, ev Event) {
	r.mu.Lock()
	b := r.broadcaster
	r.mu.Unlock()
	if b != nil {
		b.BroadcastToSession(sessionID, string(ev.Kind), ev.Toast)
	}
}

// Push adds a toast to a session and arms its auto-dismiss timer. A push
// racing Drop lands in the dropped store and does not bring it back.
func (r *Registry) Push(sessionID string, typ Type, title string, opts ...Option) Toast {
	e := r.acquire(sessionID)
	defer r.release(e)
	t := e.store.Add(typ, title, opts...)
	e.timers.Schedule(t)
	return t
}

// Remove dismisses a toast by hand.
func (r *Registry) Remove(sessionID, id string) bool {
	e := r.get(sessionID)
	if e == nil {
		return false
	}
	e.timers.Cancel(id)
	return e.store.Remove(id)
}

// List returns a session's visible toasts, oldest first.
func (r *Registry) List(sessionID string) []Toast {
	e := r.get(sessionID)
	if e == nil {
		return []Toast{}
	}
	return e.store.List()
}

// Drop forgets a session and stops its timers.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	e, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	if ok {
		e.timers.Stop()
	}
}

// Prune drops sessions that have no visible toast, no pending timer and no
// push in flight. It returns how many were dropped.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if e.pushing == 0 && e.store.Len() == 0 && e.timers.Pending() == 0 {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Sessions is the number of tracked sessions.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops every timer of every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range sessions {
		e.timers.Stop()
	}
}
