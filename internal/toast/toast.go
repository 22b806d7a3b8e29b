// Package toast holds per-session toast queues.
//
// A toast is visible from the moment it is added until it is removed, either
// explicitly or by its auto-dismiss timer. Timers belong to Timers, not to the
// Store, mirroring the split between a queue and whoever displays it.
package toast

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is the toast severity
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

// ParseType accepts the four toast types, case-insensitively.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(s)); t {
	case Success, Error, Warning, Info:
		return t, nil
	}
	return "", fmt.Errorf("toast: unknown type %q", s)
}

// DefaultDuration is how long a toast of type t stays up when no duration is given.
func DefaultDuration(t Type) time.Duration {
	switch t {
	case Success:
		return 3 * time.Second
	case Error:
		return 5 * time.Second
	default:
		return 4 * time.Second
	}
}

// Toast is one notification. Duration 0 means it stays until removed.
type Toast struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DurationMS  int64  `json:"duration"`
}

// Duration returns the auto-dismiss delay.
func (t Toast) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Option customises a toast on Add
type Option func(*Toast)

// WithDescription sets the secondary text.
func WithDescription(desc string) Option {
	return func(t *Toast) { t.Description = desc }
}

// WithDuration overrides the default duration; 0 disables auto-dismiss.
func WithDuration(d time.Duration) Option {
	return func(t *Toast) { t.DurationMS = d.Milliseconds() }
}

// EventKind tells observers what changed
type EventKind string

const (
	EventAdded   EventKind = "toast_added"
	EventRemoved EventKind = "toast_removed"
)

// Event is passed to a Store's observer after each change
type Event struct {
	Kind  EventKind `json:"kind"`
	Toast Toast     `json:"toast"`
}

// Store is an insertion-ordered toast list
type Store struct {
	mu       sync.Mutex
	toasts   []Toast
	onChange func(Event)
	newID    func() string
}

// NewStore creates an empty store. onChange may be nil; it is called
// outside the store lock.
func NewStore(onChange func(Event)) *Store {
	return &Store{
		onChange: onChange,
		newID:    func() string { return uuid.New().String() },
	}
}

// Add appends a visible toast and returns it.
func (s *Store) Add(typ Type, title string, opts ...Option) Toast {
	t := Toast{
		Type:       typ,
		Title:      title,
		DurationMS: DefaultDuration(typ).Milliseconds(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	if t.DurationMS < 0 {
		t.DurationMS = 0
	}

	s.mu.Lock()
	t.ID = s.newID()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()

	s.notify(Event{Kind: EventAdded, Toast: t})
	return t
}

func (s *Store) Success(title string, opts ...Option) Toast { return s.Add(Success, title, opts...) }
func (s *Store) Error(title string, opts ...Option) Toast   { return s.Add(Error, title, opts...) }
func (s *Store) Warning(title string, opts ...Option) Toast { return s.Add(Warning, title, opts...) }
func (s *Store) Info(title string, opts ...Option) Toast    { return s.Add(Info, title, opts...) }

// Remove deletes the toast with id. It reports whether it was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, t := range s.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.toasts[idx]
	s.toasts = append(s.toasts[:idx], s.toasts[idx+1:]...)
	s.mu.Unlock()

	s.notify(Event{Kind: EventRemoved, Toast: removed})
	return true
}

// List returns a copy of the visible toasts, oldest first.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Toast(nil), s.toasts...)
}

// Len is the number of visible toasts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Clear removes every toast, notifying for each.
func (s *Store) Clear() {
	s.mu.Lock()
	cleared := s.toasts
	s.toasts = nil
	s.mu.Unlock()

	for _, t := range cleared {
		s.notify(Event{Kind: EventRemoved, Toast: t})
	}
}

func (s *Store) notify(e Event) {
	if s.onChange != nil {
		s.onChange(e)
	}
}
