package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bimillog/internal/backend"
	"bimillog/internal/cache"
	"bimillog/internal/model"
	"bimillog/internal/session"
	"bimillog/internal/toast"

	"github.com/stretchr/testify/require"
)

// fakeBackend records calls and answers from per-route handlers.
type fakeBackend struct {
	mu     sync.Mutex
	calls  map[string]int
	routes map[string]http.HandlerFunc
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}, routes: map[string]http.HandlerFunc{}}
}

func (f *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	f.routes[method+" "+path] = h
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[key]++
	f.mu.Unlock()
	if h, ok := f.routes[key]; ok {
		h(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type fixture struct {
	backend  *fakeBackend
	deps     Deps
	sessions *SessionService
	toasts   *toast.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	api, err := backend.New(backend.Config{
		BaseURL:        srv.URL,
		RetryBaseDelay: time.Millisecond,
		RetryMaxDelay:  time.Millisecond,
	})
	require.NoError(t, err)

	toasts := toast.NewRegistry(nil)
	t.Cleanup(toasts.Close)

	return &fixture{
		backend: fb,
		deps: Deps{
			API: api,
			Query: cache.NewQuery(cache.QueryConfig{
				Cache:      cache.NewMemoryQueryCache(time.Hour),
				StaleTime:  time.Minute,
				ServeStale: transient,
			}),
			Toasts: toasts,
		},
		sessions: NewSessionService("test-secret", time.Hour, session.NewMemoryStore(), nil),
		toasts:   toasts,
	}
}

func (f *fixture) signIn(t *testing.T, sid string, member *model.Member) {
	t.Helper()
	require.NoError(t, f.sessions.Manager(sid).SaveMember(context.Background(), member))
}

func lastToast(t *testing.T, toasts *toast.Registry, sid string) toast.Toast {
	t.Helper()
	list := toasts.List(sid)
	require.NotEmpty(t, list)
	return list[len(list)-1]
}
