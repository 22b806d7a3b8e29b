package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"testing"
	"time"

	"bimillog/internal/backend"
	"bimillog/internal/cache"
	"bimillog/internal/model"
	"bimillog/internal/service"
	"bimillog/internal/session"
	"bimillog/internal/toast"
	"bimillog/internal/transport/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	srv    *httptest.Server
	client *http.Client
	toasts *toast.Registry
}

func newTestServer(t *testing.T, api http.Handler) *testServer {
	t.Helper()
	upstream := httptest.NewServer(api)
	t.Cleanup(upstream.Close)

	client, err := backend.New(backend.Config{
		BaseURL:        upstream.URL,
		RetryBaseDelay: time.Millisecond,
		RetryMaxDelay:  time.Millisecond,
	})
	require.NoError(t, err)

	hub := ws.NewHub(nil)
	t.Cleanup(hub.Close)
	toasts := toast.NewRegistry(hub)
	t.Cleanup(toasts.Close)

	deps := service.Deps{
		API: client,
		Query: cache.NewQuery(cache.QueryConfig{
			Cache:     cache.NewMemoryQueryCache(time.Hour),
			StaleTime: time.Minute,
		}),
		Toasts: toasts,
	}
	sessions := service.NewSessionService("test-secret", time.Hour, session.NewMemoryStore(), nil)

	router := NewRouter(&Container{
		Sessions:            sessions,
		AuthService:         service.NewAuthService(deps, sessions),
		PaperService:        service.NewPaperService(deps, sessions),
		BoardService:        service.NewBoardService(deps),
		FriendService:       service.NewFriendService(deps),
		MemberService:       service.NewMemberService(deps, sessions),
		NotificationService: service.NewNotificationService(deps),
		PreferenceService:   service.NewPreferenceService(cache.NewMemoryPreferenceCache(), nil),
		AdminService:        service.NewAdminService(deps, sessions, nil),
		ErrorReporter:       service.NewErrorReporter(nil, nil),
		Toasts:              toasts,
		WSHub:               hub,
		SessionCookie:       "bimillog_sid",
		AllowedOrigins:      "http://localhost:3000",
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{srv: srv, client: &http.Client{Jar: jar}, toasts: toasts}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, result) {
	t.Helper()
	req, err := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var res result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp, res
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "bimillog_sid" {
			return c
		}
	}
	return nil
}

func TestSessionCookieIsMintedOnce(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	resp, res := s.do(t, "GET", "/v1/auth/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, res.Success)
	assert.JSONEq(t, `{"authenticated":false}`, string(res.Data))

	c := sessionCookie(resp)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)

	resp, _ = s.do(t, "GET", "/v1/auth/status", "")
	assert.Nil(t, sessionCookie(resp), "valid session cookie must be reused")
}

func TestLoginRelaysBackendCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: backend.AccessCookie, Value: "access-1", Path: "/", Domain: "api.bimillog.site", HttpOnly: true, MaxAge: 3600})
		http.SetCookie(w, &http.Cookie{Name: backend.XSRFCookie, Value: "xsrf-1", Path: "/"})
		w.Write([]byte(`{"status":"EXISTING_USER"}`))
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(backend.AccessCookie)
		if err != nil || c.Value != "access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"memberId":1,"memberName":"alice","role":"USER"}`))
	})
	s := newTestServer(t, mux)

	resp, res := s.do(t, "POST", "/v1/auth/login", `{"provider":"kakao","code":"abc"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, res.Error)
	require.True(t, res.Success)

	var relayed *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == backend.AccessCookie {
			relayed = c
		}
	}
	require.NotNil(t, relayed)
	assert.Equal(t, "access-1", relayed.Value)
	assert.Empty(t, relayed.Domain)

	_, res = s.do(t, "GET", "/v1/auth/status", "")
	var status model.AuthStatus
	require.NoError(t, json.Unmarshal(res.Data, &status))
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.Member)
	assert.Equal(t, "alice", status.Member.MemberName)
}

func TestValidationFailureIsBadRequestWithToast(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	resp, res := s.do(t, "POST", "/v1/paper/alice", `{"decoType":"STAR","anonymity":"bob","content":"hi","x":0,"y":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.Data)

	_, res = s.do(t, "GET", "/v1/toasts", "")
	var toasts []toast.Toast
	require.NoError(t, json.Unmarshal(res.Data, &toasts))
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.Error, toasts[0].Type)

	resp, res = s.do(t, "DELETE", "/v1/toasts/"+toasts[0].ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"removed":true}`, string(res.Data))
}

func TestBackendStatusIsPassedThrough(t *testing.T) {
	s := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such member"}`))
	}))

	resp, res := s.do(t, "GET", "/v1/paper/nobody", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, res.Success)
}

func TestGridCoords(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	_, res := s.do(t, "GET", "/v1/paper/grid/coords?page=1&gridX=0&gridY=2", "")
	require.True(t, res.Success, res.Error)
	assert.JSONEq(t, `{"x":7,"y":3}`, string(res.Data))

	_, res = s.do(t, "GET", "/v1/paper/grid/coords?page=2&gridX=1&gridY=0&mobile=true", "")
	require.True(t, res.Success, res.Error)
	assert.JSONEq(t, `{"x":10,"y":1}`, string(res.Data))

	resp, res := s.do(t, "GET", "/v1/paper/grid/coords?page=2&gridX=0&gridY=0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, res.Success)

	resp, _ = s.do(t, "GET", "/v1/paper/grid/coords?page=0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVisitGridLaysOutPages(t *testing.T) {
	s := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/paper/alice", r.URL.Path)
		w.Write([]byte(`[{"id":1,"decoType":"STAR","x":7,"y":2}]`))
	}))

	_, res := s.do(t, "GET", "/v1/paper/grid?memberName=alice", "")
	require.True(t, res.Success, res.Error)
	var grid struct {
		TotalPages int                       `json:"totalPages"`
		Pages      [][][]*model.VisitMessage `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &grid))
	assert.Equal(t, 2, grid.TotalPages)
	require.NotNil(t, grid.Pages[1][1][0])
	assert.Equal(t, int64(1), grid.Pages[1][1][0].ID)
}

func TestAdminRoutesNeedAdmin(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	resp, res := s.do(t, "GET", "/v1/admin/reports", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.False(t, res.Success)
	assert.Equal(t, "not signed in", res.Error)
}

func TestThemePreference(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	_, res := s.do(t, "GET", "/v1/preferences/theme", "")
	assert.JSONEq(t, `{"theme":"system"}`, string(res.Data))

	_, res = s.do(t, "PUT", "/v1/preferences/theme", `{"theme":"dark"}`)
	require.True(t, res.Success, res.Error)

	_, res = s.do(t, "GET", "/v1/preferences/theme", "")
	assert.JSONEq(t, `{"theme":"dark"}`, string(res.Data))

	resp, _ := s.do(t, "PUT", "/v1/preferences/theme", `{"theme":"neon"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorReportIsAccepted(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	resp, res := s.do(t, "POST", "/v1/errors", `{"message":"TypeError: x is undefined","level":"error"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.True(t, res.Success)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Data, &body))
	assert.NotEmpty(t, body["id"])

	resp, _ = s.do(t, "POST", "/v1/errors", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	req, err := http.NewRequest("OPTIONS", s.srv.URL+"/v1/posts", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-XSRF-TOKEN")

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())
	resp, err := http.Get(s.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
