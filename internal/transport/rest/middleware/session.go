package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"bimillog/internal/backend"
	"bimillog/internal/model"
	"bimillog/internal/service"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionId"
)

// SessionMiddleware identifies the browser session and prepares the request
// context for backend calls.
type SessionMiddleware struct {
	sessions   *service.SessionService
	cookieName string
	secure     bool
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions *service.SessionService, cookieName string, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Session reads the signed session cookie, minting a new session when it is
// missing or invalid. The browser's other cookies are forwarded to the
// backend, and a sink collects what the backend sets.
func (m *SessionMiddleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(m.cookieName); err == nil {
			if claims, err := m.sessions.Validate(c.Value); err == nil {
				sid = claims.SessionID
			}
		}
		if sid == "" {
			newSID, token, err := m.sessions.Issue()
			if err != nil {
				fail(w, http.StatusInternalServerError, "could not start a session")
				return
			}
			sid = newSID
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.sessions.MaxAge().Seconds()),
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		forward := make([]*http.Cookie, 0, len(r.Cookies()))
		for _, c := range r.Cookies() {
			if c.Name != m.cookieName {
				forward = append(forward, c)
			}
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sid)
		ctx = backend.WithCookies(ctx, forward)
		ctx, _ = backend.WithCookieSink(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(SessionIDKey).(string); ok {
		return v
	}
	return ""
}

// RequireAdmin rejects sessions whose cached member is not an admin.
func RequireAdmin(admin *service.AdminService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := admin.RequireAdmin(r.Context(), GetSessionID(r.Context()))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, service.ErrNotSignedIn):
				fail(w, http.StatusUnauthorized, "not signed in")
			default:
				fail(w, http.StatusForbidden, "admin role required")
			}
		})
	}
}

// fail answers with a failed Result before any handler runs.
func fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.Fail[struct{}](msg))
}
