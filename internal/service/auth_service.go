package service

import (
	"context"
	"net/http"
	"time"

	"bimillog/internal/backend"
	"bimillog/internal/cache"
	"bimillog/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// LoginStatusNewUser is returned by the backend when a social account has no
// member yet; the browser continues with the sign-up form.
const LoginStatusNewUser = "NEW_USER"

// AuthService signs browser sessions in and out of the backend
type AuthService struct {
	actions
	sessions *SessionService
	now      func() time.Time
}

func NewAuthService(d Deps, sessions *SessionService) *AuthService {
	return &AuthService{
		actions:  newActions(d, "auth"),
		sessions: sessions,
		now:      time.Now,
	}
}

// Login exchanges a social code for backend cookies, caches the access token
// envelope and, for existing members, the member snapshot. ctx must carry a
// backend cookie sink.
func (s *AuthService) Login(ctx context.Context, sessionID string, req model.LoginRequest) (*model.LoginResult, error) {
	res, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, s.fail(sessionID, "Sign-in failed", err)
	}

	mgr := s.sessions.Manager(sessionID)
	cookies := backend.CookiesFrom(ctx)
	if sink := backend.SinkFrom(ctx); sink != nil {
		if env := s.envelopeFrom(sink); env != nil {
			if err := mgr.SaveTokens(ctx, *env); err != nil {
				s.log.Warn("failed to cache tokens", "session", sessionID, "error", err)
			}
		}
		cookies = mergeCookies(cookies, sink.Cookies())
	}
	s.invalidate(ctx, sessionID+":")

	if res.Status == LoginStatusNewUser {
		return res, nil
	}

	member, err := s.api.Me(backend.WithCookies(ctx, cookies))
	if err != nil {
		s.log.Warn("failed to load member after login", "session", sessionID, "error", err)
		return res, nil
	}
	if err := mgr.SaveMember(ctx, member); err != nil {
		s.log.Warn("failed to cache member", "session", sessionID, "error", err)
	}
	s.succeed(sessionID, "Signed in as "+member.MemberName)
	return res, nil
}

// Logout ends the backend session. Local session data is cleared even when
// the backend call fails.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	apiErr := s.api.Logout(ctx)
	if err := s.sessions.Forget(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear session", "session", sessionID, "error", err)
	}
	s.invalidate(ctx, sessionID+":")
	if apiErr != nil && !backend.IsUnauthorized(apiErr) {
		return s.fail(sessionID, "Sign-out failed", apiErr)
	}
	s.succeed(sessionID, "Signed out")
	return nil
}

// Me returns the signed-in member. A 401 from the backend clears the
// session's cached auth state.
func (s *AuthService) Me(ctx context.Context, sessionID string) (*model.Member, error) {
	member, err := cache.Fetch(ctx, s.query, cache.Key(sessionID, "me"), func(ctx context.Context) (*model.Member, error) {
		return s.api.Me(ctx)
	})
	mgr := s.sessions.Manager(sessionID)
	if backend.IsUnauthorized(err) {
		if err := mgr.Clear(ctx); err != nil {
			s.log.Warn("failed to clear session", "session", sessionID, "error", err)
		}
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	if err := mgr.SaveMember(ctx, member); err != nil {
		s.log.Warn("failed to cache member", "session", sessionID, "error", err)
	}
	return member, nil
}

// Status reports the cached auth state without calling the backend.
func (s *AuthService) Status(ctx context.Context, sessionID string) model.AuthStatus {
	mgr := s.sessions.Manager(sessionID)
	env := mgr.GetTokens(ctx)
	member, err := mgr.Member(ctx)
	if err != nil {
		s.log.Warn("failed to read member", "session", sessionID, "error", err)
	}

	status := model.AuthStatus{Authenticated: env != nil, Member: member}
	if at, ok := env.ExpiresAt(); ok {
		status.TokenExpiresAt = &at
	}
	return status
}

// envelopeFrom builds a token envelope from the backend's login cookies.
// The lifetime comes from the access token's exp claim, or the cookie's
// Max-Age; when neither is known expiresIn stays unset.
func (s *AuthService) envelopeFrom(sink *backend.CookieSink) *model.TokenEnvelope {
	access := sink.Get(backend.AccessCookie)
	if access == nil || access.Value == "" {
		return nil
	}
	env := &model.TokenEnvelope{AccessToken: access.Value}
	if refresh := sink.Get(backend.RefreshCookie); refresh != nil {
		env.RefreshToken = refresh.Value
	}

	if secs, ok := TokenLifetime(access.Value, s.now()); ok {
		env.ExpiresIn = &secs
	} else if access.MaxAge > 0 {
		secs := int64(access.MaxAge)
		env.ExpiresIn = &secs
	}
	return env
}

// TokenLifetime reads the exp claim of a JWT without verifying it; the
// backend signed it and remains the authority.
func TokenLifetime(token string, now time.Time) (int64, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	secs := int64(exp.Sub(now) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs, true
}

// mergeCookies overlays fresh cookies on the ones the request came with.
func mergeCookies(base, fresh []*http.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(base)+len(fresh))
	seen := make(map[string]bool, len(fresh))
	for i := len(fresh) - 1; i >= 0; i-- {
		if seen[fresh[i].Name] {
			continue
		}
		seen[fresh[i].Name] = true
		out = append(out, fresh[i])
	}
	for _, c := range base {
		if !seen[c.Name] {
			out = append(out, c)
		}
	}
	return out
}
