package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bimillog/internal/backend"
	"bimillog/internal/model"
	"bimillog/internal/toast"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedAccessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestLoginCachesTokensAndMember(t *testing.T) {
	f := newFixture(t)
	access := signedAccessToken(t, time.Now().Add(time.Hour))

	f.backend.handle("POST", "/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: backend.AccessCookie, Value: access, HttpOnly: true})
		http.SetCookie(w, &http.Cookie{Name: backend.RefreshCookie, Value: "refresh", HttpOnly: true})
		writeJSON(w, model.LoginResult{Status: "EXISTING_USER"})
	})
	f.backend.handle("GET", "/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(backend.AccessCookie)
		if err != nil || ck.Value != access {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, model.Member{MemberID: 1, MemberName: "alice", Role: model.RoleUser})
	})

	svc := NewAuthService(f.deps, f.sessions)
	ctx, _ := backend.WithCookieSink(context.Background())
	res, err := svc.Login(ctx, "sid-1", model.LoginRequest{Provider: model.ProviderKakao, Code: "c"})
	require.NoError(t, err)
	assert.Equal(t, "EXISTING_USER", res.Status)

	env := f.sessions.Manager("sid-1").GetTokens(context.Background())
	require.NotNil(t, env)
	assert.Equal(t, access, env.AccessToken)
	assert.Equal(t, "refresh", env.RefreshToken)
	require.NotNil(t, env.ExpiresIn)
	assert.InDelta(t, 3600, *env.ExpiresIn, 5)

	status := svc.Status(context.Background(), "sid-1")
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.Member)
	assert.Equal(t, "alice", status.Member.MemberName)
	assert.NotNil(t, status.TokenExpiresAt)

	assert.Equal(t, toast.Success, lastToast(t, f.toasts, "sid-1").Type)
}

func TestLoginNewUserSkipsMemberLookup(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("POST", "/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.LoginResult{Status: LoginStatusNewUser, UUID: "signup-uuid"})
	})

	svc := NewAuthService(f.deps, f.sessions)
	ctx, _ := backend.WithCookieSink(context.Background())
	res, err := svc.Login(ctx, "sid-1", model.LoginRequest{Provider: model.ProviderNaver, Code: "c"})
	require.NoError(t, err)
	assert.Equal(t, "signup-uuid", res.UUID)
	assert.Equal(t, 0, f.backend.count("GET", "/api/auth/me"))
	assert.False(t, svc.Status(context.Background(), "sid-1").Authenticated)
}

func TestLoginFailureToastsError(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("POST", "/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid code"}`))
	})

	svc := NewAuthService(f.deps, f.sessions)
	_, err := svc.Login(context.Background(), "sid-1", model.LoginRequest{Provider: model.ProviderGoogle, Code: "c"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	last := lastToast(t, f.toasts, "sid-1")
	assert.Equal(t, toast.Error, last.Type)
	assert.Equal(t, "invalid code", last.Description)
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("POST", "/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	f.signIn(t, "sid-1", &model.Member{MemberID: 1, MemberName: "alice"})
	require.NoError(t, f.sessions.Manager("sid-1").SaveTokens(context.Background(), model.TokenEnvelope{AccessToken: "a"}))

	svc := NewAuthService(f.deps, f.sessions)
	err := svc.Logout(context.Background(), "sid-1")
	require.Error(t, err)

	status := svc.Status(context.Background(), "sid-1")
	assert.False(t, status.Authenticated)
	assert.Nil(t, status.Member)
}

func TestMeUnauthorizedClearsSession(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("GET", "/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	f.signIn(t, "sid-1", &model.Member{MemberID: 1, MemberName: "alice"})

	svc := NewAuthService(f.deps, f.sessions)
	_, err := svc.Me(context.Background(), "sid-1")
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Nil(t, svc.Status(context.Background(), "sid-1").Member)
}

func TestTokenLifetime(t *testing.T) {
	now := time.Now()
	secs, ok := TokenLifetime(signedAccessToken(t, now.Add(90*time.Second)), now)
	require.True(t, ok)
	assert.InDelta(t, 90, secs, 1)

	secs, ok = TokenLifetime(signedAccessToken(t, now.Add(-time.Minute)), now)
	require.True(t, ok)
	assert.Equal(t, int64(0), secs)

	_, ok = TokenLifetime("opaque-token", now)
	assert.False(t, ok)
}

func TestMergeCookiesPrefersFreshValues(t *testing.T) {
	base := []*http.Cookie{{Name: "a", Value: "old"}, {Name: "b", Value: "keep"}}
	fresh := []*http.Cookie{{Name: "a", Value: "new1"}, {Name: "a", Value: "new2"}}

	got := map[string]string{}
	for _, c := range mergeCookies(base, fresh) {
		got[c.Name] = c.Value
	}
	assert.Equal(t, map[string]string{"a": "new2", "b": "keep"}, got)
}
