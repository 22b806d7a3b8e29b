package service

import (
	"context"
	"testing"
	"time"

	"bimillog/internal/model"
	"bimillog/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIssueAndValidate(t *testing.T) {
	svc := NewSessionService("secret", time.Hour, session.NewMemoryStore(), nil)

	sid, token, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sid, claims.SessionID)
}

func TestSessionValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewSessionService("secret", time.Hour, session.NewMemoryStore(), nil)
	other := NewSessionService("other-secret", time.Hour, session.NewMemoryStore(), nil)

	_, token, err := other.Issue()
	require.NoError(t, err)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, token, err = svc.Issue()
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManagersAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f.signIn(t, "a", &model.Member{MemberID: 1, MemberName: "alice"})
	m, err := f.sessions.Manager("b").Member(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)
}
