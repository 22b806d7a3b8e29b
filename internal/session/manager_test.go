package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"bimillog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	ms int64
}

func (c *fakeClock) Now() time.Time { return time.UnixMilli(c.ms) }

func int64p(v int64) *int64 { return &v }

// failingStore fails every operation
type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) ([]byte, error) { return nil, s.err }
func (s failingStore) Set(context.Context, string, []byte) error   { return s.err }
func (s failingStore) Delete(context.Context, string) error        { return s.err }

func newTestManager(store Store, clock *fakeClock) *Manager {
	return NewManager(Config{Store: store, Namespace: "sid-1", Now: clock.Now})
}

func TestIsTokenExpired(t *testing.T) {
	now := time.UnixMilli(5000)

	tests := []struct {
		name string
		env  *model.TokenEnvelope
		want bool
	}{
		{"nil envelope", nil, false},
		{"missing expiresIn", &model.TokenEnvelope{AccessToken: "a", SavedAt: int64p(0)}, false},
		{"missing savedAt", &model.TokenEnvelope{AccessToken: "a", ExpiresIn: int64p(1)}, false},
		{"missing both", &model.TokenEnvelope{AccessToken: "a"}, false},
		{"not yet", &model.TokenEnvelope{ExpiresIn: int64p(5), SavedAt: int64p(1000)}, false},
		{"exactly at expiry", &model.TokenEnvelope{ExpiresIn: int64p(4), SavedAt: int64p(1000)}, true},
		{"past expiry", &model.TokenEnvelope{ExpiresIn: int64p(1), SavedAt: int64p(1000)}, true},
		{"zero lifetime", &model.TokenEnvelope{ExpiresIn: int64p(0), SavedAt: int64p(5000)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTokenExpired(tt.env, now))
		})
	}
}

func TestSaveTokensStampsSavedAt(t *testing.T) {
	clock := &fakeClock{ms: 1234}
	m := newTestManager(NewMemoryStore(), clock)
	ctx := context.Background()

	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "a", ExpiresIn: int64p(60), SavedAt: int64p(1)}))

	env, err := m.Tokens(ctx)
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "a", env.AccessToken)
	require.NotNil(t, env.SavedAt)
	assert.Equal(t, int64(1234), *env.SavedAt)
}

func TestSaveTokensOverwrites(t *testing.T) {
	m := newTestManager(NewMemoryStore(), &fakeClock{ms: 1})
	ctx := context.Background()

	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "first"}))
	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "second", RefreshToken: "r"}))

	env, err := m.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", env.AccessToken)
	assert.Equal(t, "r", env.RefreshToken)
}

func TestExpiryScenario(t *testing.T) {
	store := NewMemoryStore()
	clock := &fakeClock{ms: 1000}
	m := newTestManager(store, clock)
	ctx := context.Background()

	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "a", ExpiresIn: int64p(10)}))

	clock.ms = 10999
	env, err := m.Tokens(ctx)
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.False(t, m.IsTokenExpired(env))

	clock.ms = 11000
	env, err = m.Tokens(ctx)
	require.NoError(t, err)
	assert.Nil(t, env)

	_, err = store.Get(ctx, "sid-1:auth_tokens")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokensWithoutExpiryNeverEvicted(t *testing.T) {
	clock := &fakeClock{ms: 0}
	m := newTestManager(NewMemoryStore(), clock)
	ctx := context.Background()

	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "forever"}))
	clock.ms = 1 << 50
	env, err := m.Tokens(ctx)
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "forever", env.AccessToken)
}

func TestTokensMissing(t *testing.T) {
	m := newTestManager(NewMemoryStore(), &fakeClock{})
	env, err := m.Tokens(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, env)
}

func TestTokensCorruptData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "sid-1:auth_tokens", []byte("{not json")))

	m := newTestManager(store, &fakeClock{})
	_, err := m.Tokens(ctx)

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "decode", serr.Op)
	assert.Nil(t, m.GetTokens(ctx))
}

func TestStorageFailuresAreValues(t *testing.T) {
	boom := errors.New("quota exceeded")
	m := newTestManager(failingStore{err: boom}, &fakeClock{})
	ctx := context.Background()

	err := m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "a"})
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "set", serr.Op)
	assert.ErrorIs(t, err, boom)

	_, err = m.Tokens(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, m.GetTokens(ctx))

	assert.ErrorIs(t, m.ClearTokens(ctx), boom)
}

func TestClearTokensIsIdempotent(t *testing.T) {
	m := newTestManager(NewMemoryStore(), &fakeClock{})
	ctx := context.Background()

	require.NoError(t, m.ClearTokens(ctx))
	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "a"}))
	require.NoError(t, m.ClearTokens(ctx))
	require.NoError(t, m.ClearTokens(ctx))

	env, err := m.Tokens(ctx)
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestMemberSnapshot(t *testing.T) {
	m := newTestManager(NewMemoryStore(), &fakeClock{})
	ctx := context.Background()

	got, err := m.Member(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, m.SaveMember(ctx, &model.Member{MemberID: 3, MemberName: "bimil", Role: model.RoleAdmin}))
	got, err = m.Member(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())

	require.NoError(t, m.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "a"}))
	require.NoError(t, m.Clear(ctx))
	got, _ = m.Member(ctx)
	assert.Nil(t, got)
	assert.Nil(t, m.GetTokens(ctx))
}

func TestNamespacesAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	a := NewManager(Config{Store: store, Namespace: "a"})
	b := NewManager(Config{Store: store, Namespace: "b"})

	require.NoError(t, a.SaveTokens(ctx, model.TokenEnvelope{AccessToken: "for-a"}))
	assert.Nil(t, b.GetTokens(ctx))
	assert.Equal(t, "for-a", a.GetTokens(ctx).AccessToken)
}
