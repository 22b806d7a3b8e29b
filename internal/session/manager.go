// Package session caches the access token envelope and the signed-in member
// snapshot for one browser session.
//
// The cache is an optimisation only. The backend's HttpOnly cookies remain the
// authority on whether a session is valid, so every read here is best-effort:
// expired entries are evicted lazily on read and storage failures surface as
// *StorageError values rather than panics.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"bimillog/internal/model"
)

const (
	defaultTokenKey  = "auth_tokens"
	defaultMemberKey = "auth_member"
)

// Config configures a Manager
type Config struct {
	Store Store
	// Namespace prefixes every key, typically with the browser session id.
	Namespace string
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Logger for storage failures. Falls back to slog.Default() if nil.
	Logger *slog.Logger
}

// Manager reads and writes one session's token envelope and member snapshot
type Manager struct {
	store     Store
	tokenKey  string
	memberKey string
	now       func() time.Time
	log       *slog.Logger
}

// NewManager creates a manager over cfg.Store.
func NewManager(cfg Config) *Manager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	prefix := ""
	if cfg.Namespace != "" {
		prefix = cfg.Namespace + ":"
	}
	return &Manager{
		store:     cfg.Store,
		tokenKey:  prefix + defaultTokenKey,
		memberKey: prefix + defaultMemberKey,
		now:       cfg.Now,
		log:       cfg.Logger.With("component", "session"),
	}
}

// IsTokenExpired reports whether env expired at now. It is fail-open: an
// envelope missing expiresIn or savedAt never counts as expired, so that
// malformed data cannot log a user out.
func IsTokenExpired(env *model.TokenEnvelope, now time.Time) bool {
	expiresAt, ok := env.ExpiresAt()
	if !ok {
		return false
	}
	return now.UnixMilli() >= expiresAt
}

// IsTokenExpired checks env against the manager's clock.
func (m *Manager) IsTokenExpired(env *model.TokenEnvelope) bool {
	return IsTokenExpired(env, m.now())
}

// SaveTokens stamps savedAt with the current time and overwrites any
// existing envelope.
func (m *Manager) SaveTokens(ctx context.Context, env model.TokenEnvelope) error {
	savedAt := m.now().UnixMilli()
	env.SavedAt = &savedAt

	data, err := json.Marshal(env)
	if err != nil {
		return &StorageError{Op: "encode", Key: m.tokenKey, Err: err}
	}
	if err := m.store.Set(ctx, m.tokenKey, data); err != nil {
		return &StorageError{Op: "set", Key: m.tokenKey, Err: err}
	}
	return nil
}

// Tokens returns the stored envelope. An expired envelope is deleted and
// reported as (nil, nil); a missing one too.
func (m *Manager) Tokens(ctx context.Context) (*model.TokenEnvelope, error) {
	data, err := m.store.Get(ctx, m.tokenKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: m.tokenKey, Err: err}
	}

	var env model.TokenEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &StorageError{Op: "decode", Key: m.tokenKey, Err: err}
	}

	if m.IsTokenExpired(&env) {
		if err := m.store.Delete(ctx, m.tokenKey); err != nil {
			return nil, &StorageError{Op: "delete", Key: m.tokenKey, Err: err}
		}
		return nil, nil
	}
	return &env, nil
}

// GetTokens is the fail-open form of Tokens: storage errors are logged and
// reported as no tokens.
func (m *Manager) GetTokens(ctx context.Context) *model.TokenEnvelope {
	env, err := m.Tokens(ctx)
	if err != nil {
		m.log.Warn("failed to read tokens", "error", err)
		return nil
	}
	return env
}

// ClearTokens removes the envelope. Clearing an empty session is not an error.
func (m *Manager) ClearTokens(ctx context.Context) error {
	if err := m.store.Delete(ctx, m.tokenKey); err != nil && !errors.Is(err, ErrNotFound) {
		return &StorageError{Op: "delete", Key: m.tokenKey, Err: err}
	}
	return nil
}

// SaveMember caches the signed-in member snapshot.
func (m *Manager) SaveMember(ctx context.Context, member *model.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return &StorageError{Op: "encode", Key: m.memberKey, Err: err}
	}
	if err := m.store.Set(ctx, m.memberKey, data); err != nil {
		return &StorageError{Op: "set", Key: m.memberKey, Err: err}
	}
	return nil
}

// Member returns the cached member snapshot, or nil if none is cached.
func (m *Manager) Member(ctx context.Context) (*model.Member, error) {
	data, err := m.store.Get(ctx, m.memberKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: m.memberKey, Err: err}
	}
	var member model.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, &StorageError{Op: "decode", Key: m.memberKey, Err: err}
	}
	return &member, nil
}

// ClearMember drops the member snapshot.
func (m *Manager) ClearMember(ctx context.Context) error {
	if err := m.store.Delete(ctx, m.memberKey); err != nil && !errors.Is(err, ErrNotFound) {
		return &StorageError{Op: "delete", Key: m.memberKey, Err: err}
	}
	return nil
}

// Clear drops everything the session holds. Both deletes are attempted.
func (m *Manager) Clear(ctx context.Context) error {
	return errors.Join(m.ClearTokens(ctx), m.ClearMember(ctx))
}
