package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bimillog/internal/model"

	"github.com/redis/go-redis/v9"
)

// PreferenceCache keeps per-session UI preferences
type PreferenceCache interface {
	GetTheme(ctx context.Context, sessionID string) (model.Theme, error)
	SetTheme(ctx context.Context, sessionID string, theme model.Theme) error
	Delete(ctx context.Context, sessionID string) error
}

type preferenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreferenceCache creates a Redis-backed preference cache
func NewPreferenceCache(client *redis.Client) PreferenceCache {
	return &preferenceCache{
		client: client,
		ttl:    365 * 24 * time.Hour,
	}
}

func (c *preferenceCache) themeKey(sessionID string) string {
	return fmt.Sprintf("pref:%s:theme", sessionID)
}

// GetTheme returns ThemeSystem when nothing was stored.
func (c *preferenceCache) GetTheme(ctx context.Context, sessionID string) (model.Theme, error) {
	val, err := c.client.Get(ctx, c.themeKey(sessionID)).Result()
	if err == redis.Nil {
		return model.ThemeSystem, nil
	}
	if err != nil {
		return "", err
	}
	theme, err := model.ParseTheme(val)
	if err != nil {
		return model.ThemeSystem, nil
	}
	return theme, nil
}

func (c *preferenceCache) SetTheme(ctx context.Context, sessionID string, theme model.Theme) error {
	return c.client.Set(ctx, c.themeKey(sessionID), string(theme), c.ttl).Err()
}

func (c *preferenceCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.themeKey(sessionID)).Err()
}

type memoryPreferenceCache struct {
	mu     sync.RWMutex
	themes map[string]model.Theme
}

// NewMemoryPreferenceCache keeps preferences in process memory. They are lost
// on restart.
func NewMemoryPreferenceCache() PreferenceCache {
	return &memoryPreferenceCache{themes: make(map[string]model.Theme)}
}

func (c *memoryPreferenceCache) GetTheme(ctx context.Context, sessionID string) (model.Theme, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.themes[sessionID]; ok {
		return t, nil
	}
	return model.ThemeSystem, nil
}

func (c *memoryPreferenceCache) SetTheme(ctx context.Context, sessionID string, theme model.Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themes[sessionID] = theme
	return nil
}

func (c *memoryPreferenceCache) Delete(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.themes, sessionID)
	return nil
}
