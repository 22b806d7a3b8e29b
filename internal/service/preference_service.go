package service

import (
	"context"
	"log/slog"

	"bimillog/internal/cache"
	"bimillog/internal/model"
)

// PreferenceService keeps UI preferences per browser session
type PreferenceService struct {
	prefs cache.PreferenceCache
	log   *slog.Logger
}

func NewPreferenceService(prefs cache.PreferenceCache, logger *slog.Logger) *PreferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferenceService{prefs: prefs, log: logger.With("component", "preference")}
}

// Theme falls back to the system theme when the store is unavailable.
func (s *PreferenceService) Theme(ctx context.Context, sessionID string) model.Theme {
	theme, err := s.prefs.GetTheme(ctx, sessionID)
	if err != nil {
		s.log.Warn("failed to read theme", "session", sessionID, "error", err)
		return model.ThemeSystem
	}
	return theme
}

func (s *PreferenceService) SetTheme(ctx context.Context, sessionID, theme string) (model.Theme, error) {
	t, err := model.ParseTheme(theme)
	if err != nil {
		return "", err
	}
	if err := s.prefs.SetTheme(ctx, sessionID, t); err != nil {
		return "", err
	}
	return t, nil
}
