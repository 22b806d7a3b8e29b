package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bimillog/internal/model"
	"bimillog/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionService mints and validates browser session cookies and hands out
// the per-session token managers.
type SessionService struct {
	secret []byte
	maxAge time.Duration
	store  session.Store
	now    func() time.Time
	log    *slog.Logger
}

// NewSessionService creates a session service. store holds the token
// envelopes and member snapshots of every session.
func NewSessionService(secret string, maxAge time.Duration, store session.Store, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	return &SessionService{
		secret: []byte(secret),
		maxAge: maxAge,
		store:  store,
		now:    time.Now,
		log:    logger.With("component", "session_service"),
	}
}

// MaxAge is the lifetime of a session cookie.
func (s *SessionService) MaxAge() time.Duration { return s.maxAge }

// Issue starts a new session and returns its id and signed cookie value.
func (s *SessionService) Issue() (string, string, error) {
	sid := uuid.New().String()
	now := s.now()
	claims := &model.SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return sid, signed, nil
}

// Validate checks a session cookie value and returns its claims.
func (s *SessionService) Validate(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Manager returns the token manager of one session.
func (s *SessionService) Manager(sessionID string) *session.Manager {
	return session.NewManager(session.Config{
		Store:     s.store,
		Namespace: "session:" + sessionID,
		Now:       s.now,
		Logger:    s.log,
	})
}

// Forget drops everything stored for a session.
func (s *SessionService) Forget(ctx context.Context, sessionID string) error {
	return s.Manager(sessionID).Clear(ctx)
}
