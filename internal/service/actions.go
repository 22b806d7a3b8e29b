package service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"bimillog/internal/backend"
	"bimillog/internal/cache"
	"bimillog/internal/toast"
)

// publicScope prefixes cache keys shared by every session.
const publicScope = "public"

// Deps are the collaborators shared by the action services
type Deps struct {
	API    *backend.Client
	Query  *cache.Query
	Toasts *toast.Registry
	Logger *slog.Logger
}

// actions is embedded by services that run backend calls on behalf of a
// browser session, toast the outcome and invalidate cached queries.
type actions struct {
	api    *backend.Client
	query  *cache.Query
	toasts *toast.Registry
	log    *slog.Logger
}

func newActions(d Deps, component string) actions {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return actions{
		api:    d.API,
		query:  d.Query,
		toasts: d.Toasts,
		log:    logger.With("component", component),
	}
}

func (a *actions) succeed(sessionID, title string, opts ...toast.Option) {
	if a.toasts == nil || sessionID == "" {
		return
	}
	a.toasts.Push(sessionID, toast.Success, title, opts...)
}

// fail toasts err for the session and hands it back. Errors the user cannot
// act on are logged.
func (a *actions) fail(sessionID, title string, err error) error {
	if status := StatusCode(err); status >= http.StatusInternalServerError {
		a.log.Error(title, "session", sessionID, "error", err)
	}
	if a.toasts != nil && sessionID != "" {
		a.toasts.Push(sessionID, toast.Error, title, toast.WithDescription(UserMessage(err)))
	}
	return err
}

func (a *actions) invalidate(ctx context.Context, keys ...string) {
	a.query.Invalidate(ctx, keys...)
}

func itoa(n int) string     { return strconv.Itoa(n) }
func i64toa(n int64) string { return strconv.FormatInt(n, 10) }
