package service

import (
	"context"
	"errors"
	"net/http"

	"bimillog/internal/backend"
	"bimillog/internal/model"
	"bimillog/internal/session"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNotFound    = errors.New("not found")
)

// UserMessage turns an error into something fit for a toast or a Result.
func UserMessage(err error) string {
	var ve model.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if errors.Is(err, ErrNotSignedIn) {
		return "Please sign in first."
	}
	if errors.Is(err, ErrNotAdmin) {
		return "You do not have permission to do that."
	}
	if errors.Is(err, ErrNotFound) {
		return "Nothing was found."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The server took too long to answer."
	}

	var be *backend.Error
	if errors.As(err, &be) {
		switch be.Kind {
		case backend.KindNetwork:
			return "Could not reach the server. Check your connection."
		case backend.KindStatus:
			switch be.Status {
			case http.StatusUnauthorized:
				return "Your session has ended. Please sign in again."
			case http.StatusForbidden:
				return "You do not have permission to do that."
			}
			if be.Message != "" {
				return be.Message
			}
		}
		return "Something went wrong. Please try again."
	}

	var se *session.StorageError
	if errors.As(err, &se) {
		return "Session data is unavailable."
	}
	return "Something went wrong. Please try again."
}

// StatusCode maps an error to the HTTP status the BFF answers with.
func StatusCode(err error) int {
	var ve model.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	var be *backend.Error
	if errors.As(err, &be) {
		switch be.Kind {
		case backend.KindStatus:
			return be.Status
		default:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// transient reports whether a query failure may be answered from a stale
// cache entry.
func transient(err error) bool {
	var be *backend.Error
	if !errors.As(err, &be) {
		return false
	}
	return be.Kind == backend.KindNetwork || (be.Kind == backend.KindStatus && be.Status >= 500)
}

// ServeStale is the stale-while-error policy for query caches: only backend
// outages fall back to stale data.
func ServeStale(err error) bool { return transient(err) }
