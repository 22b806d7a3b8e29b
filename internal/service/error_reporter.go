package service

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"bimillog/internal/model"
	"bimillog/internal/repository"

	"github.com/google/uuid"
)

const (
	maxErrorMessage = 2000
	maxErrorStack   = 16000
)

// ErrorReporter collects client-side errors. It never fails its caller:
// persistence problems are logged and swallowed.
type ErrorReporter struct {
	repo    repository.ErrorReportRepo
	timeout time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// NewErrorReporter creates a reporter. A nil repo only logs.
func NewErrorReporter(repo repository.ErrorReportRepo, logger *slog.Logger) *ErrorReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorReporter{
		repo:    repo,
		timeout: 3 * time.Second,
		now:     time.Now,
		log:     logger.With("component", "error_reporter"),
	}
}

// Report records one error and returns its id.
func (r *ErrorReporter) Report(ctx context.Context, sessionID string, report model.ErrorReport) string {
	report.ID = uuid.New().String()
	report.SessionID = sessionID
	report.ReceivedAt = r.now().UTC()
	if report.OccurredAt.IsZero() {
		report.OccurredAt = report.ReceivedAt
	}
	switch report.Level {
	case model.ErrorLevelError, model.ErrorLevelWarning, model.ErrorLevelInfo:
	default:
		report.Level = model.ErrorLevelError
	}
	report.Message = truncate(strings.TrimSpace(report.Message), maxErrorMessage)
	if report.Message == "" {
		report.Message = "(no message)"
	}
	report.Stack = truncate(report.Stack, maxErrorStack)

	r.log.Warn("client error", "id", report.ID, "session", sessionID, "level", report.Level, "message", report.Message, "url", report.URL)

	if r.repo == nil {
		return report.ID
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()
	if err := r.repo.Save(saveCtx, &report); err != nil {
		r.log.Error("failed to persist error report", "id", report.ID, "error", err)
	}
	return report.ID
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// keep a valid UTF-8 prefix
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
