package service

import (
	"context"
	"errors"
	"time"

	"bimillog/internal/cache"
	"bimillog/internal/model"
	"bimillog/internal/repository"
)

var ErrNotAdmin = errors.New("admin role required")

// AdminService serves the moderation console
type AdminService struct {
	actions
	sessions *SessionService
	errors   repository.ErrorReportRepo
	now      func() time.Time
}

func NewAdminService(d Deps, sessions *SessionService, errorRepo repository.ErrorReportRepo) *AdminService {
	return &AdminService{
		actions:  newActions(d, "admin"),
		sessions: sessions,
		errors:   errorRepo,
		now:      time.Now,
	}
}

// RequireAdmin checks the session's cached member snapshot. The backend
// enforces the role again on every admin call.
func (s *AdminService) RequireAdmin(ctx context.Context, sessionID string) error {
	m, err := s.sessions.Manager(sessionID).Member(ctx)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrNotSignedIn
	}
	if !m.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// Reports lists reports, optionally filtered by a report type name.
func (s *AdminService) Reports(ctx context.Context, page model.PageRequest, reportType string) (*model.Page[model.AdminReport], error) {
	var filter *model.ReportType
	if reportType != "" {
		t, err := model.ParseReportType(reportType)
		if err != nil {
			return nil, err
		}
		filter = &t
	}
	return s.api.Reports(ctx, page.Normalize(), filter)
}

func (s *AdminService) Report(ctx context.Context, reportID int64) (*model.AdminReport, error) {
	return s.api.Report(ctx, reportID)
}

func (s *AdminService) Ban(ctx context.Context, sessionID string, req model.BanRequest) error {
	if err := s.api.Ban(ctx, req); err != nil {
		return s.fail(sessionID, "Could not ban the author", err)
	}
	s.succeed(sessionID, "Author banned")
	return nil
}

func (s *AdminService) ForceWithdraw(ctx context.Context, sessionID string, req model.BanRequest) error {
	if err := s.api.ForceWithdraw(ctx, req); err != nil {
		return s.fail(sessionID, "Could not remove the author", err)
	}
	s.succeed(sessionID, "Author's account removed")
	return nil
}

// RecentErrors lists client error reports, newest first.
func (s *AdminService) RecentErrors(ctx context.Context, level string, limit int) ([]*model.ErrorReport, error) {
	if s.errors == nil {
		return []*model.ErrorReport{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.errors.ListRecent(ctx, model.ErrorLevel(level), limit)
}

// ErrorReport returns one client error report.
func (s *AdminService) ErrorReport(ctx context.Context, id string) (*model.ErrorReport, error) {
	if s.errors == nil {
		return nil, ErrNotFound
	}
	report, err := s.errors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	return report, nil
}

// Overview is a health summary for the moderation console
type Overview struct {
	Cache         cache.StatsSnapshot `json:"cache"`
	ToastSessions int                 `json:"toastSessions"`
	ErrorsLastDay int64               `json:"errorsLastDay"`
}

// Overview summarises cache efficiency and recent client errors. A failing
// error store only zeroes the error count.
func (s *AdminService) Overview(ctx context.Context) Overview {
	o := Overview{Cache: s.query.Stats()}
	if s.toasts != nil {
		o.ToastSessions = s.toasts.Sessions()
	}
	if s.errors != nil {
		n, err := s.errors.CountSince(ctx, s.now().Add(-24*time.Hour))
		if err != nil {
			s.log.Warn("failed to count error reports", "error", err)
		}
		o.ErrorsLastDay = n
	}
	return o
}
