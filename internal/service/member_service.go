package service

import (
	"context"

	"bimillog/internal/cache"
	"bimillog/internal/model"
)

// MemberService serves account settings, the blacklist and user reports
type MemberService struct {
	actions
	sessions    *SessionService
	broadcaster Broadcaster
}

func NewMemberService(d Deps, sessions *SessionService) *MemberService {
	return &MemberService{
		actions:  newActions(d, "member"),
		sessions: sessions,
	}
}

// SetBroadcaster sets the channel used to close a withdrawn session's sockets
func (s *MemberService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *MemberService) Blacklist(ctx context.Context, sessionID string, page model.PageRequest) (*model.Page[model.BlacklistEntry], error) {
	page = page.Normalize()
	key := cache.Key(sessionID, "blacklist", itoa(page.Page), itoa(page.Size))
	return cache.Fetch(ctx, s.query, key, func(ctx context.Context) (*model.Page[model.BlacklistEntry], error) {
		return s.api.Blacklist(ctx, page)
	})
}

func (s *MemberService) AddBlacklist(ctx context.Context, sessionID, memberName string) error {
	if err := s.api.AddBlacklist(ctx, memberName); err != nil {
		return s.fail(sessionID, "Could not block "+memberName, err)
	}
	s.invalidate(ctx, cache.Key(sessionID, "blacklist"))
	s.succeed(sessionID, memberName+" blocked")
	return nil
}

func (s *MemberService) RemoveBlacklist(ctx context.Context, sessionID string, req model.BlacklistRemoveRequest) error {
	if err := s.api.RemoveBlacklist(ctx, req); err != nil {
		return s.fail(sessionID, "Could not unblock", err)
	}
	s.invalidate(ctx, cache.Key(sessionID, "blacklist"))
	s.succeed(sessionID, "Unblocked")
	return nil
}

func (s *MemberService) Setting(ctx context.Context, sessionID string) (*model.Setting, error) {
	return cache.Fetch(ctx, s.query, cache.Key(sessionID, "setting"), s.api.Setting)
}

func (s *MemberService) UpdateSetting(ctx context.Context, sessionID string, setting model.Setting) error {
	if err := s.api.UpdateSetting(ctx, setting); err != nil {
		return s.fail(sessionID, "Could not save settings", err)
	}
	s.invalidate(ctx, cache.Key(sessionID, "setting"))
	s.succeed(sessionID, "Settings saved")
	return nil
}

// UpdateMemberName renames the signed-in member and refreshes the cached
// member snapshot.
func (s *MemberService) UpdateMemberName(ctx context.Context, sessionID string, req model.UpdateNameRequest) error {
	if err := s.api.UpdateMemberName(ctx, req); err != nil {
		return s.fail(sessionID, "Could not change your name", err)
	}

	mgr := s.sessions.Manager(sessionID)
	if m, err := mgr.Member(ctx); err == nil && m != nil {
		s.invalidate(ctx, paperKey(m.MemberName))
		m.MemberName = req.MemberName
		if err := mgr.SaveMember(ctx, m); err != nil {
			s.log.Warn("failed to cache member", "session", sessionID, "error", err)
		}
	}
	s.invalidate(ctx, cache.Key(sessionID, "me"), cache.Key(sessionID, "paper"))
	s.succeed(sessionID, "Name changed to "+req.MemberName)
	return nil
}

// CheckMemberName reports whether a name is free. It is never cached.
func (s *MemberService) CheckMemberName(ctx context.Context, memberName string) (bool, error) {
	return s.api.CheckMemberName(ctx, memberName)
}

// SubmitReport validates and files a user report.
func (s *MemberService) SubmitReport(ctx context.Context, sessionID string, req model.ReportRequest) error {
	report, err := model.ParseReport(req)
	if err != nil {
		return s.fail(sessionID, "Could not send the report", err)
	}
	if err := s.api.SubmitReport(ctx, report); err != nil {
		return s.fail(sessionID, "Could not send the report", err)
	}
	s.succeed(sessionID, "Report sent. Thank you.")
	return nil
}

// Withdraw deletes the account and every trace of it in the session.
func (s *MemberService) Withdraw(ctx context.Context, sessionID string) error {
	if err := s.api.Withdraw(ctx); err != nil {
		return s.fail(sessionID, "Could not delete your account", err)
	}
	if err := s.sessions.Forget(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear session", "session", sessionID, "error", err)
	}
	s.invalidate(ctx, sessionID+":")
	s.succeed(sessionID, "Your account was deleted")
	if s.broadcaster != nil {
		s.broadcaster.DisconnectSession(sessionID)
	}
	if s.toasts != nil {
		s.toasts.Drop(sessionID)
	}
	return nil
}
