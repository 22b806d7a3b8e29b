package service

import (
	"context"

	"bimillog/internal/cache"
	"bimillog/internal/model"
)

// FriendService serves friend lists and friend requests
type FriendService struct {
	actions
}

func NewFriendService(d Deps) *FriendService {
	return &FriendService{actions: newActions(d, "friend")}
}

func friendKey(sessionID string, parts ...string) string {
	return cache.Key(append([]string{sessionID, "friend"}, parts...)...)
}

func (s *FriendService) Friends(ctx context.Context, sessionID string, page model.PageRequest) (*model.Page[model.Friend], error) {
	page = page.Normalize()
	return cache.Fetch(ctx, s.query, friendKey(sessionID, "list", itoa(page.Page), itoa(page.Size)), func(ctx context.Context) (*model.Page[model.Friend], error) {
		return s.api.Friends(ctx, page)
	})
}

func (s *FriendService) Received(ctx context.Context, sessionID string, page model.PageRequest) (*model.Page[model.FriendRequest], error) {
	page = page.Normalize()
	return cache.Fetch(ctx, s.query, friendKey(sessionID, "receive", itoa(page.Page), itoa(page.Size)), func(ctx context.Context) (*model.Page[model.FriendRequest], error) {
		return s.api.ReceivedFriendRequests(ctx, page)
	})
}

func (s *FriendService) Sent(ctx context.Context, sessionID string, page model.PageRequest) (*model.Page[model.FriendRequest], error) {
	page = page.Normalize()
	return cache.Fetch(ctx, s.query, friendKey(sessionID, "send", itoa(page.Page), itoa(page.Size)), func(ctx context.Context) (*model.Page[model.FriendRequest], error) {
		return s.api.SentFriendRequests(ctx, page)
	})
}

func (s *FriendService) Recommended(ctx context.Context, sessionID string, page model.PageRequest) (*model.Page[model.RecommendedFriend], error) {
	page = page.Normalize()
	return cache.Fetch(ctx, s.query, friendKey(sessionID, "recommend", itoa(page.Page), itoa(page.Size)), func(ctx context.Context) (*model.Page[model.RecommendedFriend], error) {
		return s.api.RecommendedFriends(ctx, page)
	})
}

func (s *FriendService) Send(ctx context.Context, sessionID string, memberID int64) error {
	if err := s.api.SendFriendRequest(ctx, memberID); err != nil {
		return s.fail(sessionID, "Could not send the friend request", err)
	}
	s.invalidate(ctx, friendKey(sessionID, "send"), friendKey(sessionID, "recommend"))
	s.succeed(sessionID, "Friend request sent")
	return nil
}

func (s *FriendService) Accept(ctx context.Context, sessionID string, requestID int64) error {
	if err := s.api.AcceptFriendRequest(ctx, requestID); err != nil {
		return s.fail(sessionID, "Could not accept the friend request", err)
	}
	s.invalidate(ctx, friendKey(sessionID))
	s.succeed(sessionID, "Friend request accepted")
	return nil
}

func (s *FriendService) Reject(ctx context.Context, sessionID string, requestID int64) error {
	if err := s.api.RejectFriendRequest(ctx, requestID); err != nil {
		return s.fail(sessionID, "Could not reject the friend request", err)
	}
	s.invalidate(ctx, friendKey(sessionID, "receive"))
	s.succeed(sessionID, "Friend request rejected")
	return nil
}

func (s *FriendService) Cancel(ctx context.Context, sessionID string, requestID int64) error {
	if err := s.api.CancelFriendRequest(ctx, requestID); err != nil {
		return s.fail(sessionID, "Could not cancel the friend request", err)
	}
	s.invalidate(ctx, friendKey(sessionID, "send"))
	s.succeed(sessionID, "Friend request cancelled")
	return nil
}

func (s *FriendService) Remove(ctx context.Context, sessionID string, friendshipID int64) error {
	if err := s.api.RemoveFriend(ctx, friendshipID); err != nil {
		return s.fail(sessionID, "Could not remove the friend", err)
	}
	s.invalidate(ctx, friendKey(sessionID))
	s.succeed(sessionID, "Friend removed")
	return nil
}
