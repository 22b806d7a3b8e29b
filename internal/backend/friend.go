package backend

import (
	"context"

	"bimillog/internal/model"
)

func (c *Client) Friends(ctx context.Context, page model.PageRequest) (*model.Page[model.Friend], error) {
	var out model.Page[model.Friend]
	if err := c.get(ctx, "/api/friend/list", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReceivedFriendRequests(ctx context.Context, page model.PageRequest) (*model.Page[model.FriendRequest], error) {
	var out model.Page[model.FriendRequest]
	if err := c.get(ctx, "/api/friend/receive", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SentFriendRequests(ctx context.Context, page model.PageRequest) (*model.Page[model.FriendRequest], error) {
	var out model.Page[model.FriendRequest]
	if err := c.get(ctx, "/api/friend/send", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendedFriends returns friend-of-friend suggestions, ranked by the backend.
func (c *Client) RecommendedFriends(ctx context.Context, page model.PageRequest) (*model.Page[model.RecommendedFriend], error) {
	var out model.Page[model.RecommendedFriend]
	if err := c.get(ctx, "/api/friend/recommend", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendFriendRequest(ctx context.Context, memberID int64) error {
	return c.send(ctx, "POST", "/api/friend/send/"+id(memberID), nil, nil)
}

func (c *Client) AcceptFriendRequest(ctx context.Context, requestID int64) error {
	return c.send(ctx, "POST", "/api/friend/receive/"+id(requestID), nil, nil)
}

func (c *Client) RejectFriendRequest(ctx context.Context, requestID int64) error {
	return c.send(ctx, "DELETE", "/api/friend/receive/"+id(requestID), nil, nil)
}

func (c *Client) CancelFriendRequest(ctx context.Context, requestID int64) error {
	return c.send(ctx, "DELETE", "/api/friend/send/"+id(requestID), nil, nil)
}

func (c *Client) RemoveFriend(ctx context.Context, friendshipID int64) error {
	return c.send(ctx, "DELETE", "/api/friend/friendship/"+id(friendshipID), nil, nil)
}
