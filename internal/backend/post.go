package backend

import (
	"context"
	"net/url"
	"strings"

	"bimillog/internal/model"
)

func (c *Client) ListPosts(ctx context.Context, page model.PageRequest) (*model.Page[model.PostSummary], error) {
	var out model.Page[model.PostSummary]
	if err := c.get(ctx, "/api/post", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	var out model.Post
	if err := c.get(ctx, "/api/post/"+id(postID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPosts runs a board search. Queries shorter than two characters are
// rejected locally.
func (c *Client) SearchPosts(ctx context.Context, typ model.SearchType, query string, page model.PageRequest) (*model.Page[model.PostSummary], error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, model.ValidationError{Field: "query", Reason: "must be at least 2 characters"}
	}
	q := pageQuery(page)
	q.Set("type", string(typ))
	q.Set("query", query)

	var out model.Page[model.PostSummary]
	if err := c.get(ctx, "/api/post/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PopularPosts(ctx context.Context, period model.PopularPeriod) ([]model.PostSummary, error) {
	q := url.Values{"period": {string(period)}}
	var out []model.PostSummary
	if err := c.get(ctx, "/api/post/popular", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePost(ctx context.Context, req model.PostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out model.Post
	if err := c.send(ctx, "POST", "/api/post", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID int64, req model.PostRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "PUT", "/api/post/"+id(postID), req, nil)
}

func (c *Client) DeletePost(ctx context.Context, postID int64, req model.DeletePostRequest) error {
	return c.send(ctx, "DELETE", "/api/post/"+id(postID), req, nil)
}

// LikePost toggles the signed-in member's like.
func (c *Client) LikePost(ctx context.Context, postID int64) error {
	return c.send(ctx, "POST", "/api/post/"+id(postID)+"/like", nil, nil)
}
