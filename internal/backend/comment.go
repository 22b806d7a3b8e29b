package backend

import (
	"context"

	"bimillog/internal/model"
)

func (c *Client) ListComments(ctx context.Context, postID int64, page model.PageRequest) (*model.Page[model.Comment], error) {
	var out model.Page[model.Comment]
	if err := c.get(ctx, "/api/comment/"+id(postID), pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PopularComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	var out []model.Comment
	if err := c.get(ctx, "/api/comment/"+id(postID)+"/popular", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WriteComment(ctx context.Context, req model.WriteCommentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "POST", "/api/comment/write", req, nil)
}

func (c *Client) UpdateComment(ctx context.Context, req model.UpdateCommentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "POST", "/api/comment/update", req, nil)
}

func (c *Client) DeleteComment(ctx context.Context, req model.DeleteCommentRequest) error {
	if req.ID <= 0 {
		return model.ValidationError{Field: "id", Reason: "required"}
	}
	return c.send(ctx, "POST", "/api/comment/delete", req, nil)
}

func (c *Client) LikeComment(ctx context.Context, req model.LikeCommentRequest) error {
	if req.CommentID <= 0 {
		return model.ValidationError{Field: "commentId", Reason: "required"}
	}
	return c.send(ctx, "POST", "/api/comment/like", req, nil)
}
