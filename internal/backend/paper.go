package backend

import (
	"context"
	"net/url"

	"bimillog/internal/model"
)

// MyPaper returns every message on the signed-in member's paper.
func (c *Client) MyPaper(ctx context.Context) ([]model.Message, error) {
	var out []model.Message
	if err := c.get(ctx, "/api/paper", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VisitPaper returns the public view of someone else's paper.
func (c *Client) VisitPaper(ctx context.Context, memberName string) ([]model.VisitMessage, error) {
	var out []model.VisitMessage
	if err := c.get(ctx, "/api/paper/"+url.PathEscape(memberName), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteMessage leaves a message on memberName's paper.
func (c *Client) WriteMessage(ctx context.Context, memberName string, req model.WriteMessageRequest) error {
	if memberName == "" {
		return model.ValidationError{Field: "memberName", Reason: "required"}
	}
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "POST", "/api/paper/"+url.PathEscape(memberName), req, nil)
}

// DeleteMessage removes a message from the signed-in member's own paper.
func (c *Client) DeleteMessage(ctx context.Context, messageID int64) error {
	if messageID <= 0 {
		return model.ValidationError{Field: "id", Reason: "required"}
	}
	return c.send(ctx, "POST", "/api/paper/delete", model.DeleteMessageRequest{ID: messageID}, nil)
}
