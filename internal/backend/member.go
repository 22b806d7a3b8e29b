package backend

import (
	"context"
	"net/url"
	"strings"

	"bimillog/internal/model"
)

func (c *Client) Blacklist(ctx context.Context, page model.PageRequest) (*model.Page[model.BlacklistEntry], error) {
	var out model.Page[model.BlacklistEntry]
	if err := c.get(ctx, "/api/member/blacklist", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddBlacklist(ctx context.Context, memberName string) error {
	memberName = strings.TrimSpace(memberName)
	if memberName == "" {
		return model.ValidationError{Field: "memberName", Reason: "required"}
	}
	return c.send(ctx, "POST", "/api/member/blacklist", model.BlacklistAddRequest{MemberName: memberName}, nil)
}

func (c *Client) RemoveBlacklist(ctx context.Context, req model.BlacklistRemoveRequest) error {
	if req.ID <= 0 {
		return model.ValidationError{Field: "id", Reason: "required"}
	}
	return c.send(ctx, "DELETE", "/api/member/blacklist", req, nil)
}

func (c *Client) Setting(ctx context.Context) (*model.Setting, error) {
	var out model.Setting
	if err := c.get(ctx, "/api/member/setting", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSetting(ctx context.Context, s model.Setting) error {
	return c.send(ctx, "PUT", "/api/member/setting", s, nil)
}

func (c *Client) UpdateMemberName(ctx context.Context, req model.UpdateNameRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "PATCH", "/api/member/username", req, nil)
}

// CheckMemberName reports whether a name is still free.
func (c *Client) CheckMemberName(ctx context.Context, memberName string) (bool, error) {
	if err := (model.UpdateNameRequest{MemberName: memberName}).Validate(); err != nil {
		return false, err
	}
	var available bool
	q := url.Values{"memberName": {memberName}}
	if err := c.get(ctx, "/api/member/username/check", q, &available); err != nil {
		return false, err
	}
	return available, nil
}

// SubmitReport files a validated report.
func (c *Client) SubmitReport(ctx context.Context, report *model.Report) error {
	return c.send(ctx, "POST", "/api/member/report", report, nil)
}

// Withdraw deletes the signed-in member's account.
func (c *Client) Withdraw(ctx context.Context) error {
	return c.send(ctx, "DELETE", "/api/member/withdraw", nil, nil)
}
