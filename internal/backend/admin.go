package backend

import (
	"context"

	"bimillog/internal/model"
)

// Reports lists user reports for moderation, optionally filtered by type.
func (c *Client) Reports(ctx context.Context, page model.PageRequest, reportType *model.ReportType) (*model.Page[model.AdminReport], error) {
	q := pageQuery(page)
	if reportType != nil {
		q.Set("reportType", string(*reportType))
	}
	var out model.Page[model.AdminReport]
	if err := c.get(ctx, "/api/admin/reports", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Report(ctx context.Context, reportID int64) (*model.AdminReport, error) {
	var out model.AdminReport
	if err := c.get(ctx, "/api/admin/reports/"+id(reportID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ban suspends the author of reported content.
func (c *Client) Ban(ctx context.Context, req model.BanRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "POST", "/api/admin/ban", req, nil)
}

// ForceWithdraw deletes the account of the author of reported content.
func (c *Client) ForceWithdraw(ctx context.Context, req model.BanRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.send(ctx, "DELETE", "/api/admin/withdraw", req, nil)
}
