package backend

import (
	"context"

	"bimillog/internal/model"
)

func (c *Client) Notifications(ctx context.Context, cursor model.CursorRequest) (*model.CursorPage[model.Notification], error) {
	var out model.CursorPage[model.Notification]
	if err := c.get(ctx, "/api/notification/list", cursorQuery(cursor), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNotifications marks and deletes notifications in one batch. An empty
// batch is not sent.
func (c *Client) UpdateNotifications(ctx context.Context, upd model.NotificationUpdate) error {
	if upd.Empty() {
		return nil
	}
	if upd.ReadIDs == nil {
		upd.ReadIDs = []int64{}
	}
	if upd.DeletedIDs == nil {
		upd.DeletedIDs = []int64{}
	}
	return c.send(ctx, "POST", "/api/notification/update", upd, nil)
}
