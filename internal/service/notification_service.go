package service

import (
	"context"

	"bimillog/internal/cache"
	"bimillog/internal/model"
)

// NotificationService serves the notification inbox
type NotificationService struct {
	actions
}

func NewNotificationService(d Deps) *NotificationService {
	return &NotificationService{actions: newActions(d, "notification")}
}

func (s *NotificationService) List(ctx context.Context, sessionID string, cursor model.CursorRequest) (*model.CursorPage[model.Notification], error) {
	c := "first"
	if cursor.Cursor != nil {
		c = i64toa(*cursor.Cursor)
	}
	key := cache.Key(sessionID, "notification", c, itoa(cursor.Size))
	return cache.Fetch(ctx, s.query, key, func(ctx context.Context) (*model.CursorPage[model.Notification], error) {
		return s.api.Notifications(ctx, cursor)
	})
}

// Update marks and deletes notifications in one batch.
func (s *NotificationService) Update(ctx context.Context, sessionID string, upd model.NotificationUpdate) error {
	if err := s.api.UpdateNotifications(ctx, upd); err != nil {
		return s.fail(sessionID, "Could not update notifications", err)
	}
	s.invalidate(ctx, cache.Key(sessionID, "notification"))
	return nil
}
