package model

import "time"

// NotificationType tells what triggered a notification
type NotificationType string

const (
	NotifyPaper        NotificationType = "PAPER"
	NotifyComment      NotificationType = "COMMENT"
	NotifyPostFeatured NotificationType = "POST_FEATURED"
	NotifyFriend       NotificationType = "FRIEND"
	NotifyAdmin        NotificationType = "ADMIN"
)

// Notification is an in-app notification
type Notification struct {
	ID               int64            `json:"id"`
	Content          string           `json:"content"`
	URL              string           `json:"url,omitempty"`
	NotificationType NotificationType `json:"notificationType"`
	IsRead           bool             `json:"isRead"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// NotificationUpdate marks notifications read and deletes others in one call
type NotificationUpdate struct {
	ReadIDs    []int64 `json:"readIds"`
	DeletedIDs []int64 `json:"deletedIds"`
}

// Empty reports whether the update would change nothing.
func (u NotificationUpdate) Empty() bool {
	return len(u.ReadIDs) == 0 && len(u.DeletedIDs) == 0
}
