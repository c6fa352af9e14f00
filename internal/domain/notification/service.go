package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Notify stores the notification and pushes it to the change feed.
	Notify(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
