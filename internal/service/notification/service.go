package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type service struct {
	repo notification.Repository
	hub  *changefeed.Hub
	now  func() time.Time
}

// NewNotificationService creates a notification service that pushes every
// stored notification to the change feed.
func NewNotificationService(repo notification.Repository, hub *changefeed.Hub) notification.Service {
	return &service{
		repo: repo,
		hub:  hub,
		now:  time.Now,
	}
}

// Notify stores a notification and publishes it to the recipient's feed
func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) (notification.NotificationResponse, error) {
	if req.UserID == "" {
		return notification.NotificationResponse{}, fmt.Errorf("notification recipient is required")
	}

	n := &notification.Notification{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Title:       req.Title,
		Message:     req.Message,
		Type:        req.Type,
		IsRead:      false,
		RelatedType: req.RelatedType,
		RelatedID:   req.RelatedID,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return notification.NotificationResponse{}, fmt.Errorf("failed to create notification: %w", err)
	}

	resp := notification.NewNotificationResponse(n)
	if s.hub != nil {
		s.hub.Publish(changefeed.Event{
			Table:  changefeed.TableNotifications,
			Op:     changefeed.OpInsert,
			UserID: n.UserID,
			Record: resp,
		})
	}

	return resp, nil
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var (
		notifications []*notification.Notification
		total         int
		unreadCount   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		notifications, total, err = s.repo.GetByUserID(gctx, userID, page, pageSize, unreadOnly)
		return err
	})
	g.Go(func() (err error) {
		unreadCount, err = s.repo.GetUnreadCount(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
