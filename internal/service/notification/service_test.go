package notification

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items     []*notification.Notification
	createErr error
}

func (r *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items = append(r.items, n)
	return nil
}

func (r *fakeRepo) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	var out []*notification.Notification
	for _, n := range r.items {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)
	return out[start:end], total, nil
}

func (r *fakeRepo) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	for _, n := range r.items {
		for _, id := range ids {
			if n.ID == id && n.UserID == userID {
				n.IsRead = true
			}
		}
	}
	return nil
}

func (r *fakeRepo) MarkAllAsRead(ctx context.Context, userID string) error {
	for _, n := range r.items {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func TestNotify_StoresAndPublishes(t *testing.T) {
	repo := &fakeRepo{}
	hub := changefeed.NewHub()
	events, cancel := hub.SubscribeForUser(changefeed.TableNotifications, changefeed.OpInsert, "user-1")
	defer cancel()

	svc := NewNotificationService(repo, hub)
	relatedType := notification.RelatedTypeLeaveRequest
	relatedID := uuid.NewString()

	resp, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		UserID:      "user-1",
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
		Message:     "Your leave for 2024-01-10 to 2024-01-12 was approved",
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsRead)
	require.Len(t, repo.items, 1)
	require.Len(t, events, 1)
	assert.Equal(t, resp.ID, (<-events).Record.(notification.NotificationResponse).ID)
}

func TestNotify_StoreFailureDoesNotPublish(t *testing.T) {
	hub := changefeed.NewHub()
	events, cancel := hub.Subscribe(changefeed.TableNotifications, changefeed.OpAll)
	defer cancel()

	svc := NewNotificationService(&fakeRepo{createErr: errors.New("db down")}, hub)
	_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{UserID: "user-1", Title: "x", Message: "y"})
	assert.Error(t, err)
	assert.Len(t, events, 0)
}

func TestMarkAsRead_OnlyFlipsOwnNotifications(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil)

	mine, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{UserID: "user-1", Title: "a", Message: "a"})
	require.NoError(t, err)
	theirs, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{UserID: "user-2", Title: "b", Message: "b"})
	require.NoError(t, err)

	err = svc.MarkAsRead(context.Background(), "user-1", notification.MarkAsReadRequest{NotificationIDs: []string{mine.ID, theirs.ID}})
	require.NoError(t, err)

	count, _ := svc.GetUnreadCount(context.Background(), "user-1")
	assert.Equal(t, 0, count)
	count, _ = svc.GetUnreadCount(context.Background(), "user-2")
	assert.Equal(t, 1, count)
}

func TestMarkAsRead_RequiresIDs(t *testing.T) {
	svc := NewNotificationService(&fakeRepo{}, nil)
	assert.Error(t, svc.MarkAsRead(context.Background(), "user-1", notification.MarkAsReadRequest{}))
}

func TestGetNotifications_PaginatesAndCountsUnread(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{UserID: "user-1", Title: "t", Message: "m"})
		require.NoError(t, err)
	}
	require.NoError(t, svc.MarkAllAsRead(context.Background(), "user-1"))
	_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{UserID: "user-1", Title: "t", Message: "m"})
	require.NoError(t, err)

	list, err := svc.GetNotifications(context.Background(), "user-1", 0, 500, false)
	require.NoError(t, err)
	assert.Equal(t, 4, list.Total)
	assert.Equal(t, 1, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	unread, err := svc.GetNotifications(context.Background(), "user-1", 1, 10, true)
	require.NoError(t, err)
	assert.Len(t, unread.Notifications, 1)
}
