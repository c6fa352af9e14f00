package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ReadState(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewNotificationRepository(db)
	ctx := context.Background()
	owner := insertEmployee(t, db, "Owner", "employee", true)
	other := insertEmployee(t, db, "Other", "employee", true)

	var ids []string
	for i := 0; i < 3; i++ {
		n := &notification.Notification{
			UserID:    owner,
			Title:     "Leave Approved",
			Message:   "Your leave request for 2024-01-10 was approved",
			Type:      notification.TypeLeaveApproved,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, n))
		ids = append(ids, n.ID)
	}

	count, err := repo.GetUnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Marking on behalf of someone else is a no-op.
	require.NoError(t, repo.MarkAsRead(ctx, ids[:1], other))
	count, err = repo.GetUnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.MarkAsRead(ctx, ids[:1], owner))
	unread, total, err := repo.GetByUserID(ctx, owner, 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, unread, 2)

	require.NoError(t, repo.MarkAllAsRead(ctx, owner))
	count, err = repo.GetUnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEmployeeRepository_ListActiveIDsByRole(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	admin := insertEmployee(t, db, "Admin", "admin", true)
	insertEmployee(t, db, "Retired Admin", "admin", false)
	insertEmployee(t, db, "Staff", "employee", true)

	ids, err := repo.ListActiveIDsByRole(ctx, employee.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{admin}, ids)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
