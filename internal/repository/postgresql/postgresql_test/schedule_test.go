package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepository_InsertMissingKeepsExisting(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewScheduleRepository(db)
	ctx := context.Background()

	monday := schedule.ScheduleDay{
		DayOfWeek:     1,
		IsWorkingDay:  true,
		CheckInStart:  "07:00:00",
		CheckInEnd:    "08:00:00",
		CheckOutStart: "15:00:00",
		CheckOutEnd:   "16:00:00",
	}
	require.NoError(t, repo.Upsert(ctx, []schedule.ScheduleDay{monday}))

	inserted, err := repo.InsertMissing(ctx, schedule.DefaultWeek())
	require.NoError(t, err)
	assert.Equal(t, 6, inserted)

	got, err := repo.GetByDayOfWeek(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "07:00:00", got.CheckInStart)

	days, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, days, 7)
}

func TestScheduleRepository_GetMissingDay(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewScheduleRepository(db)

	_, err := repo.GetByDayOfWeek(context.Background(), 3)
	assert.ErrorIs(t, err, schedule.ErrScheduleDayNotFound)
}
