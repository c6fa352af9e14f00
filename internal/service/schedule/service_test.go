package schedule

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	days map[int]schedule.ScheduleDay
}

func newFakeScheduleRepo(days ...schedule.ScheduleDay) *fakeScheduleRepo {
	r := &fakeScheduleRepo{days: make(map[int]schedule.ScheduleDay)}
	for _, d := range days {
		r.days[d.DayOfWeek] = d
	}
	return r
}

func (r *fakeScheduleRepo) GetByDayOfWeek(ctx context.Context, dayOfWeek int) (schedule.ScheduleDay, error) {
	d, ok := r.days[dayOfWeek]
	if !ok {
		return schedule.ScheduleDay{}, schedule.ErrScheduleDayNotFound
	}
	return d, nil
}

func (r *fakeScheduleRepo) List(ctx context.Context) ([]schedule.ScheduleDay, error) {
	var out []schedule.ScheduleDay
	for _, d := range r.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (r *fakeScheduleRepo) Upsert(ctx context.Context, days []schedule.ScheduleDay) error {
	for _, d := range days {
		r.days[d.DayOfWeek] = d
	}
	return nil
}

func (r *fakeScheduleRepo) InsertMissing(ctx context.Context, days []schedule.ScheduleDay) (int, error) {
	created := 0
	for _, d := range days {
		if _, ok := r.days[d.DayOfWeek]; !ok {
			r.days[d.DayOfWeek] = d
			created++
		}
	}
	return created, nil
}

func TestResolve_UsesWeekdayOfDate(t *testing.T) {
	repo := newFakeScheduleRepo(schedule.DefaultWeek()...)
	svc := NewScheduleService(repo, nil, time.UTC)

	// 2024-01-10 is a Wednesday
	day, err := svc.Resolve(context.Background(), time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, day.DayOfWeek)
	assert.True(t, day.IsWorkingDay)

	// 2024-01-14 is a Sunday
	day, err = svc.Resolve(context.Background(), time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, day.DayOfWeek)
	assert.False(t, day.IsWorkingDay)
}

func TestResolve_AppliesLocation(t *testing.T) {
	repo := newFakeScheduleRepo(schedule.DefaultWeek()...)
	jakarta := time.FixedZone("WIB", 7*60*60)
	svc := NewScheduleService(repo, nil, jakarta)

	// Tuesday 20:00 UTC is already Wednesday in UTC+7.
	day, err := svc.Resolve(context.Background(), time.Date(2024, 1, 9, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, day.DayOfWeek)
}

func TestResolve_MissingRow(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), nil, time.UTC)

	day, err := svc.Resolve(context.Background(), time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	assert.Nil(t, day)
	assert.ErrorIs(t, err, schedule.ErrScheduleDayNotFound)
}

func TestBulkUpdate_NormalizesAndPublishes(t *testing.T) {
	repo := newFakeScheduleRepo(schedule.DefaultWeek()...)
	hub := changefeed.NewHub()
	events, cancel := hub.Subscribe(changefeed.TableScheduleDays, changefeed.OpUpdate)
	defer cancel()

	svc := NewScheduleService(repo, hub, time.UTC)
	resp, err := svc.BulkUpdate(context.Background(), schedule.BulkUpdateScheduleRequest{
		Days: []schedule.ScheduleDayRequest{{
			DayOfWeek:     1,
			IsWorkingDay:  true,
			CheckInStart:  "07:30",
			CheckInEnd:    "09:00",
			CheckOutStart: "16:00",
			CheckOutEnd:   "17:00:00",
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp, 7)
	assert.Equal(t, "Monday", resp[1].DayName)
	assert.Equal(t, "09:00:00", resp[1].CheckInEnd)
	assert.Equal(t, "09:00:00", repo.days[1].CheckInEnd)
	assert.Len(t, events, 1)
}

func TestBulkUpdate_AllowsUnorderedWindows(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil, time.UTC)

	_, err := svc.BulkUpdate(context.Background(), schedule.BulkUpdateScheduleRequest{
		Days: []schedule.ScheduleDayRequest{{
			DayOfWeek: 2, IsWorkingDay: true,
			CheckInStart: "10:00", CheckInEnd: "08:00", CheckOutStart: "18:00", CheckOutEnd: "17:00",
		}},
	})
	assert.NoError(t, err)
}

func TestBulkUpdate_RejectsInvalidInput(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), nil, time.UTC)

	_, err := svc.BulkUpdate(context.Background(), schedule.BulkUpdateScheduleRequest{
		Days: []schedule.ScheduleDayRequest{
			{DayOfWeek: 7, CheckInStart: "08:00", CheckInEnd: "09:30", CheckOutStart: "17:00", CheckOutEnd: "18:00"},
			{DayOfWeek: 1, CheckInStart: "8am", CheckInEnd: "09:30", CheckOutStart: "17:00", CheckOutEnd: "18:00"},
			{DayOfWeek: 1, CheckInStart: "08:00", CheckInEnd: "09:30", CheckOutStart: "17:00", CheckOutEnd: "18:00"},
		},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "days[0].day_of_week")
	assert.Contains(t, fields, "days[1].check_in_start")
	assert.Contains(t, fields, "days[2].day_of_week")
}

func TestSeed_OnlyInsertsMissingDays(t *testing.T) {
	custom := schedule.ScheduleDay{DayOfWeek: 1, IsWorkingDay: true, CheckInStart: "07:00:00", CheckInEnd: "08:00:00", CheckOutStart: "15:00:00", CheckOutEnd: "16:00:00"}
	repo := newFakeScheduleRepo(custom)
	svc := NewScheduleService(repo, nil, time.UTC)

	created, err := svc.Seed(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 6, created)
	assert.Equal(t, "08:00:00", repo.days[1].CheckInEnd)

	created, err = svc.Seed(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestWorkingDayCount(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(schedule.DefaultWeek()...), nil, time.UTC)

	count, err := svc.WorkingDayCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
