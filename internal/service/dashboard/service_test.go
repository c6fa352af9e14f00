package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	active   int64
	counts   dashboard.StatusCounts
	countErr error

	from, to time.Time
}

func (r *fakeDashboardRepo) CountActiveEmployees(ctx context.Context) (int64, error) {
	return r.active, nil
}

func (r *fakeDashboardRepo) GetStatusCounts(ctx context.Context, from, to time.Time) (*dashboard.StatusCounts, error) {
	if r.countErr != nil {
		return nil, r.countErr
	}
	r.from, r.to = from, to
	c := r.counts
	return &c, nil
}

type fakeScheduleService struct {
	schedule.ScheduleService
	workingDays int
}

func (f *fakeScheduleService) WorkingDayCount(ctx context.Context) (int, error) {
	return f.workingDays, nil
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		attended, expected int64
		want               int
	}{
		{85, 100, 85},
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds away from zero
		{7, 8, 88}, // 87.5
		{100, 100, 100},
		{23, 40, 58},  // 57.5
		{29, 200, 15}, // 14.5
		{1, 200, 1},   // 0.5
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RoundPercent(c.attended, c.expected), "%d/%d", c.attended, c.expected)
	}
}

func TestRoundPercentExactHalvesRoundUp(t *testing.T) {
	for expected := int64(1); expected <= 400; expected++ {
		for attended := int64(0); attended <= expected; attended++ {
			twice := attended * 200
			if twice%expected != 0 || (twice/expected)%2 == 0 {
				continue
			}
			want := int(attended*100/expected) + 1
			assert.Equal(t, want, RoundPercent(attended, expected), "%d/%d", attended, expected)
		}
	}
}

func TestMondayOnOrBefore(t *testing.T) {
	wed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, mon, MondayOnOrBefore(wed))
	assert.Equal(t, mon, MondayOnOrBefore(sun))
	assert.Equal(t, mon, MondayOnOrBefore(mon))
}

func TestDailySummary_AbsentFloorsAtZero(t *testing.T) {
	repo := &fakeDashboardRepo{
		active: 10,
		counts: dashboard.StatusCounts{Present: 8, Late: 2, Leave: 2},
	}
	svc := NewDashboardService(repo, nil, Options{})

	resp, err := svc.DailySummary(context.Background(), time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Absent)
	assert.Equal(t, int64(8), resp.Present)
	assert.Equal(t, int64(2), resp.Late)
	assert.Equal(t, int64(2), resp.OnLeave)
	assert.Equal(t, int64(10), resp.TotalActive)
	assert.Equal(t, "2024-01-10", resp.Date)

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), repo.to)
}

func TestDailySummary_CountsMissingAsAbsent(t *testing.T) {
	repo := &fakeDashboardRepo{
		active: 10,
		counts: dashboard.StatusCounts{Present: 5, Late: 1, Leave: 1},
	}
	svc := NewDashboardService(repo, nil, Options{})

	resp, err := svc.DailySummary(context.Background(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Absent)
}

func TestDailySummary_UsesLocalDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	repo := &fakeDashboardRepo{active: 1}
	svc := NewDashboardService(repo, nil, Options{Location: jakarta})

	_, err := svc.DailySummary(context.Background(), time.Date(2024, 1, 10, 0, 0, 0, 0, jakarta))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 9, 17, 0, 0, 0, time.UTC), repo.from.UTC())
}

func TestDailySummary_PropagatesErrors(t *testing.T) {
	repo := &fakeDashboardRepo{active: 3, countErr: errors.New("boom")}
	svc := NewDashboardService(repo, nil, Options{})

	_, err := svc.DailySummary(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestWeeklyRate(t *testing.T) {
	repo := &fakeDashboardRepo{
		active: 20,
		counts: dashboard.StatusCounts{Present: 70, Late: 15, Leave: 6},
	}
	svc := NewDashboardService(repo, nil, Options{})

	// Wednesday normalizes to Monday 2024-01-08.
	resp, err := svc.WeeklyRate(context.Background(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", resp.WeekStart)
	assert.Equal(t, "2024-01-14", resp.WeekEnd)
	assert.Equal(t, int64(85), resp.Attended)
	assert.Equal(t, int64(100), resp.Expected)
	assert.Equal(t, 85, resp.Rate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), repo.to)
}

func TestWeeklyRate_NoActiveEmployees(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{}, nil, Options{})

	resp, err := svc.WeeklyRate(context.Background(), time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Expected)
	assert.Equal(t, 0, resp.Rate)
}

func TestWeeklyRate_UsesScheduleWhenEnabled(t *testing.T) {
	repo := &fakeDashboardRepo{
		active: 10,
		counts: dashboard.StatusCounts{Present: 50},
	}
	svc := NewDashboardService(repo, &fakeScheduleService{workingDays: 6}, Options{WeeklyRateUseSchedule: true})

	resp, err := svc.WeeklyRate(context.Background(), time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(60), resp.Expected)
	assert.Equal(t, 83, resp.Rate)
}
