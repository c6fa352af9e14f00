package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"golang.org/x/sync/errgroup"
)

// defaultWorkingDays is the per-employee divisor of the weekly rate.
const defaultWorkingDays = 5

type Options struct {
	// WeeklyRateUseSchedule replaces the fixed five-day divisor with the
	// number of working days in the schedule.
	WeeklyRateUseSchedule bool
	Location              *time.Location
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	scheduleService schedule.ScheduleService
	useSchedule     bool
	location        *time.Location
}

func NewDashboardService(repo dashboard.DashboardRepository, scheduleService schedule.ScheduleService, opts Options) dashboard.DashboardService {
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		scheduleService:     scheduleService,
		useSchedule:         opts.WeeklyRateUseSchedule,
		location:            location,
	}
}

// startOfDay returns local midnight of date's calendar day.
func (s *DashboardServiceImpl) startOfDay(date time.Time) time.Time {
	y, m, d := date.In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

// DailySummary counts records whose check-in falls on date, running both
// queries in parallel.
func (s *DashboardServiceImpl) DailySummary(ctx context.Context, date time.Time) (*dashboard.DailySummaryResponse, error) {
	from := s.startOfDay(date)
	to := from.AddDate(0, 0, 1)

	var (
		active int64
		counts *dashboard.StatusCounts
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		active = n
		return nil
	})

	g.Go(func() error {
		c, err := s.GetStatusCounts(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("failed to count attendance by status: %w", err)
		}
		counts = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DailySummaryResponse{
		Present:     counts.Present,
		Late:        counts.Late,
		Absent:      max(0, active-counts.Total()),
		OnLeave:     counts.Leave,
		TotalActive: active,
		Date:        from.Format("2006-01-02"),
	}, nil
}

// WeeklyRate reports attended (present + late) over expected attendance for
// the Monday-start week containing weekStart.
func (s *DashboardServiceImpl) WeeklyRate(ctx context.Context, weekStart time.Time) (*dashboard.WeeklyRateResponse, error) {
	monday := MondayOnOrBefore(s.startOfDay(weekStart))
	next := monday.AddDate(0, 0, 7)

	var (
		active      int64
		counts      *dashboard.StatusCounts
		workingDays = defaultWorkingDays
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		active = n
		return nil
	})

	g.Go(func() error {
		c, err := s.GetStatusCounts(gCtx, monday, next)
		if err != nil {
			return fmt.Errorf("failed to count attendance by status: %w", err)
		}
		counts = c
		return nil
	})

	if s.useSchedule {
		g.Go(func() error {
			n, err := s.scheduleService.WorkingDayCount(gCtx)
			if err != nil {
				return fmt.Errorf("failed to count working days: %w", err)
			}
			workingDays = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	attended := counts.Present + counts.Late
	expected := active * int64(workingDays)

	return &dashboard.WeeklyRateResponse{
		WeekStart: monday.Format("2006-01-02"),
		WeekEnd:   next.AddDate(0, 0, -1).Format("2006-01-02"),
		Attended:  attended,
		Expected:  expected,
		Rate:      RoundPercent(attended, expected),
	}, nil
}

// MondayOnOrBefore returns the Monday of the week containing t.
func MondayOnOrBefore(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// RoundPercent returns attended/expected as a whole percent, rounding half
// away from zero. Zero expected yields 0. Both counts are non-negative, and
// integer arithmetic keeps exact halves such as 23/40 from rounding down.
func RoundPercent(attended, expected int64) int {
	if expected <= 0 || attended < 0 {
		return 0
	}
	return int((attended*200 + expected) / (2 * expected))
}
