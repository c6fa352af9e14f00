package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	hub      *changefeed.Hub
	location *time.Location
}

func NewScheduleService(repo schedule.ScheduleRepository, hub *changefeed.Hub, location *time.Location) schedule.ScheduleService {
	if location == nil {
		location = time.UTC
	}
	return &ScheduleServiceImpl{
		ScheduleRepository: repo,
		hub:                hub,
		location:           location,
	}
}

// Resolve implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Resolve(ctx context.Context, date time.Time) (*schedule.ScheduleDay, error) {
	day, err := s.ScheduleRepository.GetByDayOfWeek(ctx, schedule.DayOfWeekFor(date, s.location))
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context) ([]schedule.ScheduleDayResponse, error) {
	days, err := s.ScheduleRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule days: %w", err)
	}
	return toResponses(days), nil
}

// BulkUpdate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) BulkUpdate(ctx context.Context, req schedule.BulkUpdateScheduleRequest) ([]schedule.ScheduleDayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	days, err := req.ToEntities()
	if err != nil {
		return nil, fmt.Errorf("failed to normalize schedule days: %w", err)
	}

	if err := s.ScheduleRepository.Upsert(ctx, days); err != nil {
		return nil, fmt.Errorf("failed to update schedule days: %w", err)
	}

	updated, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(changefeed.Event{
			Table:  changefeed.TableScheduleDays,
			Op:     changefeed.OpUpdate,
			Record: updated,
		})
	}

	return updated, nil
}

// Seed implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Seed(ctx context.Context, days []schedule.ScheduleDay) (int, error) {
	if len(days) == 0 {
		days = schedule.DefaultWeek()
	}
	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return 0, schedule.ErrInvalidDayOfWeek
		}
	}

	created, err := s.ScheduleRepository.InsertMissing(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("failed to seed schedule days: %w", err)
	}
	return created, nil
}

// WorkingDayCount implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) WorkingDayCount(ctx context.Context) (int, error) {
	days, err := s.ScheduleRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list schedule days: %w", err)
	}

	count := 0
	for _, d := range days {
		if d.IsWorkingDay {
			count++
		}
	}
	return count, nil
}

func toResponses(days []schedule.ScheduleDay) []schedule.ScheduleDayResponse {
	responses := make([]schedule.ScheduleDayResponse, 0, len(days))
	for _, d := range days {
		resp := schedule.ScheduleDayResponse{
			DayOfWeek:     d.DayOfWeek,
			DayName:       time.Weekday(d.DayOfWeek).String(),
			IsWorkingDay:  d.IsWorkingDay,
			CheckInStart:  d.CheckInStart,
			CheckInEnd:    d.CheckInEnd,
			CheckOutStart: d.CheckOutStart,
			CheckOutEnd:   d.CheckOutEnd,
		}
		if !d.UpdatedAt.IsZero() {
			resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
		}
		responses = append(responses, resp)
	}
	return responses
}
