package schedule

import (
	"context"
	"time"
)

type ScheduleService interface {
	// Resolve looks up the ScheduleDay for date's weekday.
	Resolve(ctx context.Context, date time.Time) (*ScheduleDay, error)
	List(ctx context.Context) ([]ScheduleDayResponse, error)
	BulkUpdate(ctx context.Context, req BulkUpdateScheduleRequest) ([]ScheduleDayResponse, error)
	Seed(ctx context.Context, days []ScheduleDay) (int, error)
	// WorkingDayCount returns how many weekdays are flagged as working days.
	WorkingDayCount(ctx context.Context) (int, error)
}
