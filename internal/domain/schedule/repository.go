package schedule

import "context"

type ScheduleRepository interface {
	// GetByDayOfWeek returns ErrScheduleDayNotFound when the weekday has no row.
	GetByDayOfWeek(ctx context.Context, dayOfWeek int) (ScheduleDay, error)
	List(ctx context.Context) ([]ScheduleDay, error)
	Upsert(ctx context.Context, days []ScheduleDay) error
	// InsertMissing only creates rows for weekdays that do not exist yet and
	// returns how many were created.
	InsertMissing(ctx context.Context, days []ScheduleDay) (int, error)
}
