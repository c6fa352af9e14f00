package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleDayColumns = `
	day_of_week, is_working_day,
	check_in_start::text, check_in_end::text,
	check_out_start::text, check_out_end::text,
	updated_at`

func scanScheduleDay(row pgx.Row) (schedule.ScheduleDay, error) {
	var day schedule.ScheduleDay
	err := row.Scan(
		&day.DayOfWeek, &day.IsWorkingDay,
		&day.CheckInStart, &day.CheckInEnd,
		&day.CheckOutStart, &day.CheckOutEnd,
		&day.UpdatedAt,
	)
	return day, err
}

// GetByDayOfWeek implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByDayOfWeek(ctx context.Context, dayOfWeek int) (schedule.ScheduleDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleDayColumns + ` FROM schedule_days WHERE day_of_week = $1`

	day, err := scanScheduleDay(q.QueryRow(ctx, query, dayOfWeek))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleDay{}, schedule.ErrScheduleDayNotFound
		}
		return schedule.ScheduleDay{}, fmt.Errorf("failed to get schedule day %d: %w", dayOfWeek, err)
	}

	return day, nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context) ([]schedule.ScheduleDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleDayColumns + ` FROM schedule_days ORDER BY day_of_week`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule days: %w", err)
	}
	defer rows.Close()

	var days []schedule.ScheduleDay
	for rows.Next() {
		day, err := scanScheduleDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule days: %w", err)
	}

	return days, nil
}

// Upsert implements schedule.ScheduleRepository. All rows are written in one transaction.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, days []schedule.ScheduleDay) error {
	query := `
		INSERT INTO schedule_days (
			day_of_week, is_working_day,
			check_in_start, check_in_end, check_out_start, check_out_end, updated_at
		) VALUES ($1, $2, $3::time, $4::time, $5::time, $6::time, NOW())
		ON CONFLICT (day_of_week) DO UPDATE SET
			is_working_day  = EXCLUDED.is_working_day,
			check_in_start  = EXCLUDED.check_in_start,
			check_in_end    = EXCLUDED.check_in_end,
			check_out_start = EXCLUDED.check_out_start,
			check_out_end   = EXCLUDED.check_out_end,
			updated_at      = NOW()
	`

	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		for _, day := range days {
			_, err := q.Exec(txCtx, query,
				day.DayOfWeek, day.IsWorkingDay,
				day.CheckInStart, day.CheckInEnd, day.CheckOutStart, day.CheckOutEnd,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert schedule day %d: %w", day.DayOfWeek, err)
			}
		}
		return nil
	})
}

// InsertMissing implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) InsertMissing(ctx context.Context, days []schedule.ScheduleDay) (int, error) {
	query := `
		INSERT INTO schedule_days (
			day_of_week, is_working_day,
			check_in_start, check_in_end, check_out_start, check_out_end
		) VALUES ($1, $2, $3::time, $4::time, $5::time, $6::time)
		ON CONFLICT (day_of_week) DO NOTHING
	`

	created := 0
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		for _, day := range days {
			tag, err := q.Exec(txCtx, query,
				day.DayOfWeek, day.IsWorkingDay,
				day.CheckInStart, day.CheckInEnd, day.CheckOutStart, day.CheckOutEnd,
			)
			if err != nil {
				return fmt.Errorf("failed to seed schedule day %d: %w", day.DayOfWeek, err)
			}
			created += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}
