package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountActiveEmployees returns the number of active employees
func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}

// GetStatusCounts returns per-status record counts for check_in in [from, to) in single query
func (r *dashboardRepositoryImpl) GetStatusCounts(ctx context.Context, from, to time.Time) (*dashboard.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present') AS present,
			COUNT(*) FILTER (WHERE status = 'late')    AS late,
			COUNT(*) FILTER (WHERE status = 'absent')  AS absent,
			COUNT(*) FILTER (WHERE status = 'leave')   AS on_leave
		FROM attendance_records
		WHERE check_in >= $1 AND check_in < $2
	`

	var stats dashboard.StatusCounts
	err := q.QueryRow(ctx, query, from, to).Scan(
		&stats.Present, &stats.Late, &stats.Absent, &stats.Leave,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance status counts: %w", err)
	}
	return &stats, nil
}
