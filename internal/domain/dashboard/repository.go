package dashboard

import (
	"context"
	"time"
)

// StatusCounts buckets attendance records by status.
type StatusCounts struct {
	Present int64
	Late    int64
	Absent  int64
	Leave   int64
}

func (c StatusCounts) Total() int64 {
	return c.Present + c.Late + c.Absent + c.Leave
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// CountActiveEmployees returns the number of employees with is_active = true
	CountActiveEmployees(ctx context.Context) (int64, error)

	// GetStatusCounts counts records with check_in in [from, to) in a single query
	GetStatusCounts(ctx context.Context, from, to time.Time) (*StatusCounts, error)
}
