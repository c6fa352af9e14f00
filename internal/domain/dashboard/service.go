package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// DailySummary returns per-status counts for one calendar day
	DailySummary(ctx context.Context, date time.Time) (*DailySummaryResponse, error)

	// WeeklyRate returns the attendance rate for the Monday-based week containing weekStart
	WeeklyRate(ctx context.Context, weekStart time.Time) (*WeeklyRateResponse, error)
}
