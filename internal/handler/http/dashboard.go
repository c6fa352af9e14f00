package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDailySummary returns status counts for ?date=YYYY-MM-DD (default today)
	GetDailySummary(w http.ResponseWriter, r *http.Request)
	// GetWeeklyRate returns the attendance rate for ?week_start=YYYY-MM-DD (default this week)
	GetWeeklyRate(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	location         *time.Location
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, location *time.Location) DashboardHandler {
	if location == nil {
		location = time.UTC
	}
	return &dashboardHandlerImpl{dashboardService: dashboardService, location: location}
}

// parseDate parses YYYY-MM-DD in loc, defaults to today
func parseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Now().In(loc), true
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// GetDailySummary handles GET /dashboard/daily
func (h *dashboardHandlerImpl) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDate(r.URL.Query().Get("date"), h.location)
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.dashboardService.DailySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklyRate handles GET /dashboard/weekly
func (h *dashboardHandlerImpl) GetWeeklyRate(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := parseDate(r.URL.Query().Get("week_start"), h.location)
	if !ok {
		response.BadRequest(w, "week_start must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.dashboardService.WeeklyRate(r.Context(), weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
