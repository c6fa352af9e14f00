package dashboard

// ========== DAILY SUMMARY ==========

// DailySummaryResponse is the read-only status breakdown for a single day
type DailySummaryResponse struct {
	Present     int64  `json:"present"`
	Late        int64  `json:"late"`
	Absent      int64  `json:"absent"` // active employees without a record, floored at 0
	OnLeave     int64  `json:"on_leave"`
	TotalActive int64  `json:"total_active"`
	Date        string `json:"date"` // Format: "YYYY-MM-DD"
}

// ========== WEEKLY RATE ==========

// WeeklyRateResponse is the attendance rate over a Monday-start week
type WeeklyRateResponse struct {
	WeekStart string `json:"week_start"` // Format: "YYYY-MM-DD", always a Monday
	WeekEnd   string `json:"week_end"`   // Format: "YYYY-MM-DD", always a Sunday
	Attended  int64  `json:"attended"`   // present + late
	Expected  int64  `json:"expected"`
	Rate      int    `json:"rate"` // whole percent
}
