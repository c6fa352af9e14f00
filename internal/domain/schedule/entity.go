package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ScheduleDay is the expected working pattern for one weekday.
// DayOfWeek follows time.Weekday: 0=Sunday .. 6=Saturday.
type ScheduleDay struct {
	DayOfWeek     int
	IsWorkingDay  bool
	CheckInStart  string // HH:MM:SS
	CheckInEnd    string
	CheckOutStart string
	CheckOutEnd   string
	UpdatedAt     time.Time
}

// DayOfWeekFor returns the weekday index of date as seen in loc.
func DayOfWeekFor(date time.Time, loc *time.Location) int {
	if loc != nil {
		date = date.In(loc)
	}
	return int(date.Weekday())
}

// ParseClockMinutes converts an "HH:MM" or "HH:MM:SS" time-of-day value into
// minutes since midnight. Seconds are ignored.
func ParseClockMinutes(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("invalid second in %q", value)
		}
	}

	return hours*60 + minutes, nil
}

// NormalizeClock returns value in HH:MM:SS form.
func NormalizeClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if _, err := ParseClockMinutes(value); err != nil {
		return "", err
	}
	if strings.Count(value, ":") == 1 {
		value += ":00"
	}
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return "", err
	}
	return t.Format("15:04:05"), nil
}

// DefaultWeek is the seed used when no schedule file is supplied:
// Monday through Friday are working days.
func DefaultWeek() []ScheduleDay {
	days := make([]ScheduleDay, 0, 7)
	for d := 0; d < 7; d++ {
		days = append(days, ScheduleDay{
			DayOfWeek:     d,
			IsWorkingDay:  d >= int(time.Monday) && d <= int(time.Friday),
			CheckInStart:  "08:00:00",
			CheckInEnd:    "09:30:00",
			CheckOutStart: "17:00:00",
			CheckOutEnd:   "18:00:00",
		})
	}
	return days
}
