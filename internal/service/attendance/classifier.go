package attendance

import (
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// Classify decides the status of a check-in. checkIn must already be in the
// application time zone. Comparison is at minute resolution and the end of
// the check-in window is inclusive. It only ever returns present or late;
// a missing or unreadable schedule yields present.
func Classify(checkIn time.Time, day *schedule.ScheduleDay) attendance.Status {
	if day == nil {
		return attendance.StatusPresent
	}

	deadline, err := schedule.ParseClockMinutes(day.CheckInEnd)
	if err != nil {
		slog.Warn("unparseable check_in_end, classifying as present",
			"day_of_week", day.DayOfWeek,
			"check_in_end", day.CheckInEnd,
			"error", err,
		)
		return attendance.StatusPresent
	}

	minutes := checkIn.Hour()*60 + checkIn.Minute()
	if minutes > deadline {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}
