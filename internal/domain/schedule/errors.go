package schedule

import "errors"

var (
	ErrScheduleDayNotFound = errors.New("no schedule configured for this weekday")
	ErrInvalidDayOfWeek    = errors.New("day_of_week must be between 0 and 6")
)
