package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type ScheduleDayRequest struct {
	DayOfWeek     int    `json:"day_of_week" yaml:"day_of_week"`
	IsWorkingDay  bool   `json:"is_working_day" yaml:"is_working_day"`
	CheckInStart  string `json:"check_in_start" yaml:"check_in_start"`
	CheckInEnd    string `json:"check_in_end" yaml:"check_in_end"`
	CheckOutStart string `json:"check_out_start" yaml:"check_out_start"`
	CheckOutEnd   string `json:"check_out_end" yaml:"check_out_end"`
}

type BulkUpdateScheduleRequest struct {
	Days []ScheduleDayRequest `json:"days" yaml:"days"`
}

// Validate checks weekday indexes and time formats. Window ordering
// (start <= end) is not enforced.
func (r *BulkUpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Days) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "at least one schedule day is required",
		})
		return errs
	}

	seen := make(map[int]bool, len(r.Days))
	for i, d := range r.Days {
		prefix := fmt.Sprintf("days[%d]", i)
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".day_of_week",
				Message: ErrInvalidDayOfWeek.Error(),
			})
		} else if seen[d.DayOfWeek] {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".day_of_week",
				Message: "duplicate day_of_week",
			})
		}
		seen[d.DayOfWeek] = true

		fields := []struct{ name, value string }{
			{"check_in_start", d.CheckInStart},
			{"check_in_end", d.CheckInEnd},
			{"check_out_start", d.CheckOutStart},
			{"check_out_end", d.CheckOutEnd},
		}
		for _, f := range fields {
			if !validator.IsValidClock(f.value) {
				errs = append(errs, validator.ValidationError{
					Field:   prefix + "." + f.name,
					Message: "must be HH:MM or HH:MM:SS",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntities converts the request into normalized ScheduleDay values.
// Call Validate first.
func (r *BulkUpdateScheduleRequest) ToEntities() ([]ScheduleDay, error) {
	days := make([]ScheduleDay, 0, len(r.Days))
	for _, d := range r.Days {
		day := ScheduleDay{DayOfWeek: d.DayOfWeek, IsWorkingDay: d.IsWorkingDay}
		var err error
		if day.CheckInStart, err = NormalizeClock(d.CheckInStart); err != nil {
			return nil, err
		}
		if day.CheckInEnd, err = NormalizeClock(d.CheckInEnd); err != nil {
			return nil, err
		}
		if day.CheckOutStart, err = NormalizeClock(d.CheckOutStart); err != nil {
			return nil, err
		}
		if day.CheckOutEnd, err = NormalizeClock(d.CheckOutEnd); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

type ScheduleDayResponse struct {
	DayOfWeek     int    `json:"day_of_week"`
	DayName       string `json:"day_name"`
	IsWorkingDay  bool   `json:"is_working_day"`
	CheckInStart  string `json:"check_in_start"`
	CheckInEnd    string `json:"check_in_end"`
	CheckOutStart string `json:"check_out_start"`
	CheckOutEnd   string `json:"check_out_end"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}
