package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	// StatusAbsent is derived at read time and never stored by check-in.
	StatusAbsent Status = "absent"
	StatusLeave  Status = "leave"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusAbsent),
	string(StatusLeave),
}

// Record is one attendance row. AttendanceDate is the local calendar date of
// CheckIn and, together with UserID, is unique.
type Record struct {
	ID             string
	UserID         string
	AttendanceDate time.Time
	CheckIn        time.Time
	CheckOut       *time.Time
	Status         Status
	Notes          *string
	LeaveRequestID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}

// Duration is the worked span of a record. Both parts are non-negative.
type Duration struct {
	Hours   int
	Minutes int
}

// CalculateDuration returns the time between check-in and check-out. Open
// records and inverted spans yield zero.
func CalculateDuration(r Record) Duration {
	if r.CheckOut == nil {
		return Duration{}
	}
	d := r.CheckOut.Sub(r.CheckIn)
	if d < 0 {
		return Duration{}
	}
	total := int(d / time.Minute)
	return Duration{Hours: total / 60, Minutes: total % 60}
}

// DateOf returns the calendar date of t in loc, as midnight UTC. This is the
// value stored in attendance_date.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
