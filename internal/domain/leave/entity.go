package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusDeclined LeaveRequestStatus = "declined"
)

var LeaveRequestStatusValues = []string{
	string(LeaveRequestStatusPending),
	string(LeaveRequestStatusApproved),
	string(LeaveRequestStatusDeclined),
}

// LeaveRequest entity. StartDate and EndDate are inclusive calendar dates.
type LeaveRequest struct {
	ID            string
	UserID        string
	StartDate     time.Time
	EndDate       time.Time
	Reason        *string
	AttachmentURL *string

	Status     LeaveRequestStatus // pending -> approved | declined, both terminal
	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// CoveredDays lists every calendar day in [StartDate, EndDate], one day at a time.
func (r LeaveRequest) CoveredDays() []time.Time {
	start := dateOnly(r.StartDate)
	end := dateOnly(r.EndDate)
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r LeaveRequest) DateRangeLabel() string {
	start := r.StartDate.Format("2006-01-02")
	end := r.EndDate.Format("2006-01-02")
	if start == end {
		return start
	}
	return start + " to " + end
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayOutcome is the result of materializing a single leave day.
type DayOutcome string

const (
	DayCreated DayOutcome = "created"
	// DayExists means the user already had a record for that date.
	DayExists  DayOutcome = "exists"
	DaySkipped DayOutcome = "skipped"
	DayFailed  DayOutcome = "failed"
	// DayPending days were never attempted because an earlier day failed.
	DayPending DayOutcome = "pending"
)

type DayResult struct {
	Date     time.Time
	Outcome  DayOutcome
	RecordID *string
	Error    *string
}

// MaterializationResult records each day's write outcome for one leave span.
type MaterializationResult struct {
	Request LeaveRequest
	Days    []DayResult
}

func (m MaterializationResult) Count(outcome DayOutcome) int {
	n := 0
	for _, d := range m.Days {
		if d.Outcome == outcome {
			n++
		}
	}
	return n
}

// SpanGap is an approved leave request whose covered days are not all backed
// by an attendance record.
type SpanGap struct {
	Request      LeaveRequest
	MissingDates []time.Time
}
