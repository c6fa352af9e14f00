package leave

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const (
	MaxAttachmentSize = 5 << 20 // 5 MiB
	AttachmentBucket  = "leave-attachments"
)

var AllowedAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

type SubmitLeaveRequest struct {
	UserID    string  `json:"-"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
	Reason    *string `json:"reason,omitempty"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if r.FileHeader != nil {
		if r.FileHeader.Size > MaxAttachmentSize {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: ErrFileSizeExceeds.Error(),
			})
		}
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if !validator.IsInSlice(ext, AllowedAttachmentExts) {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: "attachment must be one of: " + strings.Join(AllowedAttachmentExts, ", "),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed start and end dates. Call after Validate.
func (r *SubmitLeaveRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int     `json:"total_days"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		EmployeeName:  r.EmployeeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		TotalDays:     len(r.CoveredDays()),
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		Status:        string(r.Status),
		ApprovedBy:    r.ApprovedBy,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ApprovedAt != nil {
		approvedAt := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

type ListLeaveRequestResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	Showing       string                 `json:"showing"`
	LeaveRequests []LeaveRequestResponse `json:"leave_requests"`
}

type DayResultResponse struct {
	Date     string  `json:"date"`
	Outcome  string  `json:"outcome"`
	RecordID *string `json:"record_id,omitempty"`
	Error    *string `json:"error,omitempty"`
}

type MaterializationResponse struct {
	LeaveRequest LeaveRequestResponse `json:"leave_request"`
	Created      int                  `json:"created"`
	Existing     int                  `json:"existing"`
	Skipped      int                  `json:"skipped"`
	Failed       int                  `json:"failed"`
	Days         []DayResultResponse  `json:"days"`
}

func NewMaterializationResponse(m MaterializationResult) MaterializationResponse {
	resp := MaterializationResponse{
		LeaveRequest: NewLeaveRequestResponse(m.Request),
		Created:      m.Count(DayCreated),
		Existing:     m.Count(DayExists),
		Skipped:      m.Count(DaySkipped),
		Failed:       m.Count(DayFailed),
		Days:         make([]DayResultResponse, 0, len(m.Days)),
	}
	for _, d := range m.Days {
		resp.Days = append(resp.Days, DayResultResponse{
			Date:     d.Date.Format("2006-01-02"),
			Outcome:  string(d.Outcome),
			RecordID: d.RecordID,
			Error:    d.Error,
		})
	}
	return resp
}

type SpanGapResponse struct {
	LeaveRequest LeaveRequestResponse `json:"leave_request"`
	MissingDates []string             `json:"missing_dates"`
}

func NewSpanGapResponse(g SpanGap) SpanGapResponse {
	resp := SpanGapResponse{
		LeaveRequest: NewLeaveRequestResponse(g.Request),
		MissingDates: make([]string, 0, len(g.MissingDates)),
	}
	for _, d := range g.MissingDates {
		resp.MissingDates = append(resp.MissingDates, d.Format("2006-01-02"))
	}
	return resp
}

type LeaveRequestFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // requests ending on or after
	EndDate   *string `json:"end_date,omitempty"`   // requests starting on or before

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"` // created_at, start_date, status
	SortOrder string `json:"sort_order"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.UserID != nil && *f.UserID != "" && !validator.IsValidUUID(*f.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, LeaveRequestStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(LeaveRequestStatusValues, ", "),
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		if !validator.IsInSlice(f.SortBy, []string{"created_at", "start_date", "status"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: created_at, start_date, status",
			})
		}
	} else {
		f.SortBy = "created_at"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
