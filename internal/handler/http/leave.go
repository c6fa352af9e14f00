package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	DeclineRequest(w http.ResponseWriter, r *http.Request)

	IncompleteSpans(w http.ResponseWriter, r *http.Request)
	RepairSpan(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	// spanLookback bounds IncompleteSpans when no since is given.
	spanLookback time.Duration
	location     *time.Location
}

func NewLeaveHandler(leaveService leave.LeaveService, spanLookback time.Duration, location *time.Location) LeaveHandler {
	if location == nil {
		location = time.UTC
	}
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		spanLookback: spanLookback,
		location:     location,
	}
}

// CreateRequest accepts either a JSON body or a multipart form with a 'data'
// JSON field and an optional 'attachment' file.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.SubmitLeaveRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("attachment")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if file != nil {
			req.File = file
			req.FileHeader = fileHeader
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	// Owner always comes from the token
	req.UserID = id.UserID

	leaveRequest, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leaveRequest)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID, ok := uuidParam(w, r, "Leave request")
	if !ok {
		return
	}

	result, err := l.leaveService.GetLeaveRequest(r.Context(), requestID, id.UserID, id.IsAdmin())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := l.leaveService.ListMyLeaveRequests(r.Context(), id.UserID, parseLeaveFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := parseLeaveFilter(r)
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}

	results, err := l.leaveService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ApproveRequest implements LeaveHandler. A partially materialized approval
// still returns the per-day outcome.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID, ok := uuidParam(w, r, "Leave request")
	if !ok {
		return
	}

	result, err := l.leaveService.Approve(r.Context(), requestID, id.UserID)
	if err != nil {
		if errors.Is(err, leave.ErrPartialMaterialization) {
			response.PartialFailure(w, err.Error(), result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// DeclineRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID, ok := uuidParam(w, r, "Leave request")
	if !ok {
		return
	}

	result, err := l.leaveService.Decline(r.Context(), requestID, id.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request declined", result)
}

// IncompleteSpans lists approved requests missing records. ?since=YYYY-MM-DD
func (l *LeaveHandlerImpl) IncompleteSpans(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-l.spanLookback)
	if s := r.URL.Query().Get("since"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, l.location)
		if err != nil {
			response.BadRequest(w, "since must be in YYYY-MM-DD format", nil)
			return
		}
		since = parsed
	}
	y, m, d := since.In(l.location).Date()

	gaps, err := l.leaveService.FindIncompleteSpans(r.Context(), time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, gaps)
}

// RepairSpan implements LeaveHandler.
func (l *LeaveHandlerImpl) RepairSpan(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "Leave request")
	if !ok {
		return
	}

	result, err := l.leaveService.RepairSpan(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, leave.ErrPartialMaterialization) {
			response.PartialFailure(w, err.Error(), result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave span repaired", result)
}

func parseLeaveFilter(r *http.Request) leave.LeaveRequestFilter {
	q := r.URL.Query()
	filter := leave.LeaveRequestFilter{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 20),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	return filter
}
