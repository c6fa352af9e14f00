package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
)

type Options struct {
	// SkipNonWorkingDays leaves days whose schedule is non-working without a
	// leave record.
	SkipNonWorkingDays bool
	Location           *time.Location
}

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	attendanceRepo      attendance.AttendanceRepository
	employeeRepo        employee.EmployeeRepository
	scheduleService     schedule.ScheduleService
	notificationService notification.Service
	fileService         file.FileService
	hub                 *changefeed.Hub

	skipNonWorkingDays bool
	location           *time.Location
	now                func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleService schedule.ScheduleService,
	notificationService notification.Service,
	fileService file.FileService,
	hub *changefeed.Hub,
	opts Options,
) leave.LeaveService {
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		attendanceRepo:         attendanceRepo,
		employeeRepo:           employeeRepo,
		scheduleService:        scheduleService,
		notificationService:    notificationService,
		fileService:            fileService,
		hub:                    hub,
		skipNonWorkingDays:     opts.SkipNonWorkingDays,
		location:               location,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := l.employeeRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	var attachmentURL *string
	if req.File != nil && req.FileHeader != nil {
		defer req.File.Close()
		url, err := l.fileService.UploadLeaveAttachment(ctx, req.UserID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		attachmentURL = &url
	}

	start, end := req.Dates()
	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		UserID:        req.UserID,
		StartDate:     start,
		EndDate:       end,
		Reason:        req.Reason,
		AttachmentURL: attachmentURL,
		Status:        leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	if created.EmployeeName == nil {
		created.EmployeeName = &emp.FullName
	}

	resp := leave.NewLeaveRequestResponse(created)
	l.publishRequest(changefeed.OpInsert, resp)
	l.notifyAdmins(ctx, created)

	return resp, nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string, requesterID string, isAdmin bool) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	// Employees only see their own requests.
	if !isAdmin && request.UserID != requesterID {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, userID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.UserID = &userID
	return l.ListLeaveRequests(ctx, filter)
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return leave.ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    totalPages,
		Showing:       showing,
		LeaveRequests: responses,
	}, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, requestID string, approverID string) (leave.MaterializationResponse, error) {
	approved, err := l.decide(ctx, requestID, leave.LeaveRequestStatusApproved, approverID)
	if err != nil {
		return leave.MaterializationResponse{}, err
	}

	result, matErr := l.materialize(ctx, approved, approved.CoveredDays())

	l.notifyRequester(ctx, approved, notification.TypeLeaveApproved,
		"Leave Request Approved",
		fmt.Sprintf("Your leave request for %s has been approved.", approved.DateRangeLabel()),
	)

	resp := leave.NewMaterializationResponse(result)
	if matErr != nil {
		return resp, matErr
	}
	return resp, nil
}

// Decline implements leave.LeaveService.
func (l *LeaveServiceImpl) Decline(ctx context.Context, requestID string, approverID string) (leave.LeaveRequestResponse, error) {
	declined, err := l.decide(ctx, requestID, leave.LeaveRequestStatusDeclined, approverID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.notifyRequester(ctx, declined, notification.TypeLeaveDeclined,
		"Leave Request Declined",
		fmt.Sprintf("Your leave request for %s has been declined.", declined.DateRangeLabel()),
	)

	return leave.NewLeaveRequestResponse(declined), nil
}

// decide runs the pending -> status transition. Only one caller can win it.
func (l *LeaveServiceImpl) decide(ctx context.Context, requestID string, status leave.LeaveRequestStatus, approverID string) (leave.LeaveRequest, error) {
	decided, err := l.LeaveRequestRepository.Decide(ctx, requestID, status, approverID, l.now())
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrLeaveAlreadyProcessed) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	l.publishRequest(changefeed.OpUpdate, leave.NewLeaveRequestResponse(decided))
	return decided, nil
}

func (l *LeaveServiceImpl) publishRequest(op changefeed.Op, resp leave.LeaveRequestResponse) {
	if l.hub == nil {
		return
	}
	l.hub.Publish(changefeed.Event{
		Table:  changefeed.TableLeaveRequests,
		Op:     op,
		UserID: resp.UserID,
		Record: resp,
	})
}

func (l *LeaveServiceImpl) notifyRequester(ctx context.Context, request leave.LeaveRequest, notifType notification.NotificationType, title, message string) {
	relatedType := notification.RelatedTypeLeaveRequest
	relatedID := request.ID
	_, err := l.notificationService.Notify(ctx, notification.CreateNotificationRequest{
		UserID:      request.UserID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	})
	if err != nil {
		slog.Warn("failed to notify leave requester",
			"leave_request_id", request.ID,
			"user_id", request.UserID,
			"type", notifType,
			"error", err,
		)
	}
}

func (l *LeaveServiceImpl) notifyAdmins(ctx context.Context, request leave.LeaveRequest) {
	adminIDs, err := l.employeeRepo.ListActiveIDsByRole(ctx, employee.RoleAdmin)
	if err != nil {
		slog.Warn("failed to list admins for leave notification", "leave_request_id", request.ID, "error", err)
		return
	}

	name := request.UserID
	if request.EmployeeName != nil {
		name = *request.EmployeeName
	}
	relatedType := notification.RelatedTypeLeaveRequest
	relatedID := request.ID

	for _, adminID := range adminIDs {
		_, err := l.notificationService.Notify(ctx, notification.CreateNotificationRequest{
			UserID:      adminID,
			Type:        notification.TypeLeaveRequest,
			Title:       "New Leave Request",
			Message:     fmt.Sprintf("%s submitted a leave request for %s.", name, request.DateRangeLabel()),
			RelatedType: &relatedType,
			RelatedID:   &relatedID,
		})
		if err != nil {
			slog.Warn("failed to notify admin of leave request",
				"leave_request_id", request.ID,
				"admin_id", adminID,
				"error", err,
			)
		}
	}
}
