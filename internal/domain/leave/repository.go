package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// Decide moves a pending request to status. It returns
	// ErrLeaveAlreadyProcessed when the request is no longer pending and
	// ErrLeaveRequestNotFound when it does not exist.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, approverID string, at time.Time) (LeaveRequest, error)

	// ListApprovedEndingSince returns approved requests with end_date >= since.
	ListApprovedEndingSince(ctx context.Context, since time.Time) ([]LeaveRequest, error)
}
