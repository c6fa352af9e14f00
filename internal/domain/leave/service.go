package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string, requesterID string, isAdmin bool) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, userID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// Approve flips pending -> approved, then writes one leave record per
	// covered day and notifies the requester.
	Approve(ctx context.Context, requestID string, approverID string) (MaterializationResponse, error)
	// Decline flips pending -> declined and notifies the requester.
	Decline(ctx context.Context, requestID string, approverID string) (LeaveRequestResponse, error)

	// FindIncompleteSpans lists approved spans ending on or after since that
	// are missing attendance records.
	FindIncompleteSpans(ctx context.Context, since time.Time) ([]SpanGapResponse, error)
	// RepairSpan writes only the missing days of an approved request.
	RepairSpan(ctx context.Context, requestID string) (MaterializationResponse, error)
}
