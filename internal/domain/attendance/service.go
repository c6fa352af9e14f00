package attendance

import (
	"context"
)

type AttendanceService interface {
	// CheckIn classifies and stores today's record for the user.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)

	// Today returns ErrAttendanceNotFound when the user has no record today.
	Today(ctx context.Context, userID string) (AttendanceResponse, error)

	ListMine(ctx context.Context, userID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Get returns ErrAttendanceNotFound for an unknown id.
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// List is the admin view over all users.
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
