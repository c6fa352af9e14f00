package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a record. A (user, date) collision returns ErrDuplicateRecord.
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDate returns ErrAttendanceNotFound when there is no record.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Record, error)

	// SetCheckOut only touches records whose check_out is still empty.
	SetCheckOut(ctx context.Context, id string, checkOut time.Time) (Record, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListDatesByUserBetween returns the attendance dates the user already has
	// records for, within [from, to].
	ListDatesByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]time.Time, error)
}
