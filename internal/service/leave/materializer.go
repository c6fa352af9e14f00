package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
)

// materialize writes one leave record per day. Every insert stands on its own:
// the first failure stops the loop, earlier days stay written and the rest are
// reported as pending.
func (l *LeaveServiceImpl) materialize(ctx context.Context, request leave.LeaveRequest, days []time.Time) (leave.MaterializationResult, error) {
	result := leave.MaterializationResult{
		Request: request,
		Days:    make([]leave.DayResult, 0, len(days)),
	}

	var failure error
	for _, day := range days {
		if failure != nil {
			result.Days = append(result.Days, leave.DayResult{Date: day, Outcome: leave.DayPending})
			continue
		}

		dayResult, err := l.materializeDay(ctx, request, day)
		result.Days = append(result.Days, dayResult)
		if err != nil {
			failure = fmt.Errorf("%w: %s: %v", leave.ErrPartialMaterialization, day.Format("2006-01-02"), err)
			slog.Error("leave materialization stopped",
				"leave_request_id", request.ID,
				"user_id", request.UserID,
				"date", day.Format("2006-01-02"),
				"error", err,
			)
		}
	}

	return result, failure
}

func (l *LeaveServiceImpl) materializeDay(ctx context.Context, request leave.LeaveRequest, day time.Time) (leave.DayResult, error) {
	working, err := l.isWorkingDay(ctx, day)
	if err != nil {
		msg := err.Error()
		return leave.DayResult{Date: day, Outcome: leave.DayFailed, Error: &msg}, err
	}
	if !working {
		return leave.DayResult{Date: day, Outcome: leave.DaySkipped}, nil
	}

	requestID := request.ID
	created, err := l.attendanceRepo.Create(ctx, attendance.Record{
		UserID:         request.UserID,
		AttendanceDate: day,
		CheckIn:        l.startOfDay(day),
		Status:         attendance.StatusLeave,
		Notes:          request.Reason,
		LeaveRequestID: &requestID,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return leave.DayResult{Date: day, Outcome: leave.DayExists}, nil
		}
		msg := err.Error()
		return leave.DayResult{Date: day, Outcome: leave.DayFailed, Error: &msg}, err
	}

	if l.hub != nil {
		l.hub.Publish(changefeed.Event{
			Table:  changefeed.TableAttendanceRecords,
			Op:     changefeed.OpInsert,
			UserID: created.UserID,
			Record: attendance.NewAttendanceResponse(created, l.location),
		})
	}

	recordID := created.ID
	return leave.DayResult{Date: day, Outcome: leave.DayCreated, RecordID: &recordID}, nil
}

// isWorkingDay always reports true unless non-working days are skipped.
// Weekdays with no schedule row count as working.
func (l *LeaveServiceImpl) isWorkingDay(ctx context.Context, day time.Time) (bool, error) {
	if !l.skipNonWorkingDays {
		return true, nil
	}
	// Noon keeps the weekday stable whatever the zone offset.
	sd, err := l.scheduleService.Resolve(ctx, time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, l.location))
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleDayNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to resolve schedule: %w", err)
	}
	return sd.IsWorkingDay, nil
}

func (l *LeaveServiceImpl) startOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, l.location)
}

// missingDays returns the covered days of request without any attendance
// record, ignoring non-working days when those are skipped.
func (l *LeaveServiceImpl) missingDays(ctx context.Context, request leave.LeaveRequest) ([]time.Time, error) {
	covered := request.CoveredDays()
	if len(covered) == 0 {
		return nil, nil
	}

	existing, err := l.attendanceRepo.ListDatesByUserBetween(ctx, request.UserID, covered[0], covered[len(covered)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance dates: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		have[d.Format("2006-01-02")] = struct{}{}
	}

	var missing []time.Time
	for _, day := range covered {
		if _, ok := have[day.Format("2006-01-02")]; ok {
			continue
		}
		working, err := l.isWorkingDay(ctx, day)
		if err != nil {
			return nil, err
		}
		if working {
			missing = append(missing, day)
		}
	}
	return missing, nil
}

// FindIncompleteSpans implements leave.LeaveService.
func (l *LeaveServiceImpl) FindIncompleteSpans(ctx context.Context, since time.Time) ([]leave.SpanGapResponse, error) {
	requests, err := l.LeaveRequestRepository.ListApprovedEndingSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	gaps := make([]leave.SpanGapResponse, 0)
	for _, request := range requests {
		missing, err := l.missingDays(ctx, request)
		if err != nil {
			return nil, err
		}
		if len(missing) == 0 {
			continue
		}
		gaps = append(gaps, leave.NewSpanGapResponse(leave.SpanGap{
			Request:      request,
			MissingDates: missing,
		}))
	}

	return gaps, nil
}

// RepairSpan implements leave.LeaveService.
func (l *LeaveServiceImpl) RepairSpan(ctx context.Context, requestID string) (leave.MaterializationResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.MaterializationResponse{}, err
		}
		return leave.MaterializationResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.Status != leave.LeaveRequestStatusApproved {
		return leave.MaterializationResponse{}, leave.ErrLeaveNotApproved
	}

	missing, err := l.missingDays(ctx, request)
	if err != nil {
		return leave.MaterializationResponse{}, err
	}

	result, matErr := l.materialize(ctx, request, missing)
	slog.Info("leave span repaired",
		"leave_request_id", request.ID,
		"missing", len(missing),
		"created", result.Count(leave.DayCreated),
	)

	return leave.NewMaterializationResponse(result), matErr
}
