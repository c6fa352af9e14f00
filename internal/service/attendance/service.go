package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	scheduleService schedule.ScheduleService
	hub             *changefeed.Hub
	location        *time.Location
	now             func() time.Time
}

func NewAttendanceService(repo attendance.AttendanceRepository, scheduleService schedule.ScheduleService, hub *changefeed.Hub, location *time.Location) attendance.AttendanceService {
	return newAttendanceService(repo, scheduleService, hub, location, time.Now)
}

func newAttendanceService(repo attendance.AttendanceRepository, scheduleService schedule.ScheduleService, hub *changefeed.Hub, location *time.Location, now func() time.Time) *AttendanceServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		scheduleService:      scheduleService,
		hub:                  hub,
		location:             location,
		now:                  now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)

	day, err := a.scheduleService.Resolve(ctx, nowLocal)
	if err != nil {
		if !errors.Is(err, schedule.ErrScheduleDayNotFound) {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
		}
		slog.Warn("no schedule configured for weekday, classifying check-in as present",
			"user_id", req.UserID,
			"day_of_week", schedule.DayOfWeekFor(nowLocal, a.location),
		)
		day = nil
	}

	record := attendance.Record{
		UserID:         req.UserID,
		AttendanceDate: attendance.DateOf(nowLocal, a.location),
		CheckIn:        nowLocal,
		Status:         Classify(nowLocal, day),
		Notes:          req.Notes,
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	resp := a.mapRecordToResponse(created)
	a.publish(changefeed.OpInsert, created.UserID, resp)

	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	nowLocal := a.now().In(a.location)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, attendance.DateOf(nowLocal, a.location))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if record.Status == attendance.StatusLeave {
		return attendance.AttendanceResponse{}, attendance.ErrLeaveRecord
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := nowLocal
	if checkOut.Before(record.CheckIn) {
		checkOut = record.CheckIn
	}

	updated, err := a.AttendanceRepository.SetCheckOut(ctx, record.ID, checkOut)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-out: %w", err)
	}

	resp := a.mapRecordToResponse(updated)
	a.publish(changefeed.OpUpdate, updated.UserID, resp)

	return resp, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	nowLocal := a.now().In(a.location)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, attendance.DateOf(nowLocal, a.location))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return a.mapRecordToResponse(record), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return a.mapRecordToResponse(record), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.UserID = &userID
	return a.List(ctx, filter)
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, a.mapRecordToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

func (a *AttendanceServiceImpl) publish(op changefeed.Op, userID string, record attendance.AttendanceResponse) {
	if a.hub == nil {
		return
	}
	a.hub.Publish(changefeed.Event{
		Table:  changefeed.TableAttendanceRecords,
		Op:     op,
		UserID: userID,
		Record: record,
	})
}

// mapRecordToResponse converts a Record entity to AttendanceResponse
func (a *AttendanceServiceImpl) mapRecordToResponse(r attendance.Record) attendance.AttendanceResponse {
	return attendance.NewAttendanceResponse(r, a.location)
}
