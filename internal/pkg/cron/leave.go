package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
)

const JobDetectIncompleteLeaveSpans = "detect_incomplete_leave_spans"

// LeaveJobs watches approved leave spans for days that never got a record.
// It only reports; repair is an explicit admin action.
type LeaveJobs struct {
	leaveService leave.LeaveService
	interval     time.Duration
	lookback     time.Duration
	location     *time.Location
	now          func() time.Time
}

func NewLeaveJobs(leaveService leave.LeaveService, interval, lookback time.Duration, location *time.Location) *LeaveJobs {
	if location == nil {
		location = time.UTC
	}
	return &LeaveJobs{
		leaveService: leaveService,
		interval:     interval,
		lookback:     lookback,
		location:     location,
		now:          time.Now,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobDetectIncompleteLeaveSpans, j.interval, j.DetectIncompleteLeaveSpans)
}

func (j *LeaveJobs) DetectIncompleteLeaveSpans(ctx context.Context) error {
	// DATE columns compare against the calendar day, not the instant.
	y, m, d := j.now().In(j.location).Add(-j.lookback).Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	gaps, err := j.leaveService.FindIncompleteSpans(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to find incomplete leave spans: %w", err)
	}

	for _, gap := range gaps {
		slog.Warn("Cron: approved leave span is missing attendance records",
			"leave_request_id", gap.LeaveRequest.ID,
			"user_id", gap.LeaveRequest.UserID,
			"missing_dates", strings.Join(gap.MissingDates, ","),
		)
	}

	slog.Info("Cron: incomplete leave span check finished", "gaps", len(gaps), "since", since.Format("2006-01-02"))
	return nil
}
