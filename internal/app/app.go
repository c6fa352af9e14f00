package app

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/notification"
	scheduleService "github.com/cmlabs-hris/attendance-backend-go/internal/service/schedule"
)

// App holds the wired services shared by the API server and attendancectl.
type App struct {
	Config  *config.Config
	DB      *database.DB
	Hub     *changefeed.Hub
	Storage *storage.LocalStorage

	Attendance   attendance.AttendanceService
	Leave        leave.LeaveService
	Schedule     schedule.ScheduleService
	Dashboard    dashboard.DashboardService
	Notification notification.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	loc := cfg.App.Location
	hub := changefeed.NewHub()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, hub, loc)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	fileSvc := file.NewFileService(fileStorage)

	return &App{
		Config:     cfg,
		DB:         db,
		Hub:        hub,
		Storage:    fileStorage,
		Attendance: attendanceService.NewAttendanceService(attendanceRepo, scheduleSvc, hub, loc),
		Leave: leaveService.NewLeaveService(
			leaveRequestRepo,
			attendanceRepo,
			employeeRepo,
			scheduleSvc,
			notificationSvc,
			fileSvc,
			hub,
			leaveService.Options{
				SkipNonWorkingDays: cfg.Leave.SkipNonWorkingDays,
				Location:           loc,
			},
		),
		Schedule: scheduleSvc,
		Dashboard: dashboardService.NewDashboardService(dashboardRepo, scheduleSvc, dashboardService.Options{
			WeeklyRateUseSchedule: cfg.Report.WeeklyRateUseSchedule,
			Location:              loc,
		}),
		Notification: notificationSvc,
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}
