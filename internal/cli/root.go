package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/app"
	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Services are what the commands operate on.
type Services struct {
	Schedule     schedule.ScheduleService
	Leave        leave.LeaveService
	Dashboard    dashboard.DashboardService
	Location     *time.Location
	SpanLookback time.Duration
}

// Loader builds Services from an env file. The returned func releases them.
type Loader func(ctx context.Context, envFile string) (*Services, func(), error)

// DefaultLoader connects to the configured database.
func DefaultLoader(ctx context.Context, envFile string) (*Services, func(), error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return &Services{
		Schedule:     a.Schedule,
		Leave:        a.Leave,
		Dashboard:    a.Dashboard,
		Location:     cfg.App.Location,
		SpanLookback: cfg.Leave.SpanLookback,
	}, a.Close, nil
}

// NewRootCommand creates the root command for attendancectl.
func NewRootCommand(load Loader) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "attendancectl",
		Short: "Operate the attendance backend",
		Long:  "Administrative commands for schedules, leave reconciliation and attendance reports.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "env file to load (default .env)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSeedScheduleCommand(opts, load))
	cmd.AddCommand(NewLeaveGapsCommand(opts, load))
	cmd.AddCommand(NewRepairLeaveCommand(opts, load))
	cmd.AddCommand(NewDailySummaryCommand(opts, load))
	cmd.AddCommand(NewWeeklyRateCommand(opts, load))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// withServices loads services for the duration of fn.
func withServices(cmd *cobra.Command, opts *RootOptions, load Loader, fn func(ctx context.Context, svc *Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, release, err := load(ctx, opts.EnvFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize", err)
	}
	if release != nil {
		defer release()
	}
	if svc.Location == nil {
		svc.Location = time.UTC
	}

	return fn(ctx, svc)
}

// parseDay parses YYYY-MM-DD in loc; empty means today.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, NewExitError(ExitCommandError, fmt.Sprintf("invalid date %q: want YYYY-MM-DD", value))
	}
	return t, nil
}
