package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type SeedResult struct {
	Inserted int    `json:"inserted"`
	Source   string `json:"source"`
}

// NewSeedScheduleCommand creates the seed-schedule command.
func NewSeedScheduleCommand(rootOpts *RootOptions, load Loader) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-schedule",
		Short: "Insert schedule days that do not exist yet",
		Long: `Insert the weekly schedule. Existing weekdays are left untouched.

Without --file, Monday to Friday 08:00-09:30 check-in and 17:00-18:00
check-out are seeded. The file is a YAML list of days:

  - day_of_week: 1
    is_working_day: true
    check_in_start: "08:00"
    check_in_end: "09:30"
    check_out_start: "17:00"
    check_out_end: "18:00"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var days []schedule.ScheduleDay
			source := "default"
			if file != "" {
				parsed, err := LoadScheduleFile(file)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid schedule file", err)
				}
				days = parsed
				source = file
			}

			return withServices(cmd, rootOpts, load, func(ctx context.Context, svc *Services) error {
				inserted, err := svc.Schedule.Seed(ctx, days)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to seed schedule", err)
				}

				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				result := SeedResult{Inserted: inserted, Source: source}
				return out.Success(result, func(w io.Writer) {
					fmt.Fprintf(w, "Seeded %d schedule day(s) from %s\n", inserted, source)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML schedule file")
	return cmd
}

// LoadScheduleFile reads and validates a YAML list of schedule days.
func LoadScheduleFile(path string) ([]schedule.ScheduleDay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var req schedule.BulkUpdateScheduleRequest
	if err := yaml.Unmarshal(data, &req.Days); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req.ToEntities()
}
