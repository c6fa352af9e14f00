package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewDailySummaryCommand creates the daily-summary command.
func NewDailySummaryCommand(rootOpts *RootOptions, load Loader) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:           "daily-summary",
		Short:         "Show attendance counts for one day",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, rootOpts, load, func(ctx context.Context, svc *Services) error {
				day, err := parseDay(date, svc.Location)
				if err != nil {
					return err
				}

				summary, err := svc.Dashboard.DailySummary(ctx, day)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to build daily summary", err)
				}

				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Success(summary, func(w io.Writer) {
					fmt.Fprintf(w, "%s  present=%d late=%d absent=%d on_leave=%d active=%d\n",
						summary.Date, summary.Present, summary.Late, summary.Absent, summary.OnLeave, summary.TotalActive)
				})
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to summarize (YYYY-MM-DD, default today)")
	return cmd
}

// NewWeeklyRateCommand creates the weekly-rate command.
func NewWeeklyRateCommand(rootOpts *RootOptions, load Loader) *cobra.Command {
	var weekStart string

	cmd := &cobra.Command{
		Use:           "weekly-rate",
		Short:         "Show the attendance rate for a Monday-start week",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, rootOpts, load, func(ctx context.Context, svc *Services) error {
				day, err := parseDay(weekStart, svc.Location)
				if err != nil {
					return err
				}

				rate, err := svc.Dashboard.WeeklyRate(ctx, day)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to compute weekly rate", err)
				}

				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Success(rate, func(w io.Writer) {
					fmt.Fprintf(w, "%s..%s  attended=%d expected=%d rate=%d%%\n",
						rate.WeekStart, rate.WeekEnd, rate.Attended, rate.Expected, rate.Rate)
				})
			})
		},
	}

	cmd.Flags().StringVar(&weekStart, "week-start", "", "any day in the week (YYYY-MM-DD, default this week)")
	return cmd
}
