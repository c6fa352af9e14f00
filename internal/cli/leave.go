package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

// NewLeaveGapsCommand creates the leave-gaps command.
func NewLeaveGapsCommand(rootOpts *RootOptions, load Loader) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:           "leave-gaps",
		Short:         "List approved leave requests with days missing a record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, rootOpts, load, func(ctx context.Context, svc *Services) error {
				from := time.Now().In(svc.Location).Add(-svc.SpanLookback)
				if since != "" {
					parsed, err := parseDay(since, svc.Location)
					if err != nil {
						return err
					}
					from = parsed
				}
				y, m, d := from.Date()

				gaps, err := svc.Leave.FindIncompleteSpans(ctx, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to find leave gaps", err)
				}

				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Success(gaps, func(w io.Writer) {
					if len(gaps) == 0 {
						fmt.Fprintln(w, "No incomplete leave spans")
						return
					}
					for _, g := range gaps {
						fmt.Fprintf(w, "%s  user=%s  %s..%s  missing=%s\n",
							g.LeaveRequest.ID,
							g.LeaveRequest.UserID,
							g.LeaveRequest.StartDate,
							g.LeaveRequest.EndDate,
							strings.Join(g.MissingDates, ","),
						)
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only requests ending on or after this date (YYYY-MM-DD)")
	return cmd
}

// NewRepairLeaveCommand creates the repair-leave command.
func NewRepairLeaveCommand(rootOpts *RootOptions, load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repair-leave <request-id>",
		Short:         "Write the missing leave records of an approved request",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validator.IsValidUUID(args[0]) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid request id %q: must be a UUID", args[0]))
			}

			return withServices(cmd, rootOpts, load, func(ctx context.Context, svc *Services) error {
				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

				result, err := svc.Leave.RepairSpan(ctx, args[0])
				if err != nil {
					if errors.Is(err, leave.ErrPartialMaterialization) {
						_ = out.Error(err.Error(), result)
						return WrapExitError(ExitFailure, "repair incomplete", err)
					}
					return WrapExitError(ExitCommandError, "failed to repair leave span", err)
				}

				return out.Success(result, func(w io.Writer) {
					fmt.Fprintf(w, "Leave request %s: created=%d existing=%d skipped=%d\n",
						result.LeaveRequest.ID, result.Created, result.Existing, result.Skipped)
					for _, d := range result.Days {
						fmt.Fprintf(w, "  %s  %s\n", d.Date, d.Outcome)
					}
				})
			})
		},
	}
	return cmd
}
