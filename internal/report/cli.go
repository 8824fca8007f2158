package report

import (
	"fmt"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/spf13/cobra"
)

// DefaultTimezone matches the service's default.
const DefaultTimezone = "Europe/Stockholm"

// rootOptions are the flags shared by every report command.
type rootOptions struct {
	file     string
	timezone string
	subject  string
	format   string
	now      func() time.Time
}

func (o *rootOptions) load() ([]worktime.RawInterval, worktime.Basis, error) {
	if o.format != FormatText && o.format != FormatJSON {
		return nil, worktime.Basis{}, fmt.Errorf("unknown format %q (must be text or json)", o.format)
	}
	b, err := worktime.NewBasis(o.timezone)
	if err != nil {
		return nil, worktime.Basis{}, err
	}
	raw, err := LoadFile(o.file)
	if err != nil {
		return nil, worktime.Basis{}, err
	}
	return raw, b, nil
}

// NewRootCmd creates the top-level "timesheet-report" command. Reports go to the command's
// output stream, skipped intervals to its error stream.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	root := &cobra.Command{
		Use:           "timesheet-report",
		Short:         "Day and month timesheets from an interval file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.file, "file", "", "YAML or JSON file of intervals (- for stdin)")
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", DefaultTimezone, "IANA timezone that defines local days")
	root.PersistentFlags().StringVar(&opts.subject, "subject", "", "Only report this subject_ref")
	root.PersistentFlags().StringVar(&opts.format, "format", FormatText, "Output format: text or json")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newMonthCmd(opts),
		newDayCmd(opts),
	)

	return root
}

func newMonthCmd(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Report one local calendar month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, b, err := opts.load()
			if err != nil {
				return err
			}

			w := b.MonthOf(opts.now())
			if month != "" {
				if w, err = worktime.ParseMonthWindow(month); err != nil {
					return err
				}
			}

			r := BuildMonth(raw, opts.subject, w, b)
			RenderDiagnostics(cmd.ErrOrStderr(), r.Diagnostics)
			return RenderMonth(cmd.OutOrStdout(), r, opts.format)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default: current local month)")

	return cmd
}

func newDayCmd(opts *rootOptions) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Report one local calendar day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, b, err := opts.load()
			if err != nil {
				return err
			}

			r, err := BuildDay(raw, opts.subject, day, b)
			if err != nil {
				return err
			}
			RenderDiagnostics(cmd.ErrOrStderr(), r.Diagnostics)
			return RenderDay(cmd.OutOrStdout(), r, opts.format)
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("day")

	return cmd
}
