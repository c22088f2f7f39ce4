package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"github.com/spf13/cobra"
)

type summaryOptions struct {
	records string
	year    int
	month   int
	net     bool
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total worked time and wages for one month",
		Long: `Reads a records file and prints the month's worked time (capped at the
policy's monthly limit) and time-of-day wages per record.

Records that fail validation are reported instead of totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.records, "records", "", "YAML or JSON records file (required)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "year of the reporting month (required)")
	cmd.Flags().IntVar(&opts.month, "month", 0, "month 1-12 (required)")
	cmd.Flags().BoolVar(&opts.net, "net", false, "deduct breaks from counted time")
	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runSummary(rootOpts *RootOptions, opts *summaryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout())

	req := attendance.CalculateRequest{Year: opts.year, Month: opts.month, Net: opts.net}
	if err := req.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid period", err)
	}

	policy, err := loadPolicy(rootOpts)
	if err != nil {
		return err
	}
	agg, err := policy.Aggregator()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid wage policy", err)
	}

	ivs, err := readIntervals(opts.records, agg.Policy.Location())
	if err != nil {
		return err
	}

	loc := agg.Policy.Location()
	period := timecalc.MonthPeriod(opts.year, time.Month(opts.month), loc)

	if violations := timecalc.FindViolations(ivs); len(violations) > 0 {
		if err := reportViolations(formatter, violations, loc); err != nil {
			return err
		}
		return NewExitError(ExitFailure, attendance.InconsistencyMessage)
	}

	var summary timecalc.Summary
	if opts.net || policy.NetOfBreaks {
		summary = agg.SummarizeNet(period, ivs)
	} else {
		summary = agg.Summarize(period, ivs)
	}

	resp := attendance.NewSummaryResponse(summary, loc)
	return formatter.Success(resp, func(w io.Writer) {
		writeSummaryText(w, formatter, resp)
	})
}

func writeSummaryText(w io.Writer, f *OutputFormatter, resp attendance.SummaryResponse) {
	fmt.Fprintf(w, "Period: %s\n\n", resp.Period)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CLOCK IN\tWORKED\tWAGE\t")
	for _, l := range resp.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", l.ClockIn, l.WorkDuration, f.Number(l.Wage))
	}
	_ = tw.Flush()

	capped := ""
	if resp.Capped {
		capped = " (capped)"
	}
	fmt.Fprintf(w, "\nTotal worked: %s%s\n", resp.TotalWorkDuration, capped)
	fmt.Fprintf(w, "Total wage:   %s\n", f.Number(resp.TotalWage))
	fmt.Fprintf(w, "Records:      %d closed, %d open\n", resp.ClosedRecords, resp.OpenRecords)
}

func readIntervals(path string, loc *time.Location) ([]timecalc.Interval, error) {
	raw, err := LoadRecords(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot read records", err)
	}
	ivs, err := timecalc.ParseRecords(raw, loc)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid record", err)
	}
	return ivs, nil
}
