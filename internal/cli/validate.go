package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"github.com/spf13/cobra"
)

// ValidationResult is the validate command's payload.
type ValidationResult struct {
	Valid            bool                           `json:"valid"`
	SingleOpenRecord bool                           `json:"single_open_record"`
	Violations       []attendance.ViolationResponse `json:"violations"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var records string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check records for overlaps and extra open records",
		Long: `Runs the strict record check: at most one open record, which must be the
latest, and every closed record ending before the next one starts.
Exits with status 1 when a problem is found. Nothing is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, records, cmd)
		},
	}

	cmd.Flags().StringVar(&records, "records", "", "YAML or JSON records file (required)")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func runValidate(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout())

	policy, err := loadPolicy(rootOpts)
	if err != nil {
		return err
	}
	loc, err := policy.Location()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid wage policy", err)
	}

	ivs, err := readIntervals(path, loc)
	if err != nil {
		return err
	}

	violations := timecalc.FindViolations(ivs)
	if len(violations) > 0 {
		if err := reportViolations(formatter, violations, loc); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", len(violations)))
	}

	result := ValidationResult{
		Valid:            true,
		SingleOpenRecord: timecalc.HasSingleOpenRecord(ivs),
		Violations:       []attendance.ViolationResponse{},
	}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "OK: %d record(s) are consistent\n", len(ivs))
	})
}

func reportViolations(f *OutputFormatter, violations []timecalc.Violation, loc *time.Location) error {
	details := make([]attendance.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		details = append(details, attendance.ViolationResponse{
			Kind:    string(v.Kind),
			ClockIn: v.ClockIn.In(loc).Format(time.RFC3339),
		})
	}

	if f.JSON() {
		return f.Error("INCONSISTENT_RECORDS", attendance.InconsistencyMessage, details)
	}

	if err := f.Error("INCONSISTENT_RECORDS", attendance.InconsistencyMessage, nil); err != nil {
		return err
	}
	for _, d := range details {
		fmt.Fprintf(f.Writer, "  %-14s record clocked in at %s\n", d.Kind, d.ClockIn)
	}
	return nil
}
