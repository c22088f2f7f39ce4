package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/spf13/cobra"
)

// NewTiersCommand prints the effective wage policy.
func NewTiersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Show the effective wage policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout())

			policy, err := loadPolicy(rootOpts)
			if err != nil {
				return err
			}
			return formatter.Success(policy, func(w io.Writer) {
				writeTiersText(w, policy)
			})
		},
	}
}

func writeTiersText(w io.Writer, policy config.WageConfig) {
	fmt.Fprintf(w, "Timezone: %s\n", policy.Timezone)
	if policy.MonthlyCapMinutes > 0 {
		fmt.Fprintf(w, "Monthly cap: %d minutes\n", policy.MonthlyCapMinutes)
	} else {
		fmt.Fprintln(w, "Monthly cap: none")
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tHOURS\tRATE")
	for _, t := range policy.Tiers {
		fmt.Fprintf(tw, "%s\t%02d:00-%02d:00\t%s\n", t.Name, t.StartHour, t.EndHour, t.Rate)
	}
	_ = tw.Flush()
}
