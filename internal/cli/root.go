package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string // "json" | "text"
	PolicyFile string
	Locale     string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the timecalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "timecalc",
		Short: "Offline attendance totals and wage calculation",
		Long: `timecalc computes monthly worked time and time-of-day wages from a file of
clock-in/clock-out records, using the same engine as the attendance API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := language.Parse(opts.Locale); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid locale %q", opts.Locale), err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.PolicyFile, "policy", "", "wage policy YAML file (defaults apply when empty)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "en", "locale for number grouping in text output")

	// Add subcommands
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTiersCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
