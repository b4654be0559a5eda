package cli

import (
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the test262-report command with all of its subcommands.
func NewRootCmd() *cobra.Command {
	logger := log.NewLogger()

	cmd := &cobra.Command{
		Use:   "test262-report",
		Short: "test262 log processor",
		Long: `test262-report runs the ECMAScript conformance suite against a minifier
and converts the test run logs into a human readable Markdown report.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger.EnableDebugLog(verbose)
		},
	}

	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.AddCommand(
		NewProcessCmd(logger),
		NewRunCmd(logger),
		NewFilterCmd(),
		NewCopyCmd(logger),
		NewDebugFormatCmd(),
	)

	return cmd
}
