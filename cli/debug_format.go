package cli

import (
	"fmt"

	"github.com/bitrise-steplib/steps-test262-report/resulttree"
	"github.com/spf13/cobra"
)

// NewDebugFormatCmd creates the debug-format command
func NewDebugFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-format",
		Short: "Describe the structure of the debug dump",
		Long:  `Prints the structure of the file written by the --debug flag.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resulttree.DumpDescription)
			return err
		},
	}
}
