package cli

import (
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test262-report/testcopy"
	"github.com/spf13/cobra"
)

// CopyFlags holds the flags for the copy command
type CopyFlags struct {
	From string
	To   string
}

// NewCopyCmd creates the copy command
func NewCopyCmd(logger log.Logger) *cobra.Command {
	flags := &CopyFlags{}

	cmd := &cobra.Command{
		Use:   "copy tests.txt... --from inputDir --to outputDir",
		Short: "Copy listed tests into a new directory",
		Long: `Copies the tests listed in the given files from an existing test262 directory
into a new one. Every line of a list file is the path of one test.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			copier := testcopy.NewCopier(fileutil.NewFileManager(), logger)
			copied, err := copier.Copy(args, flags.From, flags.To)
			if err != nil {
				return err
			}

			logger.Donef("Copied %d tests to %s", copied, flags.To)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.From, "from", "", "Path to copy tests from")
	cmd.Flags().StringVar(&flags.To, "to", "", "Path to copy tests to")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
