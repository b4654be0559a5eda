package cli

import (
	"errors"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test262-report/suiterunner"
	"github.com/spf13/cobra"
)

// RunFlags holds the flags for the run command
type RunFlags struct {
	ReportFlags

	SuiteDir      string
	Python        string
	RunnerCommand string
	RunnerArgs    string
	LogPath       string
}

// NewRunCmd creates the run command
func NewRunCmd(logger log.Logger) *cobra.Command {
	flags := &RunFlags{
		ReportFlags: *newReportFlags(),
		Python:      "python2",
	}

	cmd := &cobra.Command{
		Use:   "run [logs.txt...] --suite dir --runner command --log run.log",
		Short: "Run test262 and report the results",
		Long: `Runs the test262 harness with the given runner command, then processes its log
like the process command does. Additional logs may be passed as arguments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.SuiteDir == "" || flags.RunnerCommand == "" || flags.LogPath == "" {
				return errors.New("--suite, --runner and --log are required")
			}

			cfg, err := flags.config(append(args, flags.LogPath))
			if err != nil {
				return err
			}

			cfg.RunSuite = true
			cfg.Suite = suiterunner.Config{
				Python:        flags.Python,
				SuiteDir:      flags.SuiteDir,
				RunnerCommand: flags.RunnerCommand,
				LogPath:       flags.LogPath,
				Args:          flags.RunnerArgs,
			}

			return runReport(cmd, logger, cfg)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.SuiteDir, "suite", "", "test262 checkout")
	cmd.Flags().StringVar(&flags.Python, "python", flags.Python, "Python 2 executable running the harness")
	cmd.Flags().StringVar(&flags.RunnerCommand, "runner", "", "Command the harness runs every test with")
	cmd.Flags().StringVar(&flags.RunnerArgs, "runner-args", "", "Additional harness arguments")
	cmd.Flags().StringVar(&flags.LogPath, "log", "", "Harness log file")

	return cmd
}
