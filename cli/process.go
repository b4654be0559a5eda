package cli

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test262-report/classifier"
	"github.com/bitrise-steplib/steps-test262-report/fileremover"
	"github.com/bitrise-steplib/steps-test262-report/output"
	"github.com/bitrise-steplib/steps-test262-report/report"
	"github.com/bitrise-steplib/steps-test262-report/step"
	"github.com/bitrise-steplib/steps-test262-report/suiterunner"
	"github.com/spf13/cobra"
)

// ReportFlags holds the flags shared by the commands producing a report
type ReportFlags struct {
	Output          string
	AllErrors       bool
	DebugDump       string
	Legacy          bool
	ToolName        string
	RuntimeName     string
	ClassifierRules string
	Parallelism     int
}

func newReportFlags() *ReportFlags {
	return &ReportFlags{
		ToolName:    report.DefaultToolName,
		RuntimeName: report.DefaultRuntimeName,
		Parallelism: 1,
	}
}

func (f *ReportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().BoolVarP(&f.AllErrors, "all", "a", false, "List all errors, not only those caused by the tool")
	cmd.Flags().StringVar(&f.DebugDump, "debug", "", "Write the whole result tree to this file (.json, .yml)")
	cmd.Flags().BoolVar(&f.Legacy, "es5", false, "Tests were run in test262 es5 mode")
	cmd.Flags().StringVar(&f.ToolName, "tool-name", f.ToolName, "Name of the tool under test")
	cmd.Flags().StringVar(&f.RuntimeName, "runtime-name", f.RuntimeName, "Name of the JavaScript runtime")
	cmd.Flags().StringVar(&f.ClassifierRules, "classifier-rules", "", "YAML file with failure classifier rules")
	cmd.Flags().IntVarP(&f.Parallelism, "parallelism", "j", f.Parallelism, "Number of logs processed at once")
}

func (f *ReportFlags) config(logPaths []string) (step.Config, error) {
	if f.Parallelism < 1 {
		return step.Config{}, fmt.Errorf("invalid parallelism: %d, should be at least 1", f.Parallelism)
	}

	rules := classifier.DefaultRules()
	if f.ClassifierRules != "" {
		var err error
		if rules, err = classifier.LoadRules(f.ClassifierRules); err != nil {
			return step.Config{}, err
		}
	}

	return step.Config{
		LogPaths:      logPaths,
		OutputPath:    f.Output,
		DebugDumpPath: f.DebugDump,
		Report: report.Options{
			ToolName:    f.ToolName,
			RuntimeName: f.RuntimeName,
			BaseURL:     report.BaseURLFor(f.Legacy),
			AllErrors:   f.AllErrors,
		},
		Rules:       rules,
		Parallelism: f.Parallelism,
	}, nil
}

// NewProcessCmd creates the process command
func NewProcessCmd(logger log.Logger) *cobra.Command {
	flags := newReportFlags()

	cmd := &cobra.Command{
		Use:   "process logs.txt... [-o output.md]",
		Short: "Convert test262 logs into a Markdown report",
		Long: `Processes test262 logs and converts them into a human readable Markdown report.

Examples:
  # Print the report of a single run
  test262-report process logs/run.log

  # Merge several runs into one report, listing runtime errors too
  test262-report process logs/a.log logs/b.log -o report.md --all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(args)
			if err != nil {
				return err
			}

			return runReport(cmd, logger, cfg)
		},
	}

	flags.register(cmd)

	return cmd
}

func runReport(cmd *cobra.Command, logger log.Logger, cfg step.Config) error {
	runner := suiterunner.NewRunner(logger, command.NewFactory(env.NewRepository()), fileremover.NewFileRemover())
	writer := output.NewWriter(fileutil.NewFileManager(), cmd.OutOrStdout())
	builder := step.NewReportBuilder(logger, runner, writer, nil)

	result, err := builder.Run(cfg)
	if err != nil {
		return err
	}

	if result.Failed() {
		logger.Warnf("%d of %d tests failed", result.Tree.Root.FailCount, result.Tree.Root.TotalCount)
	}

	return nil
}
