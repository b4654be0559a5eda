package step

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	v1fileutil "github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-test262-report/classifier"
	"github.com/bitrise-steplib/steps-test262-report/logparser"
	"github.com/bitrise-steplib/steps-test262-report/output"
	"github.com/bitrise-steplib/steps-test262-report/report"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
	"github.com/bitrise-steplib/steps-test262-report/suiterunner"
	"github.com/bitrise-steplib/steps-test262-report/testaddon"
	"github.com/kballard/go-shellquote"
	"golang.org/x/sync/errgroup"
)

// Input ...
type Input struct {
	// Report Parameters
	LogPaths            string `env:"log_paths"`
	OutputPath          string `env:"output_path"`
	IncludeAllErrors    bool   `env:"include_all_errors,opt[yes,no]"`
	DebugDumpPath       string `env:"debug_dump_path"`
	LegacySuite         bool   `env:"legacy_suite,opt[yes,no]"`
	ToolName            string `env:"tool_name,required"`
	RuntimeName         string `env:"runtime_name,required"`
	ClassifierRulesPath string `env:"classifier_rules_path"`
	Parallelism         int    `env:"parallelism,required"`

	// Suite Run Configs
	RunSuite          bool   `env:"run_suite,opt[yes,no]"`
	SuiteDir          string `env:"suite_dir"`
	Python            string `env:"python"`
	RunnerCommand     string `env:"runner_command"`
	RunnerArgs        string `env:"runner_args"`
	Runtime           string `env:"runtime"`
	MinRuntimeVersion string `env:"min_runtime_version"`
	SuiteLogPath      string `env:"suite_log_path"`

	// Debug
	Verbose bool `env:"verbose,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	LogPaths      []string
	OutputPath    string
	DebugDumpPath string
	Report        report.Options
	Rules         []classifier.Rule
	Parallelism   int

	RunSuite bool
	Suite    suiterunner.Config

	DeployDir string
}

// ConfigParser ...
type ConfigParser struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	pathModifier pathutil.PathModifier
	runner       suiterunner.Runner
}

// NewConfigParser ...
func NewConfigParser(inputParser stepconf.InputParser, logger log.Logger, pathModifier pathutil.PathModifier, runner suiterunner.Runner) ConfigParser {
	return ConfigParser{
		inputParser:  inputParser,
		logger:       logger,
		pathModifier: pathModifier,
		runner:       runner,
	}
}

// ProcessConfig ...
func (p ConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	p.logger.Println()

	p.logger.EnableDebugLog(input.Verbose)

	if input.Parallelism < 1 {
		return Config{}, fmt.Errorf("invalid Parallelism (parallelism): %d, should be at least 1", input.Parallelism)
	}

	logPaths, err := shellquote.Split(input.LogPaths)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse Log paths (log_paths): %w", err)
	}

	if input.RunSuite {
		if input.SuiteDir == "" || input.Python == "" || input.RunnerCommand == "" || input.SuiteLogPath == "" {
			return Config{}, errors.New("Run suite (run_suite) requires suite_dir, python, runner_command and suite_log_path")
		}
		logPaths = append(logPaths, input.SuiteLogPath)
	}

	if len(logPaths) == 0 {
		return Config{}, errors.New("no log to process: set Log paths (log_paths) or enable Run suite (run_suite)")
	}

	for i, pth := range logPaths {
		absPth, err := p.pathModifier.AbsPath(pth)
		if err != nil {
			return Config{}, fmt.Errorf("failed to get absolute log path (%s): %w", pth, err)
		}
		logPaths[i] = absPth
	}

	rules := classifier.DefaultRules()
	if input.ClassifierRulesPath != "" {
		rules, err = classifier.LoadRules(input.ClassifierRulesPath)
		if err != nil {
			return Config{}, err
		}
		p.logger.Printf("- classifier rules: %d", len(rules))
	}

	var runtimeVersion string
	if input.Runtime != "" {
		ver, err := p.runner.RuntimeVersion(input.Runtime)
		if err != nil {
			return Config{}, fmt.Errorf("failed to determine runtime version: %w", err)
		}
		p.logger.Printf("- runtime version: %s", ver.Original())

		if err := suiterunner.CheckMinimumVersion(ver, input.MinRuntimeVersion); err != nil {
			return Config{}, err
		}
		runtimeVersion = ver.Original()
	}
	p.logger.Println()

	return Config{
		LogPaths:      logPaths,
		OutputPath:    input.OutputPath,
		DebugDumpPath: input.DebugDumpPath,
		Report: report.Options{
			ToolName:       input.ToolName,
			RuntimeName:    input.RuntimeName,
			BaseURL:        report.BaseURLFor(input.LegacySuite),
			AllErrors:      input.IncludeAllErrors,
			RuntimeVersion: runtimeVersion,
		},
		Rules:       rules,
		Parallelism: input.Parallelism,

		RunSuite: input.RunSuite,
		Suite: suiterunner.Config{
			Python:        input.Python,
			SuiteDir:      input.SuiteDir,
			RunnerCommand: input.RunnerCommand,
			LogPath:       input.SuiteLogPath,
			Args:          input.RunnerArgs,
		},

		DeployDir: input.DeployDir,
	}, nil
}

// ReportBuilder ...
type ReportBuilder struct {
	logger         log.Logger
	runner         suiterunner.Runner
	writer         output.Writer
	outputExporter output.Exporter
}

// NewReportBuilder ...
func NewReportBuilder(logger log.Logger, runner suiterunner.Runner, writer output.Writer, outputExporter output.Exporter) ReportBuilder {
	return ReportBuilder{
		logger:         logger,
		runner:         runner,
		writer:         writer,
		outputExporter: outputExporter,
	}
}

// Result ...
type Result struct {
	Tree   resulttree.Tree
	Report string
	// FailedLogs lists the logs excluded from the report.
	FailedLogs []string
}

// Failed reports whether any test failed or any log could not be processed.
func (r Result) Failed() bool {
	return len(r.FailedLogs) > 0 || (r.Tree.Root != nil && r.Tree.Root.FailCount > 0)
}

type logResult struct {
	result logparser.Result
	err    error
}

// Run runs the suite if configured, then builds, renders and writes the report.
// Logs that fail to parse are left out of the report and reported in the returned error.
func (b ReportBuilder) Run(cfg Config) (Result, error) {
	if cfg.RunSuite {
		if err := b.runSuite(cfg.Suite); err != nil {
			return Result{}, err
		}
	}

	b.logger.Infof("Processing %d log(s)", len(cfg.LogPaths))

	results := b.tokenize(cfg.LogPaths, cfg.Parallelism, logparser.NewParser(classifier.NewClassifier(cfg.Rules)))

	var (
		builder    = resulttree.NewBuilder()
		failedLogs []string
		errs       []error
	)
	for i, pth := range cfg.LogPaths {
		res := results[i]
		if res.err != nil {
			b.logger.Errorf("Failed to process %s: %s", pth, res.err)
			failedLogs = append(failedLogs, pth)
			errs = append(errs, fmt.Errorf("%s: %w", pth, res.err))
			continue
		}

		b.printLogSummary(pth, res.result)
		builder.Add(res.result.Outcomes...)
	}

	if len(failedLogs) == len(cfg.LogPaths) {
		return Result{FailedLogs: failedLogs}, fmt.Errorf("none of the logs could be processed: %w", errors.Join(errs...))
	}

	tree := builder.Tree()
	for _, outcome := range tree.Unattributed {
		b.logger.Errorf("Test result without test path at log line %d: %s", outcome.SourceLine+1, outcome.Summary)
	}

	content := report.Render(tree, cfg.Report)
	if err := b.writer.WriteReport(cfg.OutputPath, content); err != nil {
		return Result{}, err
	}
	if cfg.OutputPath != "" {
		b.logger.Donef("Report written to %s", cfg.OutputPath)
	}

	if cfg.DebugDumpPath != "" {
		if err := b.writer.WriteDebugDump(cfg.DebugDumpPath, tree, cfg.Report.BaseURL); err != nil {
			return Result{}, err
		}
		b.logger.Donef("Debug dump written to %s", cfg.DebugDumpPath)
	}

	result := Result{
		Tree:       tree,
		Report:     content,
		FailedLogs: failedLogs,
	}

	if len(errs) > 0 {
		return result, fmt.Errorf("%d of %d logs could not be processed: %w", len(errs), len(cfg.LogPaths), errors.Join(errs...))
	}

	return result, nil
}

func (b ReportBuilder) runSuite(cfg suiterunner.Config) error {
	b.logger.Infof("Running test262")

	out, err := b.runner.Run(cfg)
	if err != nil {
		printLastLinesOfHarnessLog(b.logger, string(out.RawOut), false)
		return err
	}

	if out.ExitCode != 0 {
		b.logger.Warnf("test262 harness exit code: %d", out.ExitCode)
	}
	printLastLinesOfHarnessLog(b.logger, string(out.RawOut), out.ExitCode == 0)
	b.logger.Println()

	return nil
}

// tokenize reads and tokenizes every log with at most parallelism logs in flight.
// Results keep the order of paths.
func (b ReportBuilder) tokenize(paths []string, parallelism int, parser logparser.Parser) []logResult {
	results := make([]logResult, len(paths))

	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, pth := range paths {
		g.Go(func() error {
			content, err := v1fileutil.ReadStringFromFile(pth)
			if err != nil {
				results[i] = logResult{err: fmt.Errorf("failed to read log: %w", err)}
				return nil
			}

			b.logger.Debugf("Tokenizing %s", filepath.Base(pth))

			result, err := parser.Tokenize(content)
			results[i] = logResult{result: result, err: err}
			return nil
		})
	}

	// Tasks record their errors in results.
	_ = g.Wait()

	return results
}

func (b ReportBuilder) printLogSummary(pth string, result logparser.Result) {
	for _, line := range result.Unexpected {
		b.logger.Warnf("Unexpected message at line %d: %s", line.Index, line.Text)
	}

	b.logger.Printf("%s:", pth)
	b.logger.Printf("- %d lines of logs", result.Stats.Lines)
	b.logger.Printf("- %d tests found", result.Stats.Outcomes)
	b.logger.Printf("- %d errors found", result.Stats.Failures)
	b.logger.Printf("- Failure rate: %g%%", result.Stats.FailureRate())
}

// ExportOpts ...
type ExportOpts struct {
	TestFailed bool

	DeployDir     string
	Report        string
	DebugDumpPath string

	Tree   resulttree.Tree
	Causes testaddon.CauseNames
}

// Export ...
func (b ReportBuilder) Export(opts ExportOpts) error {
	// export test run status
	b.outputExporter.ExportTestRunResult(opts.TestFailed)

	if opts.DeployDir != "" && opts.Report != "" {
		if err := b.outputExporter.ExportReport(opts.DeployDir, opts.Report); err != nil {
			return err
		}
	}

	if opts.DeployDir != "" && opts.DebugDumpPath != "" {
		b.outputExporter.ExportDebugDump(opts.DeployDir, opts.DebugDumpPath)
	}

	if opts.Tree.Root != nil {
		b.outputExporter.ExportTestResults(opts.Tree, opts.Causes)
	}

	return nil
}
