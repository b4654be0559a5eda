package main

import (
	"os"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-steputils/v2/stepenv"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-test262-report/fileremover"
	"github.com/bitrise-steplib/steps-test262-report/output"
	"github.com/bitrise-steplib/steps-test262-report/step"
	"github.com/bitrise-steplib/steps-test262-report/suiterunner"
	"github.com/bitrise-steplib/steps-test262-report/testaddon"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	configParser, reportBuilder := createStep(logger)

	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	result, runErr := reportBuilder.Run(config)

	exportOpts := step.ExportOpts{
		TestFailed:    runErr != nil || result.Failed(),
		DeployDir:     config.DeployDir,
		Report:        result.Report,
		DebugDumpPath: config.DebugDumpPath,
		Tree:          result.Tree,
		Causes: testaddon.CauseNames{
			Tool:    config.Report.ToolName,
			Runtime: config.Report.RuntimeName,
		},
	}
	if err := reportBuilder.Export(exportOpts); err != nil {
		logger.Errorf("Export outputs: %s", err)
		return 1
	}

	if runErr != nil {
		logger.Errorf("Run: %s", runErr)
		return 1
	}

	return 0
}

func createStep(logger log.Logger) (step.ConfigParser, step.ReportBuilder) {
	envRepository := stepenv.NewRepository(env.NewRepository())
	inputParser := stepconf.NewInputParser(envRepository)
	commandFactory := command.NewFactory(envRepository)
	fileManager := fileutil.NewFileManager()

	runner := suiterunner.NewRunner(logger, commandFactory, fileremover.NewFileRemover())
	writer := output.NewWriter(fileManager, os.Stdout)
	testAddonExporter := testaddon.NewExporter(testaddon.NewTestAddon(fileManager, logger))
	outputExporter := output.NewExporter(envRepository, logger, fileManager, export.NewExporter(commandFactory), testAddonExporter)

	configParser := step.NewConfigParser(inputParser, logger, pathutil.NewPathModifier(), runner)
	reportBuilder := step.NewReportBuilder(logger, runner, writer, outputExporter)

	return configParser, reportBuilder
}
