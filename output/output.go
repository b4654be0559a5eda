package output

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
	"github.com/bitrise-steplib/steps-test262-report/testaddon"
)

// Exported step outputs.
const (
	ReportPathEnvKey    = "TEST262_REPORT_PATH"
	ResultEnvKey        = "TEST262_RESULT"
	DebugDumpZipEnvKey  = "TEST262_DEBUG_DUMP_ZIP_PATH"
	reportFileName      = "test262-report.md"
	testAddonBundleName = "test262"
)

// Exporter ...
type Exporter interface {
	ExportReport(deployDir, content string) error
	ExportTestRunResult(failed bool)
	ExportDebugDump(deployDir, dumpPath string)
	ExportTestResults(tree resulttree.Tree, causes testaddon.CauseNames)
}

type exporter struct {
	envRepository     env.Repository
	logger            log.Logger
	fileManager       fileutil.FileManager
	outputExporter    export.Exporter
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, fileManager fileutil.FileManager, outputExporter export.Exporter, testAddonExporter testaddon.Exporter) Exporter {
	return &exporter{
		envRepository:     envRepository,
		logger:            logger,
		fileManager:       fileManager,
		outputExporter:    outputExporter,
		testAddonExporter: testAddonExporter,
	}
}

func (e exporter) ExportTestRunResult(failed bool) {
	status := "succeeded"
	if failed {
		status = "failed"
	}
	if err := e.envRepository.Set(ResultEnvKey, status); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ResultEnvKey, err)
	}
}

// ExportReport saves the report into the deploy dir and exposes its path.
func (e exporter) ExportReport(deployDir, content string) error {
	deployPth := filepath.Join(deployDir, reportFileName)
	if err := e.fileManager.Write(deployPth, content, 0644); err != nil {
		return fmt.Errorf("failed to save report to (%s): %w", deployPth, err)
	}

	if err := e.envRepository.Set(ReportPathEnvKey, deployPth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ReportPathEnvKey, err)
	}

	return nil
}

func (e exporter) ExportDebugDump(deployDir, dumpPath string) {
	zipPath := filepath.Join(deployDir, filepath.Base(dumpPath)+".zip")
	if err := e.outputExporter.ExportOutputFilesZip(DebugDumpZipEnvKey, []string{dumpPath}, zipPath); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", DebugDumpZipEnvKey, err)
	}
}

// ExportTestResults writes the JUnit report for the test addon, if the per step result dir is set.
func (e exporter) ExportTestResults(tree resulttree.Tree, causes testaddon.CauseNames) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if len(addonResultPath) == 0 {
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.testAddonExporter.ExportReport(testaddon.AddonExport{
		Tree:                  tree,
		Causes:                causes,
		TargetAddonPath:       addonResultPath,
		TargetAddonBundleName: testAddonBundleName,
	}); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}
