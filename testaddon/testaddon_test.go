package testaddon

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-test262-report/models"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenNormalBundleName_WhenExport_ThenCreatesOutputStructure(t *testing.T) {
	runTest(t, "Test262", "Test262")
}

func Test_GivenBundleNameWithSpecialCharacters_WhenExport_ThenReplacesSpecialCharacters(t *testing.T) {
	runTest(t, "W/eir/d:Na::me/", "W-eir-d-Na--me-")
}

func runTest(t *testing.T, bundleName string, expectedBundleName string) {
	// Given
	outputDir := filepath.Join(t.TempDir(), "output")

	exporter := NewExporter(NewTestAddon(fileutil.NewFileManager(), log.NewLogger()))

	// When
	err := exporter.ExportReport(AddonExport{
		Tree:                  sampleTree(),
		Causes:                CauseNames{Tool: "UglifyJS", Runtime: "Node"},
		TargetAddonPath:       outputDir,
		TargetAddonBundleName: bundleName,
	})

	// Then
	assert.NoError(t, err)
	assert.True(t, isOutputStructureCorrectWithExpectedBundleName(outputDir, expectedBundleName))
}

func Test_GivenTree_WhenConvertedToTestReport_ThenCreatesSuitePerDirectory(t *testing.T) {
	// When
	report := NewTestReport(sampleTree(), CauseNames{Tool: "UglifyJS", Runtime: "Node"})

	// Then
	require.Len(t, report.TestSuites, 3)

	root := report.TestSuites[0]
	assert.Equal(t, "test262", root.Name)
	assert.Equal(t, 1, root.Tests)
	assert.Equal(t, 0, root.Failures)

	foo := report.TestSuites[1]
	assert.Equal(t, "foo", foo.Name)
	assert.Equal(t, 2, foo.Tests)
	assert.Equal(t, 1, foo.Failures)
	assert.Nil(t, foo.TestCases[0].Failure)
	require.NotNil(t, foo.TestCases[1].Failure)
	assert.Equal(t, "foo/baz", foo.TestCases[1].ClassName)
	assert.Equal(t, "Caused by UglifyJS", foo.TestCases[1].Failure.Message)
	assert.Equal(t, "line one\nline two", foo.TestCases[1].Failure.Value)

	nested := report.TestSuites[2]
	assert.Equal(t, "foo/bar", nested.Name)
	assert.Equal(t, "Caused by Node and by UglifyJS", nested.TestCases[0].Failure.Message)
}

func Test_GivenEmptyTree_WhenConvertedToTestReport_ThenHasNoSuites(t *testing.T) {
	assert.Empty(t, NewTestReport(resulttree.Tree{}, CauseNames{}).TestSuites)
}

// Helpers

func sampleTree() resulttree.Tree {
	return resulttree.Build([]models.Outcome{
		{Status: models.StatusOK, Summary: "top passed in strict mode"},
		{Status: models.StatusOK, Summary: "foo/qux passed in strict mode"},
		{
			Status:  models.StatusFail,
			Summary: "foo/baz failed in strict mode",
			Failure: &models.Failure{Lines: []string{"line one", "line two"}, CausedByTool: true},
		},
		{
			Status:  models.StatusFail,
			Summary: "foo/bar/deep failed in non-strict mode",
			Failure: &models.Failure{CausedByRuntime: true, CausedByTool: true},
		},
	})
}

func isOutputStructureCorrectWithExpectedBundleName(outputDir string, bundleName string) bool {
	jsonPath := filepath.Join(outputDir, bundleName, "test-info.json")
	reportPath := filepath.Join(outputDir, bundleName, ReportFileName)
	expectedPaths := []string{
		filepath.Join(outputDir, bundleName),
		reportPath,
		jsonPath,
	}

	for _, path := range expectedPaths {
		if isPathExists(path) == false {
			return false
		}
	}

	var report TestReport
	content, err := os.ReadFile(reportPath)
	if err != nil || xml.Unmarshal(content, &report) != nil || len(report.TestSuites) != 3 {
		return false
	}

	return exportedBundleNameFromFile(jsonPath) == bundleName
}

func exportedBundleNameFromFile(path string) string {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}

	jsonFile, _ := os.Open(path)

	defer jsonFile.Close()

	bytes, _ := io.ReadAll(jsonFile)

	var bundle testBundle
	_ = json.Unmarshal(bytes, &bundle)

	return bundle.BundleName
}

func isPathExists(path string) bool {
	isExist, _ := pathutil.NewPathChecker().IsPathExists(path)
	return isExist
}
