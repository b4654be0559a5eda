package testaddon

import (
	"encoding/xml"
	"strings"

	"github.com/bitrise-steplib/steps-test262-report/models"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
)

const rootSuiteName = "test262"

// TestReport is the JUnit document read by the test report addon.
type TestReport struct {
	XMLName    xml.Name    `xml:"testsuites"`
	TestSuites []TestSuite `xml:"testsuite"`
}

// TestSuite groups the test cases of one directory.
type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Skipped   int        `xml:"skipped,attr"`
	Time      float64    `xml:"time,attr"`
	TestCases []TestCase `xml:"testcase"`
}

// TestCase is a single strict or non-strict run of a test file.
type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      float64  `xml:"time,attr"`
	Failure   *Failure `xml:"failure,omitempty"`
}

// Failure ...
type Failure struct {
	XMLName xml.Name `xml:"failure,omitempty"`
	Message string   `xml:"message,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// NewTestReport converts tree into one test suite per directory holding test files.
// Directories are visited depth first in their first seen order.
func NewTestReport(tree resulttree.Tree, causes CauseNames) TestReport {
	var report TestReport
	if tree.Root != nil {
		collectSuites(&report, tree.Root, "", causes)
	}
	return report
}

// CauseNames names the failure causes in failure messages.
type CauseNames struct {
	Tool    string
	Runtime string
}

func collectSuites(report *TestReport, node *resulttree.Node, path string, causes CauseNames) {
	if node.Tests.Len() > 0 {
		name := strings.TrimSuffix(path, "/")
		if name == "" {
			name = rootSuiteName
		}

		suite := TestSuite{Name: name}
		for _, fileName := range node.Tests.Keys() {
			records, _ := node.Tests.Get(fileName)
			for _, record := range records {
				testCase := TestCase{
					Name:      record.Summary,
					ClassName: record.TestPath(),
				}
				if record.Failed() {
					testCase.Failure = newFailure(record, causes)
					suite.Failures++
				}
				suite.TestCases = append(suite.TestCases, testCase)
			}
		}
		suite.Tests = len(suite.TestCases)

		report.TestSuites = append(report.TestSuites, suite)
	}

	for _, dir := range node.Dirs.Keys() {
		child, _ := node.Dirs.Get(dir)
		collectSuites(report, child, path+dir, causes)
	}
}

func newFailure(record models.Outcome, causes CauseNames) *Failure {
	failure := &Failure{}

	switch {
	case record.CausedByRuntime() && record.CausedByTool():
		failure.Message = "Caused by " + causes.Runtime + " and by " + causes.Tool
	case record.CausedByTool():
		failure.Message = "Caused by " + causes.Tool
	case record.CausedByRuntime():
		failure.Message = "Caused by " + causes.Runtime
	}

	if record.Failure != nil {
		failure.Value = strings.Join(record.Failure.Lines, "\n")
	}

	return failure
}
