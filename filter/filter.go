// Package filter lists the tests of a rendered report that carry a given cause annotation.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bitrise-steplib/steps-test262-report/report"
)

// Kind selects which report rows are listed.
type Kind string

// Supported kinds.
const (
	KindTool           Kind = "tool"
	KindRuntime        Kind = "runtime"
	KindRuntimeAndTool Kind = "runtime-and-tool"
	KindUnknown        Kind = "unknown"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindTool, KindRuntime, KindRuntimeAndTool, KindUnknown}

// ParseKind ...
func ParseKind(s string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == s {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown filter kind: %s (supported: %s)", s, kindNames())
}

func kindNames() string {
	var names []string
	for _, kind := range Kinds {
		names = append(names, string(kind))
	}
	return strings.Join(names, ", ")
}

const linkPattern = `(https?://[a-zA-Z0-9/\-._]+)\)`

// Filter ...
type Filter interface {
	Tests(reportContent string, kind Kind) ([]string, error)
}

type filter struct {
	opts report.Options
}

// NewFilter returns a filter matching the annotations a report rendered with opts carries.
func NewFilter(opts report.Options) Filter {
	return &filter{opts: opts.WithDefaults()}
}

// Tests returns the test paths, relative to the base URL, of the report rows matching kind.
func (f *filter) Tests(reportContent string, kind Kind) ([]string, error) {
	pattern, err := f.pattern(kind)
	if err != nil {
		return nil, err
	}

	var tests []string
	for _, match := range pattern.FindAllStringSubmatch(reportContent, -1) {
		tests = append(tests, strings.TrimPrefix(match[1], f.opts.BaseURL))
	}

	return tests, nil
}

func (f *filter) pattern(kind Kind) (*regexp.Regexp, error) {
	var suffix string
	switch kind {
	case KindTool:
		suffix = causePattern(f.opts.ToolName)
	case KindRuntime:
		suffix = causePattern(f.opts.RuntimeName)
	case KindRuntimeAndTool:
		suffix = causePattern(f.opts.RuntimeName + " and by " + f.opts.ToolName)
	case KindUnknown:
		suffix = ` -`
	default:
		return nil, fmt.Errorf("unknown filter kind: %s", kind)
	}

	return regexp.Compile(linkPattern + suffix)
}

func causePattern(cause string) string {
	return ` \(Caused by ` + regexp.QuoteMeta(cause) + `\)`
}
