package models

import (
	"strings"
)

//=======================================
// Models
//=======================================

// Status ...
type Status int

// Outcome statuses. FAIL is 1 so a status can be summed into fail counters.
const (
	StatusOK   Status = 0
	StatusFail Status = 1
)

// String ...
func (s Status) String() string {
	if s == StatusFail {
		return "FAIL"
	}
	return "OK"
}

// MarshalText ...
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Failure holds the captured lines of a failure block and its classified cause.
type Failure struct {
	Lines           []string `json:"logs" yaml:"logs"`
	CausedByRuntime bool     `json:"runtime_error" yaml:"runtime_error"`
	CausedByTool    bool     `json:"tool_error" yaml:"tool_error"`
}

// Outcome is one executed test case as found in the log.
type Outcome struct {
	Status  Status   `json:"status" yaml:"status"`
	Summary string   `json:"summary" yaml:"summary"`
	Failure *Failure `json:"failure,omitempty" yaml:"failure,omitempty"`
	// SourceLine is the 0-based log line where the record ends.
	SourceLine int `json:"line" yaml:"line"`
}

// Failed ...
func (o Outcome) Failed() bool {
	return o.Status == StatusFail
}

// CausedByRuntime ...
func (o Outcome) CausedByRuntime() bool {
	return o.Failed() && o.Failure != nil && o.Failure.CausedByRuntime
}

// CausedByTool ...
func (o Outcome) CausedByTool() bool {
	return o.Failed() && o.Failure != nil && o.Failure.CausedByTool
}

// TestPath returns the test identity: the summary up to its first space,
// with backslashes normalized to forward slashes.
func (o Outcome) TestPath() string {
	name := o.Summary
	if idx := strings.Index(name, " "); idx != -1 {
		name = name[:idx]
	}
	return strings.ReplaceAll(name, "\\", "/")
}

// TestFileName appends the .js suffix to a test path segment unless it already carries one.
func TestFileName(segment string) string {
	if strings.HasSuffix(segment, ".js") {
		return segment
	}
	return segment + ".js"
}
