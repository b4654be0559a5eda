package resulttree

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DumpFormat ...
type DumpFormat string

// Supported debug dump encodings.
const (
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
)

// DumpFormatForPath picks YAML for .yml/.yaml paths and JSON otherwise.
func DumpFormatForPath(pth string) DumpFormat {
	switch strings.ToLower(filepath.Ext(pth)) {
	case ".yml", ".yaml":
		return DumpYAML
	default:
		return DumpJSON
	}
}

// Snapshot is the serialized form of a tree together with the link template of the report.
type Snapshot struct {
	UnitTestURL string `json:"unit_test_url" yaml:"unit_test_url"`
	Tree        `yaml:",inline"`
}

// Dump writes the snapshot of tree to w.
func Dump(w io.Writer, tree Tree, unitTestURL string, format DumpFormat) error {
	snapshot := Snapshot{UnitTestURL: unitTestURL, Tree: tree}

	switch format {
	case DumpYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("failed to encode debug dump: %w", err)
		}
		return encoder.Close()
	case DumpJSON:
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			return fmt.Errorf("failed to encode debug dump: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported debug dump format: %s", format)
	}
}

// DumpDescription documents the layout of the debug dump.
const DumpDescription = `Root:
    logs: <Node> See Node
    unit_test_url: <String> Base url to test suite, used as link template for tests
    unattributed: <Array Outcome> Outcomes without a test path, if any

Node:
    errors: <Int> Total errors in this Node and its children
    errors_local: <Int> Total errors in this Node alone
    runtime_errors: <Int> Total errors caused by the runtime in this Node and its children
    runtime_errors_local: <Int> Total errors caused by the runtime in this Node alone
    tool_errors: <Int> Total errors caused by the tool in this Node and its children
    tool_errors_local: <Int> Total errors caused by the tool in this Node alone
    tests_count: <Int> Total number of tests
    tests_count_local: <Int> Total number of local tests
    dir: <Object Node> Child directories, keyed by name with a trailing slash
    tests: <Object Array Outcome> Outcomes keyed by test file name

Outcome:
    status: <String> OK or FAIL
    summary: <String> Summary message
    failure: <Failure | absent> Failure details
    line: <Int> Line of the outcome in the log

Failure:
    logs: <Array String> Captured output of the test failure
    runtime_error: <Bool> True if the runtime very likely caused the failure. Indicative only.
    tool_error: <Bool> True if the tool very likely caused the failure. Indicative only.
`
