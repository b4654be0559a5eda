package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	runtimeLine = "A minified script failed to run both minified and unminified. This is likely an invalid js file"
	toolLine    = "A minified script failed to run after being minified. Please report node version, test and error to the maintainer of the minifier tool."
)

func Test_GivenFailureLines_WhenClassified_ThenFlagsMatchingCauses(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected Classification
	}{
		{
			name:     "No heuristic matches",
			lines:    []string{"Test262Error: Expected true but got false", "    at foo (bar.js:1:1)"},
			expected: Classification{},
		},
		{
			name:     "Runtime caused",
			lines:    []string{"--- errors ---", runtimeLine},
			expected: Classification{Runtime: true},
		},
		{
			name:     "Tool caused by harness message",
			lines:    []string{toolLine},
			expected: Classification{Tool: true},
		},
		{
			name:     "Tool caused by parse error stack frame",
			lines:    []string{"Error", "    at new JS_Parse_Error (/uglify/lib/parse.js:196:18)"},
			expected: Classification{Tool: true},
		},
		{
			name:     "Both causes",
			lines:    []string{toolLine, "some noise", runtimeLine},
			expected: Classification{Runtime: true, Tool: true},
		},
	}

	classifier := NewDefaultClassifier()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// When
			result := classifier.Classify(test.lines)

			// Then
			assert.Equal(t, test.expected, result)
		})
	}
}

func Test_GivenRulesFile_WhenLoaded_ThenExtendsDefaultRules(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "rules.yml")
	content := `
- cause: runtime
  pattern: "RangeError: Maximum call stack size exceeded"
- cause: tool
  pattern: "DefaultsError"
`
	require.NoError(t, os.WriteFile(pth, []byte(content), 0600))

	// When
	rules, err := LoadRules(pth)

	// Then
	require.NoError(t, err)
	assert.Len(t, rules, len(DefaultRules())+2)

	result := NewClassifier(rules).Classify([]string{"RangeError: Maximum call stack size exceeded"})
	assert.Equal(t, Classification{Runtime: true}, result)
}

func Test_GivenInvalidRules_WhenParsed_ThenFails(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Unknown cause", content: `[{cause: harness, pattern: foo}]`},
		{name: "Empty pattern", content: `[{cause: tool}]`},
		{name: "Invalid regexp", content: `[{cause: tool, pattern: "(unclosed"}]`},
		{name: "Not a list", content: `cause: tool`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseRules([]byte(test.content))
			require.Error(t, err)
		})
	}
}
