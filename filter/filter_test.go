package filter

import (
	"testing"

	"github.com/bitrise-steplib/steps-test262-report/models"
	"github.com/bitrise-steplib/steps-test262-report/report"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenRenderedReport_WhenFiltered_ThenListsTestsOfMatchingKind(t *testing.T) {
	// Given
	opts := report.Options{}
	tree := resulttree.Build([]models.Outcome{
		fail("language/a failed in strict mode", false, true),
		fail("language/b failed in strict mode", true, false),
		fail("language/c failed in strict mode", true, true),
		fail("built-ins/d failed in strict mode", false, false),
		fail("built-ins/e.js failed in strict mode", false, true),
	})
	content := report.Render(tree, opts)

	tests := []struct {
		kind     Kind
		expected []string
	}{
		{kind: KindTool, expected: []string{"language/a.js", "built-ins/e.js"}},
		{kind: KindRuntime, expected: []string{"language/b.js"}},
		{kind: KindRuntimeAndTool, expected: []string{"language/c.js"}},
		{kind: KindUnknown, expected: []string{"built-ins/d.js"}},
	}

	for _, test := range tests {
		t.Run(string(test.kind), func(t *testing.T) {
			// When
			paths, err := NewFilter(opts).Tests(content, test.kind)

			// Then
			require.NoError(t, err)
			assert.Equal(t, test.expected, paths)
		})
	}
}

func Test_GivenCustomNames_WhenFiltered_ThenMatchesThoseAnnotations(t *testing.T) {
	// Given
	opts := report.Options{ToolName: "terser (v5)", RuntimeName: "Deno", BaseURL: report.LegacyBaseURL}
	tree := resulttree.Build([]models.Outcome{
		fail(`ch15\15.4\15.4.4 failed in strict mode`, false, true),
		fail("ch15/15.5 failed in strict mode", true, true),
	})
	content := report.Render(tree, opts)
	f := NewFilter(opts)

	// When
	toolOnly, err := f.Tests(content, KindTool)
	require.NoError(t, err)
	both, err := f.Tests(content, KindRuntimeAndTool)
	require.NoError(t, err)

	// Then
	assert.Equal(t, []string{"ch15/15.4/15.4.4.js"}, toolOnly)
	assert.Equal(t, []string{"ch15/15.5.js"}, both)
}

func Test_GivenReportWithoutMatches_WhenFiltered_ThenReturnsNothing(t *testing.T) {
	// When
	paths, err := NewFilter(report.Options{}).Tests("# Test262 results\n", KindTool)

	// Then
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func Test_GivenKindName_WhenParsed_ThenValidatesIt(t *testing.T) {
	kind, err := ParseKind("runtime-and-tool")
	require.NoError(t, err)
	assert.Equal(t, KindRuntimeAndTool, kind)

	_, err = ParseKind("node")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool, runtime, runtime-and-tool, unknown")
}

func fail(summary string, runtime, tool bool) models.Outcome {
	return models.Outcome{
		Status:  models.StatusFail,
		Summary: summary,
		Failure: &models.Failure{CausedByRuntime: runtime, CausedByTool: tool},
	}
}
