package logparser

import (
	"errors"
	"testing"

	"github.com/bitrise-steplib/steps-test262-report/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `foo/bar passed in strict mode
=== foo/baz failed in strict mode ===
--- output ---
TypeError: x is not a function
===
foo/qux was expected to fail in non-strict mode, but didn't

`

func Test_GivenLogWithPassAndFailure_WhenTokenized_ThenProducesOrderedOutcomes(t *testing.T) {
	// Given
	parser := NewParser(nil)

	// When
	result, err := parser.Tokenize(sampleLog)

	// Then
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 3)

	assert.Equal(t, models.Outcome{Status: models.StatusOK, Summary: "foo/bar passed in strict mode", SourceLine: 0}, result.Outcomes[0])

	failure := result.Outcomes[1]
	assert.Equal(t, models.StatusFail, failure.Status)
	assert.Equal(t, "foo/baz failed in strict mode", failure.Summary)
	assert.Equal(t, 4, failure.SourceLine)
	require.NotNil(t, failure.Failure)
	assert.Equal(t, []string{"--- output ---", "TypeError: x is not a function"}, failure.Failure.Lines)
	assert.False(t, failure.Failure.CausedByRuntime)
	assert.False(t, failure.Failure.CausedByTool)

	assert.Equal(t, models.StatusOK, result.Outcomes[2].Status)
	assert.Equal(t, 5, result.Outcomes[2].SourceLine)

	assert.Empty(t, result.Unexpected)
	assert.Equal(t, Stats{Lines: 6, Outcomes: 3, Failures: 1}, result.Stats)
	assert.Equal(t, 33.33, result.Stats.FailureRate())
}

func Test_GivenBlockWithSeveralSections_WhenTokenized_ThenClosesAtTerminatorFollowedBySummary(t *testing.T) {
	// Given
	log := "=== a/b failed in strict mode ===\n" +
		"--- errors ---\n" +
		"A minified script failed to run both minified and unminified. This is likely an invalid js file\n" +
		"===\n" +
		"--- output ---\n" +
		"    at new JS_Parse_Error (parse.js:1:1)\n" +
		"===\n" +
		"a/c passed in strict mode\n"

	// When
	result, err := NewParser(nil).Tokenize(log)

	// Then
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)

	failure := result.Outcomes[0]
	assert.Len(t, failure.Failure.Lines, 5)
	assert.Equal(t, 6, failure.SourceLine)
	assert.True(t, failure.Failure.CausedByRuntime)
	assert.True(t, failure.Failure.CausedByTool)
}

func Test_GivenBlockAtEndOfInput_WhenTokenized_ThenEndOfInputClosesIt(t *testing.T) {
	// Given
	log := "=== a/b failed in strict mode ===\nError: boom\n==="

	// When
	result, err := NewParser(nil).Tokenize(log)

	// Then
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, []string{"Error: boom"}, result.Outcomes[0].Failure.Lines)
}

func Test_GivenOpenerFollowedBySummary_WhenTokenized_ThenProducesEmptyFailure(t *testing.T) {
	// Given
	log := "=== a/b failed in strict mode ===\na/c passed in strict mode"

	// When
	result, err := NewParser(nil).Tokenize(log)

	// Then
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)
	assert.Empty(t, result.Outcomes[0].Failure.Lines)
	assert.Equal(t, 0, result.Outcomes[0].SourceLine)
}

func Test_GivenUnterminatedBlock_WhenTokenized_ThenFailsWithOverflow(t *testing.T) {
	tests := []struct {
		name      string
		log       string
		startLine int
	}{
		{
			name:      "Block body without terminator",
			log:       "a/b passed in strict mode\n=== a/c failed in strict mode ===\nTypeError: boom\n    at foo (a.js:1:1)\n",
			startLine: 2,
		},
		{
			name:      "Opener on the last line",
			log:       "a/b passed in strict mode\na/d passed in strict mode\n=== a/c failed in strict mode ===\n",
			startLine: 3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// When
			result, err := NewParser(nil).Tokenize(test.log)

			// Then
			var overflowErr *OverflowError
			require.True(t, errors.As(err, &overflowErr))
			assert.Equal(t, test.startLine, overflowErr.StartLine)
			assert.Equal(t, "=== a/c failed in strict mode ===", overflowErr.Line)
			assert.Empty(t, result.Outcomes)
		})
	}
}

func Test_GivenNoisyLog_WhenTokenized_ThenSkipsUnexpectedLines(t *testing.T) {
	// Given
	log := "Running test262...\r\n" +
		"a/b passed in strict mode   \r\n" +
		"   \n" +
		"a=b passed in strict mode\n" +
		"a/c passed in non-strict mode as expected\n"

	// When
	result, err := NewParser(nil).Tokenize(log)

	// Then
	require.NoError(t, err)
	assert.Len(t, result.Outcomes, 2)
	assert.Equal(t, "a/b passed in strict mode", result.Outcomes[0].Summary)
	assert.Equal(t, []UnexpectedLine{
		{Index: 0, Text: "Running test262..."},
		{Index: 3, Text: "a=b passed in strict mode"},
	}, result.Unexpected)
}

func Test_GivenEmptyLog_WhenTokenized_ThenReportsZeroFailureRate(t *testing.T) {
	// When
	result, err := NewParser(nil).Tokenize("\n\n")

	// Then
	require.NoError(t, err)
	assert.Empty(t, result.Outcomes)
	assert.Equal(t, float64(0), result.Stats.FailureRate())
}
