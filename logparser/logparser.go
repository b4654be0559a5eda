package logparser

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/bitrise-steplib/steps-test262-report/classifier"
	"github.com/bitrise-steplib/steps-test262-report/models"
)

// The test262 harness prints one summary line per executed test. Failing tests are printed
// as an opener summary wrapped in `===` markers, followed by the captured output and a
// closing line ending in `===`.
var (
	summaryPattern    = regexp.MustCompile(`^(=== )?[^\s]* (passed|failed|was expected to fail) in (non-)?strict mode( as expected|, but didn't)?( ===)?$`)
	terminatorPattern = regexp.MustCompile(`^.*===$`)
	blankPattern      = regexp.MustCompile(`^\s*$`)
	newlinePattern    = regexp.MustCompile(` *\r?\n`)
)

const blockMarker = "==="

// OverflowError is returned when a failure block is not closed before the end of the log.
type OverflowError struct {
	// StartLine is the 1-based line number of the block opener.
	StartLine int
	Line      string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("overflow detected, failure block opened at line %d is not terminated: %s", e.StartLine, e.Line)
}

// UnexpectedLine is a non-blank log line matching neither the summary nor the block grammar.
type UnexpectedLine struct {
	Index int
	Text  string
}

// Stats ...
type Stats struct {
	Lines    int
	Outcomes int
	Failures int
}

// FailureRate returns the failing percentage rounded to two decimals.
func (s Stats) FailureRate() float64 {
	if s.Outcomes == 0 {
		return 0
	}
	return math.Round(float64(s.Failures)/float64(s.Outcomes)*10000) / 100
}

// Result ...
type Result struct {
	Outcomes   []models.Outcome
	Unexpected []UnexpectedLine
	Stats      Stats
}

// Parser tokenizes test262 run logs into outcome records.
type Parser struct {
	classifier classifier.Classifier
}

// NewParser returns a parser classifying failures with c, or with the default rules if c is nil.
func NewParser(c classifier.Classifier) Parser {
	if c == nil {
		c = classifier.NewDefaultClassifier()
	}
	return Parser{classifier: c}
}

// Tokenize splits content into ordered outcome records.
func (p Parser) Tokenize(content string) (Result, error) {
	lines := splitLines(content)
	result := Result{Stats: Stats{Lines: len(lines)}}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if !summaryPattern.MatchString(line) {
			if !blankPattern.MatchString(line) {
				result.Unexpected = append(result.Unexpected, UnexpectedLine{Index: i, Text: line})
			}
			continue
		}

		switch {
		case !strings.Contains(line, "="):
			result.Outcomes = append(result.Outcomes, models.Outcome{
				Status:     models.StatusOK,
				Summary:    line,
				SourceLine: i,
			})
		case strings.HasPrefix(line, blockMarker):
			end, err := findBlockEnd(lines, i)
			if err != nil {
				return Result{}, err
			}

			var captured []string
			if end > i {
				captured = append(captured, lines[i+1:end]...)
			}

			classification := p.classifier.Classify(captured)
			result.Outcomes = append(result.Outcomes, models.Outcome{
				Status:  models.StatusFail,
				Summary: blockSummary(line),
				Failure: &models.Failure{
					Lines:           captured,
					CausedByRuntime: classification.Runtime,
					CausedByTool:    classification.Tool,
				},
				SourceLine: end,
			})
			result.Stats.Failures++

			i = end
		default:
			result.Unexpected = append(result.Unexpected, UnexpectedLine{Index: i, Text: line})
		}
	}

	result.Stats.Outcomes = len(result.Outcomes)

	return result, nil
}

// findBlockEnd returns the index of the terminator closing the block opened at start.
// A terminator closes the block only if it is followed by a summary line or by the end of input.
func findBlockEnd(lines []string, start int) (int, error) {
	if start+1 >= len(lines) {
		return 0, &OverflowError{StartLine: start + 1, Line: lines[start]}
	}

	i := start
	for i+1 < len(lines) && !summaryPattern.MatchString(lines[i+1]) {
		i++
		for !terminatorPattern.MatchString(lines[i]) {
			i++
			if i >= len(lines) {
				return 0, &OverflowError{StartLine: start + 1, Line: lines[start]}
			}
		}
	}

	return i, nil
}

func blockSummary(opener string) string {
	summary := strings.TrimPrefix(opener, blockMarker+" ")
	return strings.TrimSuffix(summary, " "+blockMarker)
}

func splitLines(content string) []string {
	lines := newlinePattern.Split(content, -1)
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
