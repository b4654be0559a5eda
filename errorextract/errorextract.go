// Package errorextract pulls readable error messages out of the captured output of a failing test.
package errorextract

import (
	"regexp"
	"strings"
)

var (
	errorObjectPattern    = regexp.MustCompile(`Error:\s+(Test262Error|JS_Parse_Error)\s+\{`)
	objectEndPattern      = regexp.MustCompile(`\}\s*$`)
	standardErrorPattern  = regexp.MustCompile(`^(Error:\s+)?(Syntax|Type|Reference|Range)Error: `)
	bareErrorPattern      = regexp.MustCompile(`^Error$`)
	stackFramePattern     = regexp.MustCompile(`^    at `)
	parseErrorLinePattern = regexp.MustCompile(`^ Parse error at `)
)

const (
	messageKey   = "message"
	errorPrefix  = "Error: "
	test262Error = "Test262Error"
	parseError   = "JS_Parse_Error"
)

// Extract returns the error messages found in lines, in the order their triggering lines appear.
func Extract(lines []string) []string {
	var results []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch {
		case errorObjectPattern.MatchString(line):
			prefix := objectPrefix(line)

			var objectLines []string
			for ; i < len(lines); i++ {
				objectLines = append(objectLines, lines[i])
				if objectEndPattern.MatchString(lines[i]) {
					break
				}
			}

			for _, value := range valuesOf(objectLines, messageKey) {
				results = append(results, prefix+value)
			}
		case standardErrorPattern.MatchString(line):
			message := line
			if strings.HasPrefix(message, errorPrefix) {
				message = strings.TrimSpace(strings.TrimPrefix(message, "Error:"))
			}

			if !contains(results, message) {
				results = append(results, message)
			}
		case isWrappedParseError(lines, i):
			results = append(results, lines[i-1])
		}
	}

	return results
}

func objectPrefix(line string) string {
	switch {
	case strings.Contains(line, test262Error):
		return test262Error + ": "
	case strings.Contains(line, parseError):
		return parseError + ": "
	}
	return ""
}

// isWrappedParseError matches a bare `Error` line that has a stack frame after it and a
// parse error marker two lines before it; the message sits on the line in between.
func isWrappedParseError(lines []string, i int) bool {
	if i < 2 || i+1 >= len(lines) {
		return false
	}
	return bareErrorPattern.MatchString(lines[i]) &&
		stackFramePattern.MatchString(lines[i+1]) &&
		parseErrorLinePattern.MatchString(lines[i-2])
}

// valuesOf returns the raw value of every `key: value` pair in lines.
// Quoted values end at the matching unescaped quote, other values at the next comma or closing brace.
func valuesOf(lines []string, key string) []string {
	filter := key + ": "

	var values []string
	for _, line := range lines {
		pos := strings.Index(line, filter)
		if pos == -1 {
			continue
		}
		pos += len(filter)

		if pos < len(line) && (line[pos] == '"' || line[pos] == '\'') {
			quote := line[pos]
			pos++

			end := pos
			for ; end < len(line); end++ {
				if line[end] == '\\' {
					end++
					continue
				}
				if line[end] == quote {
					break
				}
			}
			if end > len(line) {
				end = len(line)
			}

			values = append(values, line[pos:end])
			continue
		}

		rest := line[pos:]
		end := strings.IndexAny(rest, ",}")
		if end == -1 {
			end = len(rest)
		}
		values = append(values, strings.TrimSpace(rest[:end]))
	}

	return values
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
