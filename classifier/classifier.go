package classifier

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Cause ...
type Cause string

// Failure causes a rule can signal.
const (
	CauseRuntime Cause = "runtime"
	CauseTool    Cause = "tool"
)

// The harness prints these when the transformed script fails: the first one when the
// original script fails the same way, the second one when only the transformed one does.
const (
	failedBothMinifiedAndUnminified = `A minified script failed to run both minified and unminified\. This is likely an invalid js file`
	failedAfterMinified             = `A minified script failed to run after being minified\. Please report node version, test and error to the maintainer of the minifier tool\.`
	toolParseError                  = `at new JS_Parse_Error`
)

// Rule marks a failure with Cause when any captured line matches Pattern.
type Rule struct {
	Cause   Cause
	Pattern *regexp.Regexp
}

// Classification ...
type Classification struct {
	Runtime bool
	Tool    bool
}

// Classifier ...
type Classifier interface {
	Classify(lines []string) Classification
}

type classifier struct {
	rules []Rule
}

// DefaultRules ...
func DefaultRules() []Rule {
	return []Rule{
		{Cause: CauseRuntime, Pattern: regexp.MustCompile(failedBothMinifiedAndUnminified)},
		{Cause: CauseTool, Pattern: regexp.MustCompile(failedAfterMinified)},
		{Cause: CauseTool, Pattern: regexp.MustCompile(toolParseError)},
	}
}

// NewClassifier returns a classifier evaluating rules in order.
func NewClassifier(rules []Rule) Classifier {
	return &classifier{rules: rules}
}

// NewDefaultClassifier ...
func NewDefaultClassifier() Classifier {
	return NewClassifier(DefaultRules())
}

// Classify reports which causes have at least one matching line.
func (c classifier) Classify(lines []string) Classification {
	var result Classification
	for _, rule := range c.rules {
		if result.has(rule.Cause) {
			continue
		}
		for _, line := range lines {
			if rule.Pattern.MatchString(line) {
				result.set(rule.Cause)
				break
			}
		}
	}
	return result
}

func (c Classification) has(cause Cause) bool {
	switch cause {
	case CauseRuntime:
		return c.Runtime
	case CauseTool:
		return c.Tool
	}
	return false
}

func (c *Classification) set(cause Cause) {
	switch cause {
	case CauseRuntime:
		c.Runtime = true
	case CauseTool:
		c.Tool = true
	}
}

type ruleModel struct {
	Cause   string `yaml:"cause"`
	Pattern string `yaml:"pattern"`
}

// ParseRules parses a YAML list of {cause, pattern} entries.
func ParseRules(content []byte) ([]Rule, error) {
	var models []ruleModel
	if err := yaml.Unmarshal(content, &models); err != nil {
		return nil, fmt.Errorf("failed to parse classifier rules: %w", err)
	}

	rules := make([]Rule, 0, len(models))
	for i, model := range models {
		cause := Cause(model.Cause)
		if cause != CauseRuntime && cause != CauseTool {
			return nil, fmt.Errorf("rule #%d: invalid cause (%s), should be one of: %s, %s", i, model.Cause, CauseRuntime, CauseTool)
		}
		if model.Pattern == "" {
			return nil, fmt.Errorf("rule #%d: empty pattern", i)
		}

		pattern, err := regexp.Compile(model.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule #%d: invalid pattern: %w", i, err)
		}
		rules = append(rules, Rule{Cause: cause, Pattern: pattern})
	}

	return rules, nil
}

// LoadRules reads the rules file at pth and appends its rules to the default ones.
func LoadRules(pth string) ([]Rule, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier rules (%s): %w", pth, err)
	}

	extra, err := ParseRules(content)
	if err != nil {
		return nil, err
	}

	return append(DefaultRules(), extra...), nil
}
