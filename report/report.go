// Package report renders a result tree as a collapsible Markdown document.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bitrise-steplib/steps-test262-report/errorextract"
	"github.com/bitrise-steplib/steps-test262-report/models"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
)

// Base URLs of the two known suite layouts.
const (
	DefaultBaseURL = "https://github.com/tc39/test262/blob/master/test/"
	LegacyBaseURL  = "https://github.com/tc39/test262/blob/es5-tests/test/suite/"
)

// Default names used in cause annotations.
const (
	DefaultToolName    = "UglifyJS"
	DefaultRuntimeName = "Node"
)

const indent = "    "

// Options ...
type Options struct {
	ToolName    string
	RuntimeName string
	// BaseURL is the link template test paths are appended to.
	BaseURL string
	// AllErrors lists extracted messages for runtime-only failures too.
	AllErrors      bool
	RuntimeVersion string
}

// BaseURLFor returns the base URL of the legacy or the current suite layout.
func BaseURLFor(legacySuite bool) string {
	if legacySuite {
		return LegacyBaseURL
	}
	return DefaultBaseURL
}

// WithDefaults fills the unset names and base URL with their defaults.
func (o Options) WithDefaults() Options {
	if o.ToolName == "" {
		o.ToolName = DefaultToolName
	}
	if o.RuntimeName == "" {
		o.RuntimeName = DefaultRuntimeName
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	return o
}

// Renderer ...
type Renderer interface {
	Render(tree resulttree.Tree) string
}

type renderer struct {
	opts Options
}

// NewRenderer ...
func NewRenderer(opts Options) Renderer {
	return &renderer{opts: opts.WithDefaults()}
}

// Render is a shorthand for NewRenderer(opts).Render(tree).
func Render(tree resulttree.Tree, opts Options) string {
	return NewRenderer(opts).Render(tree)
}

func (r *renderer) Render(tree resulttree.Tree) string {
	root := tree.Root
	if root == nil {
		root = resulttree.NewNode()
	}

	var b strings.Builder
	r.writeIntro(&b)
	r.writeGlobalStats(&b, root)

	b.WriteString("## Error tree\n\n")
	b.WriteString(r.summary(root) + "\n\n")
	r.writeNode(&b, root, 0, "")

	if len(tree.Unattributed) > 0 {
		b.WriteString("\n## Unattributed results\n\n")
		for _, outcome := range tree.Unattributed {
			fmt.Fprintf(&b, "- %s `%s` (log line %d)\n", outcome.Status, escapeCode(outcome.Summary), outcome.SourceLine+1)
		}
	}

	return b.String()
}

func (r *renderer) writeIntro(b *strings.Builder) {
	tool, runtime := r.opts.ToolName, r.opts.RuntimeName

	b.WriteString("# Test262 results\n\n")
	fmt.Fprintf(b, "All tests are passed to %s and the minified code is run by %s", tool, runtime)
	if r.opts.RuntimeVersion != "" {
		fmt.Fprintf(b, " %s", r.opts.RuntimeVersion)
	}
	b.WriteString(".\n\n")
	fmt.Fprintf(b, "If the minified code errors, the original code will be run through %s and the results will be compared. ", runtime)
	b.WriteString("Ultimately, the test runner decides if a test fail. Some tests may be expected to fail.\n\n")
	fmt.Fprintf(b, "Tests only working without %s are marked in bold.\n\n", tool)
	b.WriteString("Most tests are tested in strict and non-strict mode. ")
	b.WriteString("While failures may be listed twice, the test will only be shown once.\n\n")
}

func (r *renderer) writeGlobalStats(b *strings.Builder, root *resulttree.Node) {
	b.WriteString("## Global stats\n\n")
	fmt.Fprintf(b, "- Found %d executed tests\n", root.TotalCount)
	fmt.Fprintf(b, "- %d tests failed (%s%%)\n", root.FailCount, percentage(root.FailCount, root.TotalCount))
	fmt.Fprintf(b, "- %d tests failed because of %s (%s%%)\n", root.RuntimeFailCount, r.opts.RuntimeName, percentage(root.RuntimeFailCount, root.TotalCount))
	fmt.Fprintf(b, "- %d tests failed because of %s (%s%%)\n", root.ToolFailCount, r.opts.ToolName, percentage(root.ToolFailCount, root.TotalCount))
	b.WriteString("\n")
}

// summary formats the one line statistics of a directory, for example
// "3/10 fails - 1 caused by UglifyJS (No local tests - 2 subdirectories)".
func (r *renderer) summary(n *resulttree.Node) string {
	tool := r.opts.ToolName
	subDirCount := n.Dirs.Len()

	s := fmt.Sprintf("%d/%d fails", n.FailCount, n.TotalCount)
	if n.ToolFailCount > 0 {
		s += fmt.Sprintf(" - %d caused by %s", n.ToolFailCount, tool)
	}

	s += " ("
	if subDirCount > 0 {
		switch {
		case n.LocalTotalCount == 0:
			s += "No local tests"
		case n.LocalFailCount == 0:
			s += "No local failures"
		default:
			s += fmt.Sprintf("%d/%d local tests failed", n.LocalFailCount, n.LocalTotalCount)
			if n.LocalToolFailCount > 0 {
				s += fmt.Sprintf(" with %d caused by %s", n.LocalToolFailCount, tool)
			}
		}
		s += " - "
	}

	switch subDirCount {
	case 0:
		s += "No subdirectories"
	case 1:
		s += "1 subdirectory"
	default:
		s += fmt.Sprintf("%d subdirectories", subDirCount)
	}

	return s + ")"
}

// collapseTarget returns the only child directory of n when n has no local
// failures of its own and that child carries tool caused failures.
func collapseTarget(n *resulttree.Node) (string, *resulttree.Node, bool) {
	if n.LocalFailCount != 0 || n.Dirs.Len() != 1 {
		return "", nil, false
	}

	key := n.Dirs.Keys()[0]
	child, _ := n.Dirs.Get(key)
	if child.ToolFailCount == 0 {
		return "", nil, false
	}

	return key, child, true
}

func (r *renderer) writeNode(b *strings.Builder, n *resulttree.Node, level int, path string) {
	for {
		key, child, ok := collapseTarget(n)
		if !ok {
			break
		}
		n = child
		path += key
	}

	prefix := strings.Repeat(indent, level)

	for _, name := range n.Tests.Keys() {
		records, _ := n.Tests.Get(name)
		r.writeFile(b, prefix, records)
	}

	for _, name := range n.Dirs.Keys() {
		child, _ := n.Dirs.Get(name)

		mark := " "
		if child.FailCount == 0 {
			mark = "x"
		}
		fmt.Fprintf(b, "%s- [%s] `%s%s` %s\n", prefix, mark, path, name, r.summary(child))

		if child.FailCount > 0 {
			r.writeNode(b, child, level+1, "")
		}
	}
}

type messageCount struct {
	message string
	count   int
}

func (r *renderer) writeFile(b *strings.Builder, prefix string, records []models.Outcome) {
	if len(records) == 0 {
		return
	}

	var (
		failCount, runtimeCount, toolCount int
		messages                           []string
	)
	for _, record := range records {
		if !record.Failed() {
			continue
		}
		failCount++
		if record.CausedByRuntime() {
			runtimeCount++
		}
		if record.CausedByTool() {
			toolCount++
		}
		if record.Failure != nil {
			messages = append(messages, errorextract.Extract(record.Failure.Lines)...)
		}
	}

	if failCount == 0 {
		return
	}

	style := ""
	if toolCount > 0 {
		style = "**"
	} else if runtimeCount > 0 {
		style = "~~"
	}

	first := records[0]
	link := fmt.Sprintf(" [\\[test\\]](%s%s)", r.opts.BaseURL, models.TestFileName(first.TestPath()))
	counter := fmt.Sprintf(" - Fails: %d/%d", failCount, len(records))

	fmt.Fprintf(b, "%s- *%s%s%s*%s%s%s\n", prefix, style, escapeName(first.Summary), style, link, r.cause(runtimeCount, toolCount), counter)

	if !r.opts.AllErrors && toolCount == 0 && runtimeCount > 0 {
		return
	}

	for _, m := range countMessages(messages) {
		fmt.Fprintf(b, "%s  - ` %s `", prefix, escapeCode(m.message))
		if m.count > 1 {
			fmt.Fprintf(b, " %dx", m.count)
		}
		b.WriteString("\n")
	}
}

func (r *renderer) cause(runtimeCount, toolCount int) string {
	switch {
	case toolCount > 0 && runtimeCount == 0:
		return fmt.Sprintf(" (Caused by %s)", r.opts.ToolName)
	case toolCount == 0 && runtimeCount > 0:
		return fmt.Sprintf(" (Caused by %s)", r.opts.RuntimeName)
	case toolCount > 0 && runtimeCount > 0:
		return fmt.Sprintf(" (Caused by %s and by %s)", r.opts.RuntimeName, r.opts.ToolName)
	default:
		return ""
	}
}

func countMessages(messages []string) []messageCount {
	var counts []messageCount
	index := map[string]int{}
	for _, message := range messages {
		if i, ok := index[message]; ok {
			counts[i].count++
			continue
		}
		index[message] = len(counts)
		counts = append(counts, messageCount{message: message, count: 1})
	}
	return counts
}

var nameReplacer = strings.NewReplacer(`\`, "/", "-", `\-`, "_", `\_`)

func escapeName(name string) string {
	return nameReplacer.Replace(name)
}

func escapeCode(s string) string {
	return strings.ReplaceAll(s, "`", "``")
}

// percentage returns part/total as a percentage rounded to two decimals.
func percentage(part, total int) string {
	if total == 0 {
		return "0"
	}
	value := math.Round(float64(part)/float64(total)*10000) / 100
	return strconv.FormatFloat(value, 'f', -1, 64)
}
