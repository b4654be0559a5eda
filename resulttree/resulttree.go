// Package resulttree rolls test outcomes up into a directory tree with per directory statistics.
package resulttree

import (
	"strings"

	"github.com/bitrise-steplib/steps-test262-report/models"
)

const pathSeparator = "/"

// Node is one directory level of the tree. The root node stands for the whole run.
type Node struct {
	TotalCount       int `json:"tests_count" yaml:"tests_count"`
	FailCount        int `json:"errors" yaml:"errors"`
	RuntimeFailCount int `json:"runtime_errors" yaml:"runtime_errors"`
	ToolFailCount    int `json:"tool_errors" yaml:"tool_errors"`

	LocalTotalCount       int `json:"tests_count_local" yaml:"tests_count_local"`
	LocalFailCount        int `json:"errors_local" yaml:"errors_local"`
	LocalRuntimeFailCount int `json:"runtime_errors_local" yaml:"runtime_errors_local"`
	LocalToolFailCount    int `json:"tool_errors_local" yaml:"tool_errors_local"`

	// Dirs maps a directory name, trailing separator included, to its node.
	Dirs *OrderedMap[*Node] `json:"dir" yaml:"dir"`
	// Tests maps a test file name to every outcome recorded for it.
	Tests *OrderedMap[[]models.Outcome] `json:"tests" yaml:"tests"`
}

// NewNode ...
func NewNode() *Node {
	return &Node{
		Dirs:  NewOrderedMap[*Node](),
		Tests: NewOrderedMap[[]models.Outcome](),
	}
}

// Tree ...
type Tree struct {
	Root *Node `json:"logs" yaml:"logs"`
	// Unattributed holds outcomes without a parseable test path.
	Unattributed []models.Outcome `json:"unattributed,omitempty" yaml:"unattributed,omitempty"`
}

type counts struct {
	fail, runtime, tool int
}

func countsOf(outcome models.Outcome) counts {
	var c counts
	if outcome.Failed() {
		c.fail = 1
	}
	if outcome.CausedByRuntime() {
		c.runtime = 1
	}
	if outcome.CausedByTool() {
		c.tool = 1
	}
	return c
}

func (n *Node) add(c counts) {
	n.TotalCount++
	n.FailCount += c.fail
	n.RuntimeFailCount += c.runtime
	n.ToolFailCount += c.tool
}

func (n *Node) addLocal(c counts) {
	n.LocalTotalCount++
	n.LocalFailCount += c.fail
	n.LocalRuntimeFailCount += c.runtime
	n.LocalToolFailCount += c.tool
}

// Builder folds outcome lists into a tree. It is not safe for concurrent use.
type Builder struct {
	tree Tree
}

// NewBuilder ...
func NewBuilder() *Builder {
	return &Builder{tree: Tree{Root: NewNode()}}
}

// Add merges outcomes into the tree in order.
func (b *Builder) Add(outcomes ...models.Outcome) {
	for _, outcome := range outcomes {
		b.add(outcome)
	}
}

func (b *Builder) add(outcome models.Outcome) {
	testPath := outcome.TestPath()
	if testPath == "" {
		b.tree.Unattributed = append(b.tree.Unattributed, outcome)
		return
	}

	c := countsOf(outcome)
	segments := strings.Split(testPath, pathSeparator)

	node := b.tree.Root
	for _, segment := range segments[:len(segments)-1] {
		node.add(c)

		dir := segment + pathSeparator
		child, ok := node.Dirs.Get(dir)
		if !ok {
			child = NewNode()
			node.Dirs.Set(dir, child)
		}
		node = child
	}

	node.add(c)
	node.addLocal(c)

	fileName := models.TestFileName(segments[len(segments)-1])
	records, _ := node.Tests.Get(fileName)
	node.Tests.Set(fileName, append(records, outcome))
}

// Tree returns the tree built so far.
func (b *Builder) Tree() Tree {
	return b.tree
}

// Build folds a single outcome list into a new tree.
func Build(outcomes []models.Outcome) Tree {
	builder := NewBuilder()
	builder.Add(outcomes...)
	return builder.Tree()
}
