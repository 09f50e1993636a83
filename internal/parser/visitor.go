package parser

import (
	"fmt"
	"io"
	"strings"
)

// Visitor is called once per node by Accept. Returning false skips the
// node's children.
type Visitor interface {
	Visit(node *Node) bool
}

// Accept walks the subtree rooted at n in pre-order
func (n *Node) Accept(visitor Visitor) {
	n.Walk(visitor.Visit)
}

// PrinterVisitor dumps a tree one node per line, indented by depth. It is
// the `canonical --tree` output. Anonymous tokens (keywords, punctuation)
// are left out unless ShowTokens is set.
type PrinterVisitor struct {
	ShowTokens bool

	w     io.Writer
	depth map[*Node]int
}

func NewPrinterVisitor(w io.Writer) *PrinterVisitor {
	return &PrinterVisitor{w: w, depth: map[*Node]int{}}
}

func (v *PrinterVisitor) Visit(node *Node) bool {
	if !node.Named && !v.ShowTokens {
		return false
	}
	d := 0
	if node.Parent != nil {
		if pd, ok := v.depth[node.Parent]; ok {
			d = pd + 1
		}
	}
	v.depth[node] = d
	fmt.Fprintf(v.w, "%s%s\n", strings.Repeat("  ", d), node)
	return true
}

// ValidatorVisitor checks the invariants tree edits must keep: parent
// links point back, no nil children, and named leaves other than empty
// blocks carry text.
type ValidatorVisitor struct {
	problems []string
}

func NewValidatorVisitor() *ValidatorVisitor {
	return &ValidatorVisitor{}
}

func (v *ValidatorVisitor) Visit(node *Node) bool {
	if node.Named && node.IsLeaf() && node.Text == "" && node.Kind != KindBlock && node.Kind != KindModule {
		v.addf("leaf %s at %+v has no text", node.Kind, node.Location)
	}
	for i, child := range node.Children {
		switch {
		case child == nil:
			v.addf("%s at %+v: child %d is nil", node.Kind, node.Location, i)
		case child.Parent != node:
			v.addf("%s at %+v: parent of child %s is not %s", node.Kind, node.Location, child.Kind, node.Kind)
		}
	}
	return true
}

func (v *ValidatorVisitor) addf(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// GetErrors returns one message per broken invariant
func (v *ValidatorVisitor) GetErrors() []string {
	return v.problems
}

func (v *ValidatorVisitor) IsValid() bool {
	return len(v.problems) == 0
}
