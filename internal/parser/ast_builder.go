package parser

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// opaqueKinds are kept as single leaves holding their full source text.
// A format specifier with nested replacement fields, as in f'{x:>{w}}', is
// split like an f-string instead.
var opaqueKinds = map[string]bool{
	KindFormatSpecifier: true,
	KindTypeConversion:  true,
	"escape_sequence":   true,
}

// TreeBuilder converts tree-sitter parse trees into mutable syntax trees.
// Comments and explicit line continuations are dropped; every other token
// is kept so the tree can be rendered back to source.
type TreeBuilder struct {
	source []byte
	file   string
}

// NewTreeBuilder creates a new tree builder
func NewTreeBuilder(source []byte) *TreeBuilder {
	return &TreeBuilder{
		source: source,
	}
}

// WithFile records the file path in every node location
func (b *TreeBuilder) WithFile(path string) *TreeBuilder {
	b.file = path
	return b
}

// Build converts a tree-sitter tree to a syntax tree
func (b *TreeBuilder) Build(tree *sitter.Tree) (*Node, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("root node is nil")
	}

	return b.buildNode(rootNode, ""), nil
}

// buildNode recursively builds nodes from tree-sitter nodes
func (b *TreeBuilder) buildNode(tsNode *sitter.Node, field string) *Node {
	kind := tsNode.Type()
	node := &Node{
		Kind:     kind,
		Field:    field,
		Named:    tsNode.IsNamed(),
		Location: b.getLocation(tsNode),
	}

	switch {
	case (kind == KindString || kind == KindFormatSpecifier) && b.hasInterpolation(tsNode):
		b.buildFormattedString(node, tsNode)
	case kind == KindString, opaqueKinds[kind], tsNode.ChildCount() == 0:
		node.Text = tsNode.Content(b.source)
	default:
		node.Children = []*Node{}
		childCount := int(tsNode.ChildCount())
		for i := 0; i < childCount; i++ {
			child := tsNode.Child(i)
			if child == nil || b.isTrivia(child) {
				continue
			}
			node.AddChild(b.buildNode(child, tsNode.FieldNameForChild(i)))
		}
		// a leading comment must not move where the node starts
		if len(node.Children) > 0 {
			first := node.Children[0].Location
			node.Location.StartLine, node.Location.StartCol = first.StartLine, first.StartCol
		}
	}

	return node
}

// buildFormattedString splits an f-string or a format specifier into
// literal fragments and replacement fields so identifiers inside the
// braces stay reachable.
func (b *TreeBuilder) buildFormattedString(node *Node, tsNode *sitter.Node) {
	node.Children = []*Node{}
	pos := tsNode.StartByte()

	childCount := int(tsNode.ChildCount())
	for i := 0; i < childCount; i++ {
		child := tsNode.Child(i)
		if child == nil || !isReplacementField(child) {
			continue
		}
		if child.StartByte() > pos {
			node.AddChild(b.fragment(pos, child.StartByte()))
		}
		node.AddChild(b.buildNode(child, tsNode.FieldNameForChild(i)))
		pos = child.EndByte()
	}

	if end := tsNode.EndByte(); end > pos {
		node.AddChild(b.fragment(pos, end))
	}
}

func (b *TreeBuilder) fragment(start, end uint32) *Node {
	return NewLeaf(KindStringFragment, string(b.source[start:end]), false)
}

func (b *TreeBuilder) hasInterpolation(tsNode *sitter.Node) bool {
	childCount := int(tsNode.ChildCount())
	for i := 0; i < childCount; i++ {
		if child := tsNode.Child(i); child != nil && isReplacementField(child) {
			return true
		}
	}
	return false
}

func isReplacementField(tsNode *sitter.Node) bool {
	kind := tsNode.Type()
	return kind == KindInterpolation || kind == KindFormatExpression
}

// isTrivia checks if a node is a comment or an explicit line continuation
func (b *TreeBuilder) isTrivia(tsNode *sitter.Node) bool {
	switch tsNode.Type() {
	case KindComment, KindLineContinuation:
		return true
	default:
		return false
	}
}

// getLocation extracts location information from a tree-sitter node
func (b *TreeBuilder) getLocation(tsNode *sitter.Node) Location {
	start := tsNode.StartPoint()
	end := tsNode.EndPoint()
	return Location{
		File:      b.file,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
	}
}
