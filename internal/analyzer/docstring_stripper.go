package analyzer

import (
	"strings"

	"github.com/coder26-cmd/anti-plagiarism/internal/parser"
)

// DocstringStripper removes documentation strings from function and class
// bodies. Only the first statement of a body is ever considered.
type DocstringStripper struct{}

// NewDocstringStripper creates a new docstring stripper
func NewDocstringStripper() *DocstringStripper {
	return &DocstringStripper{}
}

// Strip removes the leading string statement of every function (sync or
// async) and class body in the tree and returns how many were removed.
// A body left empty stays empty. Running Strip again on the same tree
// removes nothing.
func (s *DocstringStripper) Strip(root *parser.Node) int {
	if root == nil {
		return 0
	}

	var bodies []*parser.Node
	root.Walk(func(n *parser.Node) bool {
		if n.Kind == parser.KindFunctionDefinition || n.Kind == parser.KindClassDefinition {
			if body := n.ChildByField(parser.FieldBody); body != nil {
				bodies = append(bodies, body)
			}
		}
		return true
	})

	removed := 0
	for _, body := range bodies {
		if doc := leadingDocstring(body); doc != nil && body.RemoveChild(doc) {
			removed++
		}
	}
	return removed
}

// leadingDocstring returns the first statement of body if it is a bare
// string literal expression. The statement must also be where the body
// originally started, so a body that was already stripped is left alone.
func leadingDocstring(body *parser.Node) *parser.Node {
	stmts := body.NamedChildren()
	if len(stmts) == 0 || stmts[0].Kind != parser.KindExpressionStatement {
		return nil
	}

	first := stmts[0]
	if first.Location.StartLine != body.Location.StartLine || first.Location.StartCol != body.Location.StartCol {
		return nil
	}
	values := first.NamedChildren()
	if len(values) != 1 || !isPlainStringLiteral(values[0]) {
		return nil
	}
	return first
}

// isPlainStringLiteral accepts str literals, implicitly concatenated or
// not. Bytes and f-strings are not documentation strings.
func isPlainStringLiteral(n *parser.Node) bool {
	switch n.Kind {
	case parser.KindString:
		if !n.IsLeaf() {
			return false // has interpolations
		}
		prefix := strings.ToLower(stringPrefix(n.Text))
		return !strings.ContainsAny(prefix, "bf")
	case parser.KindConcatenatedString:
		parts := n.NamedChildren()
		if len(parts) == 0 {
			return false
		}
		for _, part := range parts {
			if !isPlainStringLiteral(part) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func stringPrefix(literal string) string {
	if i := strings.IndexAny(literal, `'"`); i >= 0 {
		return literal[:i]
	}
	return literal
}
