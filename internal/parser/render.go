package parser

import (
	"strings"
)

const indentUnit = "    "

// clauseKinds continue a compound statement on a new line at the
// statement's own indentation.
var clauseKinds = map[string]bool{
	"elif_clause":         true,
	"else_clause":         true,
	KindExceptClause:      true,
	KindExceptGroupClause: true,
	"finally_clause":      true,
}

// tightKinds render as one token without inner spaces.
var tightKinds = map[string]bool{
	KindDottedName:     true,
	KindRelativeImport: true,
	KindImportPrefix:   true,
}

// callOpenerParents own a bracket that hugs the preceding expression.
var callOpenerParents = map[string]bool{
	KindArgumentList:  true,
	KindParameters:    true,
	"subscript":       true,
	"generic_type":    true,
	KindTypeParameter: true,
	"type_parameters": true,
	KindClassPattern:  true,
}

var splatParents = map[string]bool{
	"list_splat":               true,
	"dictionary_splat":         true,
	KindListSplatPattern:       true,
	KindDictionarySplatPattern: true,
	KindSplatPattern:           true,
}

// Render converts a syntax tree back into canonical Python source.
//
// The output has one statement per line, four-space indentation, a blank
// line before every definition that is not at the very start, normalized
// spacing inside lines and no trailing newline. Comments are not part of
// the tree and never appear. Empty blocks are rendered as `pass`.
func Render(root *Node) string {
	if root == nil {
		return ""
	}
	r := &renderer{}
	switch {
	case root.Kind == KindModule:
		r.statements(root.NamedChildren(), 0)
	case root.Kind == KindBlock:
		r.block(root, 0)
	case isStatement(root):
		r.statement(root, 0)
	default:
		return r.inline(root)
	}
	return strings.Join(r.lines, "\n")
}

// RenderExpression renders a single node on one line.
func RenderExpression(n *Node) string {
	if n == nil {
		return ""
	}
	return (&renderer{}).inline(n)
}

type renderer struct {
	lines []string
}

type token struct {
	text string
	leaf *Node
}

func (r *renderer) emit(depth int, text string) {
	r.lines = append(r.lines, strings.Repeat(indentUnit, depth)+text)
}

func (r *renderer) statements(stmts []*Node, depth int) {
	for _, stmt := range stmts {
		if stmt.IsDefinition() && len(r.lines) > 0 {
			r.lines = append(r.lines, "")
		}
		r.statement(stmt, depth)
	}
}

func (r *renderer) block(block *Node, depth int) {
	stmts := block.NamedChildren()
	if len(stmts) == 0 {
		r.emit(depth, "pass")
		return
	}
	r.statements(stmts, depth)
}

func (r *renderer) statement(n *Node, depth int) {
	if n.Kind == KindDecoratedDefinition {
		for _, c := range n.NamedChildren() {
			if c.Kind == KindDecorator {
				r.emit(depth, r.inline(c))
			} else {
				r.statement(c, depth)
			}
		}
		return
	}

	if !isCompound(n) {
		r.emit(depth, r.inline(n))
		return
	}

	var header []*Node
	for _, c := range n.Children {
		switch {
		case c.Kind == KindBlock:
			r.emit(depth, r.inlineSeq(header))
			header = nil
			r.block(c, depth+1)
		case clauseKinds[c.Kind]:
			r.statement(c, depth)
		default:
			header = append(header, c)
		}
	}
	if len(header) > 0 {
		r.emit(depth, r.inlineSeq(header))
	}
}

func (r *renderer) inline(n *Node) string {
	return r.inlineSeq([]*Node{n})
}

func (r *renderer) inlineSeq(nodes []*Node) string {
	var toks []token
	for _, n := range nodes {
		toks = r.collect(n, toks)
	}

	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 && needsSpace(toks[i-1], tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.text)
	}
	return sb.String()
}

// collect appends the tokens of n, applying token level normalizations.
func (r *renderer) collect(n *Node, toks []token) []token {
	switch {
	case n.Kind == KindString && len(n.Children) > 0:
		return append(toks, token{text: r.formattedString(n), leaf: n})
	case tightKinds[n.Kind]:
		return append(toks, token{text: leafText(n), leaf: n})
	case n.IsLeaf():
		return r.appendLeaf(n, toks)
	}

	for _, c := range n.Children {
		toks = r.collect(c, toks)
	}
	return toks
}

func (r *renderer) appendLeaf(n *Node, toks []token) []token {
	text := n.Text
	if text == "" || (!n.Named && text == ";") {
		return toks
	}
	// a literal inside a replacement field must not reuse the quote of the
	// enclosing f-string
	if n.Kind == KindString && n.GetParentOfKind(KindInterpolation) == nil {
		text = normalizeStringLiteral(text)
	}

	if isCloser(n) && len(toks) > 0 {
		last := toks[len(toks)-1]
		if !last.leaf.Named && last.text == "," && !keepsTrailingComma(last.leaf) {
			toks = toks[:len(toks)-1]
		}
	}
	if !n.Named && (text == "(" || text == ")") && n.Parent != nil && n.Parent.Kind == KindImportFromStatement {
		return toks
	}
	return append(toks, token{text: text, leaf: n})
}

func (r *renderer) formattedString(n *Node) string {
	var sb strings.Builder
	r.writeFormatted(&sb, n)
	return sb.String()
}

// writeFormatted writes an f-string or a format specifier, rendering the
// expressions of its replacement fields.
func (r *renderer) writeFormatted(sb *strings.Builder, n *Node) {
	for _, c := range n.Children {
		if c.Kind != KindInterpolation && c.Kind != KindFormatExpression {
			sb.WriteString(c.Text)
			continue
		}
		for _, part := range c.Children {
			switch {
			case part.Kind == KindFormatSpecifier && len(part.Children) > 0:
				r.writeFormatted(sb, part)
			case !part.Named || part.Kind == KindFormatSpecifier || part.Kind == KindTypeConversion:
				sb.WriteString(leafText(part))
			default:
				sb.WriteString(r.inline(part))
			}
		}
	}
}

func needsSpace(prev, next token) bool {
	p, nx := prev.text, next.text
	prevPunct := !prev.leaf.Named
	nextPunct := !next.leaf.Named

	if prevPunct && (p == "(" || p == "[" || p == "{") {
		return false
	}
	if nextPunct {
		switch nx {
		case ")", "]", "}", ",", ":", ".":
			return false
		case "(", "[":
			if parent := next.leaf.Parent; parent != nil {
				if callOpenerParents[parent.Kind] || parent.Field == FieldArguments {
					return false
				}
			}
		case "=":
			if parent := next.leaf.Parent; parent != nil && isTightAssignment(parent) {
				return false
			}
		}
	}
	if prevPunct {
		parent := prev.leaf.Parent
		if p == "." || parent == nil {
			return p != "."
		}
		switch {
		case parent.Kind == "unary_operator":
			return false
		case (p == "*" || p == "**") && splatParents[parent.Kind]:
			return false
		case p == "@" && parent.Kind == KindDecorator:
			return false
		case p == "=" && isTightAssignment(parent):
			return false
		case p == ":" && parent.Kind == "slice":
			return false
		}
	}
	return true
}

func isTightAssignment(n *Node) bool {
	switch n.Kind {
	case KindKeywordArgument, KindDefaultParameter, KindKeywordPattern:
		return true
	default:
		return false
	}
}

func isCloser(n *Node) bool {
	if n.Named {
		return false
	}
	return n.Text == ")" || n.Text == "]" || n.Text == "}"
}

// keepsTrailingComma reports whether a comma before a closing bracket is
// significant, as in one-element tuples and tuple subscripts.
func keepsTrailingComma(comma *Node) bool {
	parent := comma.Parent
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case "tuple", "tuple_pattern":
		return len(parent.NamedChildren()) == 1
	case "subscript":
		return true
	default:
		return false
	}
}

// normalizeStringLiteral lowercases the prefix and switches a simple
// double-quoted literal to single quotes.
func normalizeStringLiteral(text string) string {
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		i++
	}
	prefix, rest := strings.ToLower(text[:i]), text[i:]

	if len(rest) < 2 || strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
		return prefix + rest
	}
	if rest[0] == '"' && rest[len(rest)-1] == '"' {
		body := rest[1 : len(rest)-1]
		if !strings.ContainsAny(body, "'\"\\") {
			return prefix + "'" + body + "'"
		}
	}
	return prefix + rest
}

func leafText(n *Node) string {
	if n.IsLeaf() {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(leafText(c))
	}
	return sb.String()
}

func isCompound(n *Node) bool {
	if clauseKinds[n.Kind] || n.Kind == KindCaseClause {
		return true
	}
	switch n.Kind {
	case KindFunctionDefinition, KindClassDefinition,
		"if_statement", "for_statement", "while_statement",
		"try_statement", "with_statement", "match_statement":
		return true
	default:
		return false
	}
}

func isStatement(n *Node) bool {
	if isCompound(n) || n.Kind == KindDecoratedDefinition {
		return true
	}
	return strings.HasSuffix(n.Kind, "_statement")
}
