package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax matches every SyntaxError with errors.Is
var ErrSyntax = errors.New("invalid Python syntax")

// SyntaxError locates the first offending node of a failed parse.
// Line and Column are 1-based.
type SyntaxError struct {
	Line   int
	Column int
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: unexpected %s at line %d, column %d", ErrSyntax, e.Detail, e.Line, e.Column)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// The grammar still accepts these Python 2 statements; Python 3 does not.
var legacyStatements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// Parser wraps a tree-sitter parser configured for Python. It is not safe
// for concurrent use; create one per comparison.
type Parser struct {
	parser *sitter.Parser
}

func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// ParseResult is a successful concrete parse
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// Parse returns the concrete tree of source, or a *SyntaxError when the
// tree holds an ERROR or MISSING node or a Python 2 statement.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	root := tree.RootNode()
	if err := checkSyntax(root); err != nil {
		return nil, err
	}
	return &ParseResult{Tree: tree, RootNode: root, SourceCode: source}, nil
}

// ParseTree parses source into a mutable syntax tree
func (p *Parser) ParseTree(ctx context.Context, source []byte) (*Node, error) {
	result, err := p.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return NewTreeBuilder(result.SourceCode).Build(result.Tree)
}

// checkSyntax walks root in pre-order with a cursor and reports the
// first invalid node
func checkSyntax(root *sitter.Node) error {
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	for {
		n := cursor.CurrentNode()
		if n.IsError() || n.IsMissing() || legacyStatements[n.Type()] {
			start := n.StartPoint()
			return &SyntaxError{
				Line:   int(start.Row) + 1,
				Column: int(start.Column) + 1,
				Detail: describeNode(n),
			}
		}
		if cursor.GoToFirstChild() || cursor.GoToNextSibling() {
			continue
		}
		for !cursor.GoToNextSibling() {
			if !cursor.GoToParent() {
				return nil
			}
		}
	}
}

func describeNode(n *sitter.Node) string {
	switch {
	case n.IsMissing():
		return fmt.Sprintf("end of input (missing %q)", n.Type())
	case legacyStatements[n.Type()]:
		return "Python 2 " + n.Type()
	default:
		return "token"
	}
}
