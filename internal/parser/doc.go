// Package parser turns Python 3 source text into a mutable syntax tree and
// renders such trees back into canonical source.
//
// Parsing is done with tree-sitter. Any syntax error, including Python 2
// only statements the grammar tolerates, fails the parse with a
// *SyntaxError that matches ErrSyntax and carries the 1-based position.
// The resulting Node tree drops comments and line continuations but keeps
// every other token, so normalization passes can rename identifiers or
// remove statements in place and Render can print the result with uniform
// layout.
//
// Basic usage:
//
//	p := parser.New()
//	root, err := p.ParseTree(ctx, []byte("def hello(): pass"))
//	if err != nil {
//	    // errors.Is(err, parser.ErrSyntax)
//	}
//	fmt.Println(parser.Render(root))
package parser
