package analyzer

import (
	"context"
	"fmt"

	"github.com/coder26-cmd/anti-plagiarism/internal/parser"
)

// Side names one input of a comparison in errors.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// SideError reports which input of a comparison failed.
type SideError struct {
	Side Side
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Side, e.Err)
}

func (e *SideError) Unwrap() error {
	return e.Err
}

// Normalized is one source after the normalization pipeline.
type Normalized struct {
	Tree       *parser.Node
	Names      *IdentifierMap
	Docstrings int
	Canonical  string
}

// ComparisonResult is the outcome of comparing two sources.
type ComparisonResult struct {
	Similarity float64 // unrounded
	Score      float64 // rounded to ScoreDecimals
	Distance   int
	CanonicalA string
	CanonicalB string
}

// Comparator runs parse, canonicalize, strip, render and score for a pair
// of sources. It holds no per-call state and is safe for concurrent use.
type Comparator struct {
	canonicalizer *IdentifierCanonicalizer
	stripper      *DocstringStripper
	scorer        *TextualSimilarityAnalyzer
}

// NewComparator creates a comparator with the default pipeline stages
func NewComparator() *Comparator {
	return &Comparator{
		canonicalizer: NewIdentifierCanonicalizer(),
		stripper:      NewDocstringStripper(),
		scorer:        NewTextualSimilarityAnalyzer(),
	}
}

// Normalize parses src and applies the normalization stages. The returned
// tree is owned by the caller.
func (c *Comparator) Normalize(ctx context.Context, src []byte) (*Normalized, error) {
	// tree-sitter parsers are not goroutine-safe, so each call gets its own
	root, err := parser.New().ParseTree(ctx, src)
	if err != nil {
		return nil, err
	}

	names := c.canonicalizer.Canonicalize(root)
	removed := c.stripper.Strip(root)

	return &Normalized{
		Tree:       root,
		Names:      names,
		Docstrings: removed,
		Canonical:  parser.Render(root),
	}, nil
}

// Canonicalize returns the canonical text of one source.
func (c *Comparator) Canonicalize(ctx context.Context, src []byte) (string, error) {
	norm, err := c.Normalize(ctx, src)
	if err != nil {
		return "", err
	}
	return norm.Canonical, nil
}

// Compare normalizes both sources independently and scores them. If a
// source does not parse the error is a *SideError wrapping the parse
// error; source a is checked first.
func (c *Comparator) Compare(ctx context.Context, srcA, srcB []byte) (*ComparisonResult, error) {
	a, err := c.Normalize(ctx, srcA)
	if err != nil {
		return nil, &SideError{Side: SideA, Err: err}
	}
	b, err := c.Normalize(ctx, srcB)
	if err != nil {
		return nil, &SideError{Side: SideB, Err: err}
	}

	return c.CompareCanonical(a.Canonical, b.Canonical), nil
}

// CompareCanonical scores two already canonical texts.
func (c *Comparator) CompareCanonical(canonicalA, canonicalB string) *ComparisonResult {
	distance, similarity := c.scorer.Measure(canonicalA, canonicalB)
	return &ComparisonResult{
		Similarity: similarity,
		Score:      RoundScore(similarity),
		Distance:   distance,
		CanonicalA: canonicalA,
		CanonicalB: canonicalB,
	}
}
