package analyzer

import (
	"math"
	"strconv"
	"strings"
)

// ScoreDecimals is the number of decimal places kept in reported scores.
const ScoreDecimals = 5

// TextualSimilarityAnalyzer scores two canonical texts with a normalized
// Levenshtein distance. Strings are compared by Unicode code point.
type TextualSimilarityAnalyzer struct{}

// NewTextualSimilarityAnalyzer creates a new textual similarity analyzer
func NewTextualSimilarityAnalyzer() *TextualSimilarityAnalyzer {
	return &TextualSimilarityAnalyzer{}
}

// Similarity returns 1 - d/max(|s1|, |s2|), unrounded.
// Two empty strings are identical and score 1.0.
func (t *TextualSimilarityAnalyzer) Similarity(s1, s2 string) float64 {
	_, similarity := t.Measure(s1, s2)
	return similarity
}

// Measure returns both the edit distance and the unrounded similarity.
func (t *TextualSimilarityAnalyzer) Measure(s1, s2 string) (int, float64) {
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := maxInt(len(r1), len(r2))
	if maxLen == 0 {
		return 0, 1.0
	}

	distance := levenshtein(r1, r2)
	return distance, 1.0 - float64(distance)/float64(maxLen)
}

// Score returns the similarity rounded for reporting
func (t *TextualSimilarityAnalyzer) Score(s1, s2 string) float64 {
	return RoundScore(t.Similarity(s1, s2))
}

// Distance computes the Levenshtein edit distance between two strings.
func (t *TextualSimilarityAnalyzer) Distance(s1, s2 string) int {
	return levenshtein([]rune(s1), []rune(s2))
}

// GetName returns the name of this analyzer
func (t *TextualSimilarityAnalyzer) GetName() string {
	return "levenshtein"
}

// levenshtein uses dynamic programming with O(min(m,n)) space.
func levenshtein(s1, s2 []rune) int {
	// Ensure s1 is the shorter string for space optimization
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	m := len(s1)
	n := len(s2)

	if m == 0 {
		return n
	}

	// Use two rows for space optimization
	prev := make([]int, m+1)
	curr := make([]int, m+1)

	for i := 0; i <= m; i++ {
		prev[i] = i
	}

	for j := 1; j <= n; j++ {
		curr[0] = j
		for i := 1; i <= m; i++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[m]
}

// RoundScore rounds half away from zero to ScoreDecimals places.
func RoundScore(v float64) float64 {
	scale := math.Pow10(ScoreDecimals)
	return math.Round(v*scale) / scale
}

// FormatScore prints a rounded score the way Python's str() prints a
// float: shortest representation, at least one decimal, exponent form
// below 1e-4 ("1.0", "0.85", "1e-05").
func FormatScore(v float64) string {
	if v != 0 && math.Abs(v) < 1e-4 {
		// Go already pads the exponent to two digits, like Python.
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// min3 returns the minimum of three integers
func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}

// maxInt returns the maximum of two integers
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
