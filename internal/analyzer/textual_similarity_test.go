package analyzer

import (
	"math/rand"
	"testing"

	reflev "github.com/agnivade/levenshtein"
	"github.com/stretchr/testify/assert"
)

func TestTextualSimilarity_Distance(t *testing.T) {
	scorer := NewTextualSimilarityAnalyzer()

	tests := []struct {
		name string
		s1   string
		s2   string
		want int
	}{
		{"both empty", "", "", 0},
		{"one empty", "", "abc", 3},
		{"identical", "kitten", "kitten", 0},
		{"classic", "kitten", "sitting", 3},
		{"swapped", "sitting", "kitten", 3},
		{"substitution", "abc", "abd", 1},
		{"insertion", "ac", "abc", 1},
		{"unicode runes", "héllo", "hello", 1},
		{"completely different", "abc", "xyz", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Distance(tt.s1, tt.s2))
		})
	}
}

func TestTextualSimilarity_MatchesReferenceImplementation(t *testing.T) {
	scorer := NewTextualSimilarityAnalyzer()
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("ab cdn0=\n:éλ")

	randomString := func() string {
		n := rng.Intn(40)
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(out)
	}

	for i := 0; i < 200; i++ {
		s1, s2 := randomString(), randomString()
		assert.Equal(t, reflev.ComputeDistance(s1, s2), scorer.Distance(s1, s2), "%q vs %q", s1, s2)
	}
}

func TestTextualSimilarity_Similarity(t *testing.T) {
	scorer := NewTextualSimilarityAnalyzer()

	assert.Equal(t, 1.0, scorer.Similarity("", ""))
	assert.Equal(t, 0.0, scorer.Similarity("", "abc"))
	assert.Equal(t, 1.0, scorer.Similarity("same", "same"))
	assert.InDelta(t, 1.0-3.0/7.0, scorer.Similarity("kitten", "sitting"), 1e-12)
	assert.Equal(t, scorer.Similarity("abc", "abd"), scorer.Similarity("abd", "abc"))

	distance, similarity := scorer.Measure("abcd", "abce")
	assert.Equal(t, 1, distance)
	assert.Equal(t, 0.75, similarity)
}

func TestTextualSimilarity_Bounds(t *testing.T) {
	scorer := NewTextualSimilarityAnalyzer()
	pairs := [][2]string{
		{"a", "bbbbbbbb"},
		{"x = 1", "def f():\n    return 2"},
		{"", "z"},
		{"λλλ", "λ"},
	}
	for _, p := range pairs {
		d, sim := scorer.Measure(p[0], p[1])
		maxLen := maxInt(len([]rune(p[0])), len([]rune(p[1])))
		assert.GreaterOrEqual(t, d, 0)
		assert.LessOrEqual(t, d, maxLen)
		assert.GreaterOrEqual(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{0.0, 0.0},
		{0.123456, 0.12346},
		{0.123454, 0.12345},
		{2.0 / 3.0, 0.66667},
		{0.000004, 0.0},
		{0.000006, 0.00001},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundScore(tt.in), "RoundScore(%v)", tt.in)
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.0, "1.0"},
		{0.0, "0.0"},
		{0.85, "0.85"},
		{0.66667, "0.66667"},
		{0.5, "0.5"},
		{0.00001, "1e-05"},
		{0.00012, "0.00012"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatScore(tt.in))
	}
}
