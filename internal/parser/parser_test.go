package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calculatorSource = `import sys

def fibonacci(n):
    if n <= 1:
        return n
    return fibonacci(n-1) + fibonacci(n-2)

class Calculator:
    def add(self, a, b):
        return a + b

if __name__ == "__main__":
    calc = Calculator()
    print(calc.add(10, 5))`

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantLine int // 0 when the source is valid
	}{
		{name: "module", source: calculatorSource},
		{name: "empty source", source: ""},
		{name: "comments only", source: "# nothing here\n"},
		{name: "async and match", source: "async def f(x):\n    match x:\n        case [a, *rest]:\n            await g(a)\n"},
		{name: "walrus and f-string", source: "if (n := len(xs)) > 3:\n    print(f\"{n!r:>4}\")\n"},
		{name: "broken def", source: "def broken(:\n    pass", wantLine: 1},
		{name: "unclosed call", source: "def incomplete(\n", wantLine: 1},
		{name: "python 2 print", source: "x = 1\nprint \"hello\"", wantLine: 2},
		{name: "nested python 2 print", source: "def f():\n    if x:\n        print \"hi\"\n", wantLine: 3},
		{name: "unclosed bracket", source: "x = 1\ny = (\n", wantLine: 2},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Parse(context.Background(), []byte(tt.source))

			if tt.wantLine == 0 {
				require.NoError(t, err)
				assert.NotNil(t, result.Tree)
				assert.Equal(t, KindModule, result.RootNode.Type())
				assert.Equal(t, tt.source, string(result.SourceCode))
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.GreaterOrEqual(t, syntaxErr.Line, 1)
			assert.LessOrEqual(t, syntaxErr.Line, tt.wantLine)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestSyntaxError_Legacy(t *testing.T) {
	_, err := New().Parse(context.Background(), []byte("print \"hello\"\n"))

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "Python 2 print_statement", syntaxErr.Detail)
	assert.Equal(t, 1, syntaxErr.Line)
	assert.Equal(t, 1, syntaxErr.Column)
}

func TestParseTree(t *testing.T) {
	p := New()
	ctx := context.Background()

	root, err := p.ParseTree(ctx, []byte("def f(a):\n    return a\n"))
	require.NoError(t, err)
	assert.Equal(t, KindModule, root.Kind)
	assert.Len(t, root.FindByKind(KindFunctionDefinition), 1)

	_, err = p.ParseTree(ctx, []byte("def ("))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParser_Reuse(t *testing.T) {
	p := New()
	ctx := context.Background()

	_, err := p.Parse(ctx, []byte("def ("))
	require.Error(t, err)

	_, err = p.Parse(ctx, []byte("x = 1"))
	assert.NoError(t, err, "a failed parse must not poison the parser")
}

func BenchmarkParseTree(b *testing.B) {
	p := New()
	ctx := context.Background()
	source := []byte(calculatorSource)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.ParseTree(ctx, source)
	}
}
