package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, source string) *Node {
	t.Helper()
	root, err := New().ParseTree(context.Background(), []byte(source))
	require.NoError(t, err)
	return root
}

func TestTreeBuilder(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		checkNodes func(*testing.T, *Node)
	}{
		{
			name: "simple function",
			source: `def hello():
    print("Hello, World!")`,
			checkNodes: func(t *testing.T, root *Node) {
				assert.Equal(t, KindModule, root.Kind)
				stmts := root.NamedChildren()
				require.Len(t, stmts, 1)
				assert.Equal(t, KindFunctionDefinition, stmts[0].Kind)
				name := stmts[0].ChildByField(FieldName)
				require.NotNil(t, name)
				assert.Equal(t, "hello", name.Text)
				assert.Equal(t, KindBlock, stmts[0].ChildByField(FieldBody).Kind)
			},
		},
		{
			name: "class definition",
			source: `class MyClass:
    def __init__(self):
        self.value = 42`,
			checkNodes: func(t *testing.T, root *Node) {
				classes := root.FindByKind(KindClassDefinition)
				require.Len(t, classes, 1)
				assert.Equal(t, "MyClass", classes[0].ChildByField(FieldName).Text)

				attrs := root.FindByKind(KindAttribute)
				require.Len(t, attrs, 1)
				assert.Equal(t, "value", attrs[0].ChildByField(FieldAttribute).Text)
			},
		},
		{
			name:   "comments are dropped",
			source: "x = 1  # trailing\n# standalone\ny = 2\n",
			checkNodes: func(t *testing.T, root *Node) {
				assert.Empty(t, root.FindByKind(KindComment))
				assert.Len(t, root.NamedChildren(), 2)
			},
		},
		{
			name:   "f-string keeps interpolated identifiers",
			source: `msg = f"hi {name}, {count:>3}"`,
			checkNodes: func(t *testing.T, root *Node) {
				interps := root.FindByKind(KindInterpolation)
				require.Len(t, interps, 2)

				var ids []string
				for _, interp := range interps {
					for _, id := range interp.FindByKind(KindIdentifier) {
						ids = append(ids, id.Text)
					}
				}
				assert.Equal(t, []string{"name", "count"}, ids)

				fragments := root.FindByKind(KindStringFragment)
				require.NotEmpty(t, fragments)
				assert.Equal(t, `f"hi `, fragments[0].Text)
			},
		},
		{
			name:   "format specifier with replacement fields",
			source: `s = f"{x!r:>{w}.{p}}"`,
			checkNodes: func(t *testing.T, root *Node) {
				specs := root.FindByKind(KindFormatSpecifier)
				require.NotEmpty(t, specs)
				assert.False(t, specs[0].IsLeaf())
				assert.Len(t, specs[0].FindByKind(KindFormatExpression), 2)

				var ids []string
				for _, id := range root.FindByKind(KindIdentifier) {
					ids = append(ids, id.Text)
				}
				assert.Equal(t, []string{"s", "x", "w", "p"}, ids)
			},
		},
		{
			name:   "plain format specifier is a leaf",
			source: `s = f"{x:>10}"`,
			checkNodes: func(t *testing.T, root *Node) {
				specs := root.FindByKind(KindFormatSpecifier)
				require.Len(t, specs, 1)
				assert.True(t, specs[0].IsLeaf())
				assert.Equal(t, ":>10", specs[0].Text)
			},
		},
		{
			name:   "plain string is a leaf",
			source: `s = "abc"`,
			checkNodes: func(t *testing.T, root *Node) {
				strs := root.FindByKind(KindString)
				require.Len(t, strs, 1)
				assert.True(t, strs[0].IsLeaf())
				assert.Equal(t, `"abc"`, strs[0].Text)
			},
		},
		{
			name:   "async function",
			source: "async def run():\n    await go()\n",
			checkNodes: func(t *testing.T, root *Node) {
				funcs := root.FindByKind(KindFunctionDefinition)
				require.Len(t, funcs, 1)
				assert.True(t, funcs[0].IsAsync())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseTree(t, tt.source)
			tt.checkNodes(t, root)

			validator := NewValidatorVisitor()
			root.Accept(validator)
			assert.True(t, validator.IsValid(), "validation errors: %v", validator.GetErrors())
		})
	}
}

func TestNodeLocation(t *testing.T) {
	root := parseTree(t, "x = 1\n\ndef f():\n    return x\n")

	funcs := root.FindByKind(KindFunctionDefinition)
	require.Len(t, funcs, 1)
	assert.Equal(t, 3, funcs[0].Location.StartLine)
	assert.Equal(t, 0, funcs[0].Location.StartCol)
}

func TestNodeHelpers(t *testing.T) {
	root := parseTree(t, "def outer():\n    def inner():\n        pass\n")

	funcs := root.FindByKind(KindFunctionDefinition)
	require.Len(t, funcs, 2)
	inner := funcs[1]

	assert.Equal(t, funcs[0], inner.GetParentOfKind(KindFunctionDefinition))
	assert.Equal(t, root, inner.GetParentOfKind(KindModule))
	assert.Nil(t, inner.GetParentOfKind(KindClassDefinition))
	assert.True(t, inner.IsDefinition())
	assert.False(t, inner.IsAsync())
}

func TestNodeRemoveChild(t *testing.T) {
	parent := NewNode(KindBlock)
	a := NewLeaf(KindIdentifier, "a", true)
	b := NewLeaf(KindIdentifier, "b", true)
	parent.AddChild(a)
	parent.AddChild(b)

	assert.True(t, parent.RemoveChild(a))
	assert.Nil(t, a.Parent)
	assert.Equal(t, []*Node{b}, parent.Children)
	assert.False(t, parent.RemoveChild(a))
}

func TestNodeCopy(t *testing.T) {
	root := parseTree(t, "x = y + 1\n")
	clone := root.Copy()

	for _, id := range clone.FindByKind(KindIdentifier) {
		id.Text = "z"
	}

	var original []string
	for _, id := range root.FindByKind(KindIdentifier) {
		original = append(original, id.Text)
	}
	assert.Equal(t, []string{"x", "y"}, original)
	assert.Nil(t, clone.Parent)

	validator := NewValidatorVisitor()
	clone.Accept(validator)
	assert.True(t, validator.IsValid())
}

func TestNodeString(t *testing.T) {
	assert.Equal(t, "identifier(x)", NewLeaf(KindIdentifier, "x", true).String())
	assert.Equal(t, `"("`, NewLeaf("(", "(", false).String())

	node := NewNode(KindBlock)
	node.Field = FieldBody
	assert.Equal(t, "body: block", node.String())
}
