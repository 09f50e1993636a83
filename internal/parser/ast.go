package parser

import "fmt"

// Node kinds produced by the tree-sitter Python grammar that the
// normalization pipeline and the renderer care about.
const (
	KindModule                 = "module"
	KindBlock                  = "block"
	KindFunctionDefinition     = "function_definition"
	KindClassDefinition        = "class_definition"
	KindDecoratedDefinition    = "decorated_definition"
	KindDecorator              = "decorator"
	KindExpressionStatement    = "expression_statement"
	KindIdentifier             = "identifier"
	KindString                 = "string"
	KindConcatenatedString     = "concatenated_string"
	KindInterpolation          = "interpolation"
	KindAttribute              = "attribute"
	KindDottedName             = "dotted_name"
	KindParameters             = "parameters"
	KindLambdaParameters       = "lambda_parameters"
	KindArgumentList           = "argument_list"
	KindKeywordArgument        = "keyword_argument"
	KindDefaultParameter       = "default_parameter"
	KindTypedParameter         = "typed_parameter"
	KindTypedDefaultParameter  = "typed_default_parameter"
	KindListSplatPattern       = "list_splat_pattern"
	KindDictionarySplatPattern = "dictionary_splat_pattern"
	KindAsPattern              = "as_pattern"
	KindWithItem               = "with_item"
	KindExceptClause           = "except_clause"
	KindExceptGroupClause      = "except_group_clause"
	KindImportStatement        = "import_statement"
	KindImportFromStatement    = "import_from_statement"
	KindFutureImportStatement  = "future_import_statement"
	KindAliasedImport          = "aliased_import"
	KindRelativeImport         = "relative_import"
	KindImportPrefix           = "import_prefix"
	KindGlobalStatement        = "global_statement"
	KindNonlocalStatement      = "nonlocal_statement"
	KindCaseClause             = "case_clause"
	KindCasePattern            = "case_pattern"
	KindClassPattern           = "class_pattern"
	KindKeywordPattern         = "keyword_pattern"
	KindSplatPattern           = "splat_pattern"
	KindTypeParameter          = "type_parameter"
	KindFormatSpecifier        = "format_specifier"
	KindFormatExpression       = "format_expression"
	KindTypeConversion         = "type_conversion"
	KindComment                = "comment"
	KindLineContinuation       = "line_continuation"

	// KindStringFragment is synthesized by the builder for the literal
	// parts of an f-string that surround its interpolations.
	KindStringFragment = "string_fragment"
)

// Field names used by the grammar.
const (
	FieldName      = "name"
	FieldBody      = "body"
	FieldAttribute = "attribute"
	FieldAlias     = "alias"
	FieldType      = "type"
	FieldArguments = "arguments"
	FieldSubscript = "subscript"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Node is one node of a mutable Python syntax tree. Inner nodes keep their
// children in source order; leaves carry the token text. Normalization
// passes rewrite Text and Children in place, Location is never touched.
type Node struct {
	Kind     string
	Field    string // field name in the parent, empty if none
	Named    bool   // false for punctuation and keyword tokens
	Text     string // token text, leaves only
	Children []*Node
	Location Location
	Parent   *Node
}

// NewNode creates a new inner node of the given kind
func NewNode(kind string) *Node {
	return &Node{
		Kind:     kind,
		Named:    true,
		Children: []*Node{},
	}
}

// NewLeaf creates a new token node
func NewLeaf(kind, text string, named bool) *Node {
	return &Node{
		Kind:  kind,
		Named: named,
		Text:  text,
	}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

// RemoveChild detaches child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// IsLeaf reports whether the node is a token
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildByField returns the first child stored under the given field name
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// NamedChildren returns the children that are named grammar nodes
func (n *Node) NamedChildren() []*Node {
	var named []*Node
	for _, c := range n.Children {
		if c.Named {
			named = append(named, c)
		}
	}
	return named
}

// IsDefinition returns true for function, class and decorated definitions
func (n *Node) IsDefinition() bool {
	switch n.Kind {
	case KindFunctionDefinition, KindClassDefinition, KindDecoratedDefinition:
		return true
	default:
		return false
	}
}

// IsAsync returns true for `async def` function definitions
func (n *Node) IsAsync() bool {
	if n.Kind != KindFunctionDefinition {
		return false
	}
	for _, c := range n.Children {
		if !c.Named && c.Text == "async" {
			return true
		}
	}
	return false
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.IsLeaf() && n.Text != "" {
		if n.Named {
			return fmt.Sprintf("%s(%s)", n.Kind, n.Text)
		}
		return fmt.Sprintf("%q", n.Text)
	}
	if n.Field != "" {
		return fmt.Sprintf("%s: %s", n.Field, n.Kind)
	}
	return n.Kind
}

// Walk traverses the tree in depth-first pre-order. Children are read
// after the visitor returns, so the visitor may edit them.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// Find finds all nodes matching a predicate
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var results []*Node
	n.Walk(func(node *Node) bool {
		if predicate(node) {
			results = append(results, node)
		}
		return true
	})
	return results
}

// FindByKind finds all nodes of a specific kind
func (n *Node) FindByKind(kind string) []*Node {
	return n.Find(func(node *Node) bool {
		return node.Kind == kind
	})
}

// GetParentOfKind finds the nearest ancestor of a specific kind
func (n *Node) GetParentOfKind(kind string) *Node {
	current := n.Parent
	for current != nil {
		if current.Kind == kind {
			return current
		}
		current = current.Parent
	}
	return nil
}

// Copy creates a deep copy of the node. The copy has no parent.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}

	copied := &Node{
		Kind:     n.Kind,
		Field:    n.Field,
		Named:    n.Named,
		Text:     n.Text,
		Location: n.Location,
	}

	if n.Children != nil {
		copied.Children = make([]*Node, 0, len(n.Children))
	}
	for _, child := range n.Children {
		copied.AddChild(child.Copy())
	}

	return copied
}
