package analyzer

import (
	"strconv"

	"github.com/coder26-cmd/anti-plagiarism/internal/parser"
)

// DefaultAliasPrefix is prepended to the first-occurrence index of a name.
const DefaultAliasPrefix = "n"

const (
	kindAsPatternTarget    = "as_pattern_target"
	kindType               = "type"
	kindSplatType          = "splat_type"
	kindConstrainedType    = "constrained_type"
	kindMemberType         = "member_type"
	kindGenericType        = "generic_type"
	kindTypeAliasStatement = "type_alias_statement"

	fieldLeft = "left"
)

// IdentifierMapping is one entry of an IdentifierMap.
type IdentifierMapping struct {
	Name  string `json:"name" yaml:"name"`
	Alias string `json:"alias" yaml:"alias"`
}

// IdentifierMap maps raw names to aliases in order of first occurrence.
// It belongs to a single canonicalization pass over one tree.
type IdentifierMap struct {
	prefix  string
	aliases map[string]string
	order   []string
}

// NewIdentifierMap creates an empty map that hands out prefix0, prefix1, ...
func NewIdentifierMap(prefix string) *IdentifierMap {
	return &IdentifierMap{
		prefix:  prefix,
		aliases: make(map[string]string),
	}
}

// Alias returns the alias for name, assigning the next one if name is new.
func (m *IdentifierMap) Alias(name string) string {
	if alias, ok := m.aliases[name]; ok {
		return alias
	}
	alias := m.prefix + strconv.Itoa(len(m.order))
	m.aliases[name] = alias
	m.order = append(m.order, name)
	return alias
}

// Lookup returns the alias assigned to name, if any.
func (m *IdentifierMap) Lookup(name string) (string, bool) {
	alias, ok := m.aliases[name]
	return alias, ok
}

// Len returns the number of distinct names seen
func (m *IdentifierMap) Len() int {
	return len(m.order)
}

// Entries returns the mappings in alias order
func (m *IdentifierMap) Entries() []IdentifierMapping {
	entries := make([]IdentifierMapping, 0, len(m.order))
	for _, name := range m.order {
		entries = append(entries, IdentifierMapping{Name: name, Alias: m.aliases[name]})
	}
	return entries
}

// IdentifierCanonicalizer rewrites every name reference in a tree to a
// synthetic alias based on first appearance.
//
// Only identifiers used as values are rewritten. Definition names of
// functions and classes, parameters, attribute and keyword names, imports,
// global/nonlocal declarations, exception and pattern capture names and
// declared type parameters keep their spelling. The map is flat: scoping is ignored, so the same raw name
// in two functions gets the same alias.
type IdentifierCanonicalizer struct {
	prefix string
}

// NewIdentifierCanonicalizer creates a canonicalizer using DefaultAliasPrefix
func NewIdentifierCanonicalizer() *IdentifierCanonicalizer {
	return &IdentifierCanonicalizer{prefix: DefaultAliasPrefix}
}

// Canonicalize renames references in place and returns the map it built.
// Aliases are handed out in pre-order, with the children of each node taken
// in Python ast field order (see walkFieldOrder). Locations are preserved.
func (c *IdentifierCanonicalizer) Canonicalize(root *parser.Node) *IdentifierMap {
	names := NewIdentifierMap(c.prefix)
	if root == nil {
		return names
	}

	walkFieldOrder(root, func(n *parser.Node) {
		if IsNameReference(n) {
			n.Text = names.Alias(n.Text)
		}
	})
	return names
}

// IsNameReference reports whether n is an identifier used as a value,
// the counterpart of a Name node in Python's own ast.
func IsNameReference(n *parser.Node) bool {
	if n == nil || !n.IsLeaf() || n.Text == "" {
		return false
	}
	if n.Kind == kindAsPatternTarget {
		return isWithTarget(n)
	}
	if n.Kind != parser.KindIdentifier {
		return false
	}

	parent := n.Parent
	if parent == nil {
		return true
	}

	switch parent.Kind {
	case parser.KindFunctionDefinition, parser.KindClassDefinition,
		parser.KindKeywordArgument, parser.KindDefaultParameter, parser.KindTypedDefaultParameter:
		return n.Field != parser.FieldName
	case parser.KindAttribute:
		return n.Field != parser.FieldAttribute
	case parser.KindExceptClause, parser.KindExceptGroupClause:
		return n.Field != parser.FieldAlias
	case parser.KindParameters, parser.KindLambdaParameters, parser.KindTypedParameter,
		parser.KindGlobalStatement, parser.KindNonlocalStatement,
		parser.KindKeywordPattern, parser.KindSplatPattern, parser.KindCasePattern,
		parser.KindAliasedImport:
		return false
	case parser.KindListSplatPattern, parser.KindDictionarySplatPattern:
		return !isParameterList(parent.Parent)
	case parser.KindDottedName:
		return isDottedNameReference(n, parent)
	case kindAsPatternTarget:
		return isWithTarget(parent)
	case kindType, kindSplatType:
		return !declaresTypeParameter(parent)
	case kindMemberType:
		named := parent.NamedChildren()
		return named[len(named)-1] != n
	}

	if inImport(n) {
		return false
	}
	if target := n.GetParentOfKind(kindAsPatternTarget); target != nil {
		return isWithTarget(target)
	}
	return true
}

// declaresTypeParameter reports whether the identifier held by holder names
// a type parameter of a generic def, class or type alias, as T, U and Ts in
// `def f[T, U: int, *Ts]()`. Inside annotations such as `list[T]` the same
// bracket node holds ordinary names.
func declaresTypeParameter(holder *parser.Node) bool {
	node := holder
	if node.Kind == kindSplatType {
		node = node.Parent
	}
	if node == nil || node.Kind != kindType {
		return false
	}
	if p := node.Parent; p != nil && p.Kind == kindConstrainedType {
		if p.NamedChildren()[0] != node {
			return false
		}
		node = p.Parent
		if node == nil || node.Kind != kindType {
			return false
		}
	}

	params := node.Parent
	if params == nil || params.Kind != parser.KindTypeParameter {
		return false
	}
	if params.Field == fieldTypeParameters {
		return true
	}
	generic := params.Parent
	if generic == nil || generic.Kind != kindGenericType {
		return false
	}
	left := generic.Parent
	return left != nil && left.Kind == kindType && left.Field == fieldLeft &&
		left.Parent != nil && left.Parent.Kind == kindTypeAliasStatement
}

func isParameterList(n *parser.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case parser.KindParameters, parser.KindLambdaParameters, parser.KindTypedParameter:
		return true
	default:
		return false
	}
}

// isWithTarget reports whether an `as` target binds a variable, which is
// only the case in with statements. In except clauses and match cases the
// target is a capture name.
func isWithTarget(target *parser.Node) bool {
	pattern := target.Parent
	if pattern == nil || pattern.Kind != parser.KindAsPattern {
		return false
	}
	return pattern.Parent != nil && pattern.Parent.Kind == parser.KindWithItem
}

// isDottedNameReference handles dotted names, which appear in imports and
// in match patterns. In a value pattern like Color.RED only the first
// part is a name; a bare name is a capture unless it names the class of
// a class pattern.
func isDottedNameReference(n, dotted *parser.Node) bool {
	if inImport(dotted) {
		return false
	}
	if dotted.GetParentOfKind(parser.KindCasePattern) == nil && !underClassPattern(dotted) {
		return false
	}

	parts := dotted.NamedChildren()
	if len(parts) > 1 {
		return parts[0] == n
	}
	return underClassPattern(dotted) && dotted.Parent.NamedChildren()[0] == dotted
}

func underClassPattern(n *parser.Node) bool {
	return n.Parent != nil && n.Parent.Kind == parser.KindClassPattern
}

func inImport(n *parser.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		switch p.Kind {
		case parser.KindImportStatement, parser.KindImportFromStatement, parser.KindFutureImportStatement:
			return true
		case parser.KindBlock, parser.KindModule:
			return false
		}
	}
	return false
}
