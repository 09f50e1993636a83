package analyzer

import (
	"github.com/coder26-cmd/anti-plagiarism/internal/parser"
)

const (
	kindConditionalExpression = "conditional_expression"
	kindDictionary            = "dictionary"
	kindDictPattern           = "dict_pattern"
	kindPair                  = "pair"
	kindDictionarySplat       = "dictionary_splat"
	kindKeywordSeparator      = "keyword_separator"

	fieldKey            = "key"
	fieldValue          = "value"
	fieldParameters     = "parameters"
	fieldSuperclasses   = "superclasses"
	fieldReturnType     = "return_type"
	fieldTypeParameters = "type_parameters"
	fieldDefinition     = "definition"
)

// walkFieldOrder visits the tree in pre-order. Children are visited in the
// order Python's ast lists the corresponding fields, which differs from
// source order for conditional expressions, dict displays, call arguments,
// parameter defaults and definitions:
//
//	b if a else c          a, b, c
//	{k1: v1, k2: v2}       k1, k2, v1, v2
//	f(x=1, *rest)          rest, x
//	def f(a=d, *, b=e)     e, d
//	@dec def f() -> r: ... parameters, body, dec, r
func walkFieldOrder(n *parser.Node, visit func(*parser.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range fieldOrder(n) {
		walkFieldOrder(child, visit)
	}
}

func fieldOrder(n *parser.Node) []*parser.Node {
	switch n.Kind {
	case kindConditionalExpression:
		if parts := n.NamedChildren(); len(parts) == 3 {
			return []*parser.Node{parts[1], parts[0], parts[2]}
		}
	case kindDictionary, kindDictPattern:
		return keysThenValues(n)
	case parser.KindArgumentList:
		return argumentOrder(n)
	case parser.KindParameters, parser.KindLambdaParameters:
		return parameterOrder(n)
	case parser.KindFunctionDefinition, parser.KindClassDefinition:
		head, tail := definitionOrder(n)
		return append(head, tail...)
	case parser.KindDecoratedDefinition:
		return decoratedOrder(n)
	}
	return n.Children
}

// keysThenValues orders a dict display or mapping pattern. A `**x` entry
// has no key and counts as a value.
func keysThenValues(n *parser.Node) []*parser.Node {
	var keys, values []*parser.Node
	for _, c := range n.NamedChildren() {
		switch {
		case c.Kind == kindPair:
			key, value := c.ChildByField(fieldKey), c.ChildByField(fieldValue)
			if key == nil || value == nil {
				values = append(values, c)
				continue
			}
			keys = append(keys, key)
			values = append(values, value)
		case c.Field == fieldKey:
			keys = append(keys, c)
		default:
			values = append(values, c)
		}
	}
	return append(keys, values...)
}

// argumentOrder puts positional and starred arguments before keyword
// arguments and `**kwargs`.
func argumentOrder(n *parser.Node) []*parser.Node {
	var positional, keywords []*parser.Node
	for _, c := range n.NamedChildren() {
		if c.Kind == parser.KindKeywordArgument || c.Kind == kindDictionarySplat {
			keywords = append(keywords, c)
		} else {
			positional = append(positional, c)
		}
	}
	return append(positional, keywords...)
}

// parameterOrder yields the parts of a parameter list that can hold names:
// every annotation except the one on **kwargs, then keyword-only defaults,
// then the **kwargs annotation, then positional defaults. Parameter names
// themselves are never renamed and are skipped.
func parameterOrder(n *parser.Node) []*parser.Node {
	var annotations, kwDefaults, kwargs, defaults []*parser.Node
	keywordOnly := false

	addDefault := func(value *parser.Node) {
		if value == nil {
			return
		}
		if keywordOnly {
			kwDefaults = append(kwDefaults, value)
		} else {
			defaults = append(defaults, value)
		}
	}

	for _, p := range n.NamedChildren() {
		switch p.Kind {
		case kindKeywordSeparator, parser.KindListSplatPattern:
			keywordOnly = true
		case parser.KindTypedParameter:
			annotation := p.ChildByField(parser.FieldType)
			switch firstNamedKind(p) {
			case parser.KindListSplatPattern:
				annotations = appendNode(annotations, annotation)
				keywordOnly = true
			case parser.KindDictionarySplatPattern:
				kwargs = appendNode(kwargs, annotation)
			default:
				annotations = appendNode(annotations, annotation)
			}
		case parser.KindDefaultParameter:
			addDefault(p.ChildByField(fieldValue))
		case parser.KindTypedDefaultParameter:
			annotations = appendNode(annotations, p.ChildByField(parser.FieldType))
			addDefault(p.ChildByField(fieldValue))
		case parser.KindIdentifier, parser.KindDictionarySplatPattern:
		default:
			annotations = append(annotations, p)
		}
	}

	order := append(annotations, kwDefaults...)
	order = append(order, kwargs...)
	return append(order, defaults...)
}

// definitionOrder splits a def or class into the parts visited before its
// decorators and those visited after them.
func definitionOrder(n *parser.Node) (head, tail []*parser.Node) {
	head = appendNode(head, n.ChildByField(parser.FieldName))
	if n.Kind == parser.KindFunctionDefinition {
		head = appendNode(head, n.ChildByField(fieldParameters))
	} else {
		head = appendNode(head, n.ChildByField(fieldSuperclasses))
	}
	head = appendNode(head, n.ChildByField(parser.FieldBody))

	tail = appendNode(tail, n.ChildByField(fieldReturnType))
	tail = appendNode(tail, n.ChildByField(fieldTypeParameters))
	return head, tail
}

func decoratedOrder(n *parser.Node) []*parser.Node {
	var decorators []*parser.Node
	definition := n.ChildByField(fieldDefinition)
	for _, c := range n.NamedChildren() {
		switch {
		case c.Kind == parser.KindDecorator:
			decorators = append(decorators, c)
		case definition == nil && c.IsDefinition():
			definition = c
		}
	}
	if definition == nil {
		return n.Children
	}

	head, tail := definitionOrder(definition)
	order := append(head, decorators...)
	return append(order, tail...)
}

func firstNamedKind(n *parser.Node) string {
	if named := n.NamedChildren(); len(named) > 0 {
		return named[0].Kind
	}
	return ""
}

func appendNode(nodes []*parser.Node, n *parser.Node) []*parser.Node {
	if n == nil {
		return nodes
	}
	return append(nodes, n)
}
