package walker

import "github.com/corey/codegraph/internal/sourceparse"

// memberAccessKinds are CST types whose callee is accessed through a
// receiver ("obj.foo()"); the callee's own name is the property child's
// text, discarding the receiver.
var memberAccessKinds = map[string]bool{
	"member_expression":     true,
	"attribute":             true,
	"field_expression":      true,
	"navigation_expression": true,
}

var scopedIdentifierKinds = map[string]bool{
	"scoped_identifier":    true,
	"qualified_identifier": true,
}

// callSiteName locates the callee by field("function") or the first
// named child, then classifies it.
func callSiteName(n *sourceparse.Node) (string, bool) {
	callee := n.ChildByFieldName("function")
	if callee == nil {
		callee = firstNamedChild(n)
	}
	if callee == nil {
		return "", false
	}

	if memberAccessKinds[callee.Kind()] {
		if prop := callee.ChildByFieldName("property"); prop != nil {
			return prop.Text(), true
		}
		if prop := callee.ChildByFieldName("attribute"); prop != nil {
			return prop.Text(), true
		}
		if n := callee.NamedChildCount(); n > 0 {
			return callee.NamedChild(n - 1).Text(), true
		}
		return callee.Text(), true
	}

	if scopedIdentifierKinds[callee.Kind()] {
		return callee.Text(), true
	}

	return callee.Text(), true
}

func firstNamedChild(n *sourceparse.Node) *sourceparse.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

var stringLiteralKinds = map[string]bool{
	"string":                     true,
	"string_literal":             true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
}

// importModuleName extracts the module/path text from an import-like node:
// prefer a "source" field (JS/TS), else a "path" field (Go), else the first
// string literal named child, else the first named child's raw text.
func importModuleName(n *sourceparse.Node) (string, bool) {
	if src := n.ChildByFieldName("source"); src != nil {
		return unquote(src.Text()), true
	}
	if path := n.ChildByFieldName("path"); path != nil {
		return unquote(path.Text()), true
	}
	for _, c := range n.NamedChildren() {
		if stringLiteralKinds[c.Kind()] {
			return unquote(c.Text()), true
		}
	}
	if first := firstNamedChild(n); first != nil {
		text := unquote(first.Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}
