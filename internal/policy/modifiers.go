package policy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/corey/codegraph/internal/sourceparse"
)

// hasModifierToken reports whether any child of n (commonly a "modifiers"
// wrapper node, but some grammars attach modifier tokens directly) has
// exact text equal to token.
func hasModifierToken(n *sourceparse.Node, token string) bool {
	if n == nil {
		return false
	}
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Text() == token {
			return true
		}
	}
	return false
}

// findChildByKind returns the first child of n whose Kind() equals kind.
func findChildByKind(n *sourceparse.Node, kind string) *sourceparse.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// hasDirectOrModifierToken checks for a token either as a direct child of n
// or inside a nested "modifiers" child — languages differ in which shape
// their grammar uses.
func hasDirectOrModifierToken(n *sourceparse.Node, token string) bool {
	if hasModifierToken(n, token) {
		return true
	}
	if mods := findChildByKind(n, "modifiers"); mods != nil {
		return hasModifierToken(mods, token)
	}
	return false
}

// isUpperFirstRune reports whether s begins with an uppercase letter —
// Go's exported-identifier convention.
func isUpperFirstRune(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func containsAny(s string, tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
