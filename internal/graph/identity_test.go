package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityStable(t *testing.T) {
	a := Identity("pkg/foo.go", KindFunction, "DoThing", 10)
	b := Identity("pkg/foo.go", KindFunction, "DoThing", 10)
	assert.Equal(t, a, b)
	assert.True(t, len(a) > len("function:"))
	assert.Equal(t, "function:", a[:len("function:")])
}

func TestIdentityChangesWithLine(t *testing.T) {
	a := Identity("pkg/foo.go", KindFunction, "DoThing", 10)
	b := Identity("pkg/foo.go", KindFunction, "DoThing", 11)
	assert.NotEqual(t, a, b)
}

func TestIdentityChangesWithKind(t *testing.T) {
	a := Identity("pkg/foo.go", KindFunction, "DoThing", 10)
	b := Identity("pkg/foo.go", KindMethod, "DoThing", 10)
	assert.NotEqual(t, a, b)
}

func TestQualifiedNameJoinsScope(t *testing.T) {
	assert.Equal(t, "Outer::Inner::leaf", QualifiedName([]string{"Outer", "Inner"}, "leaf"))
}

func TestQualifiedNameDropsEmptySegments(t *testing.T) {
	assert.Equal(t, "leaf", QualifiedName([]string{"", ""}, "leaf"))
}

func TestQualifiedNameNoScope(t *testing.T) {
	assert.Equal(t, "leaf", QualifiedName(nil, "leaf"))
}

func TestFileIDStableAcrossCalls(t *testing.T) {
	assert.Equal(t, FileID("a/b.go"), FileID("a/b.go"))
	assert.NotEqual(t, FileID("a/b.go"), FileID("a/c.go"))
}
