package sourceparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/codegraph/internal/registry"
)

func TestParseFileGo(t *testing.T) {
	g := NewGateway()
	defer g.Close()

	src := []byte("package main\n\nfunc hello() {}\n")
	tree, err := g.ParseFile(registry.LangGo, src)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, "source_file", root.Kind())
	assert.Greater(t, root.NamedChildCount(), 0)
}

func TestParseFileReusesWarmParser(t *testing.T) {
	g := NewGateway()
	defer g.Close()

	src := []byte("package main\n")
	_, err := g.ParseFile(registry.LangGo, src)
	require.NoError(t, err)
	_, err = g.ParseFile(registry.LangGo, src)
	require.NoError(t, err)
	assert.Len(t, g.parsers, 1)
}

func TestParseFileUnknownLanguage(t *testing.T) {
	g := NewGateway()
	defer g.Close()

	_, err := g.ParseFile(registry.LangLiquid, []byte("whatever"))
	assert.Error(t, err)
}
