package kotlindialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/policy"
	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
	"github.com/corey/codegraph/internal/walker"
)

func walk(t *testing.T, filePath string, src []byte) walker.Result {
	t.Helper()
	g := sourceparse.NewGateway()
	defer g.Close()
	tree, err := g.ParseFile(registry.LangKotlin, src)
	require.NoError(t, err)
	defer tree.Close()

	rec := policy.Table[registry.LangKotlin]
	w := walker.New(filePath, "kotlin", rec, NewHooks(), 0)
	return w.Walk(tree.Root())
}

func TestSuspendFunction(t *testing.T) {
	src := []byte("suspend fun loadData(): List<String> { delay(1000); return listOf(\"a\",\"b\",\"c\") }\n")
	result := walk(t, "load.kt", src)

	var fn *graph.Node
	for i := range result.Nodes {
		if result.Nodes[i].Kind == graph.KindFunction {
			fn = &result.Nodes[i]
		}
	}
	require.NotNil(t, fn)
	assert.Equal(t, "loadData", fn.Name)
	require.NotNil(t, fn.IsAsync)
	assert.True(t, *fn.IsAsync)

	var sawDelay, sawListOf bool
	for _, ref := range result.Refs {
		if ref.Kind != graph.RefCalls {
			continue
		}
		if ref.Name == "delay" {
			sawDelay = true
		}
		if ref.Name == "listOf" {
			sawListOf = true
		}
	}
	assert.True(t, sawDelay)
	assert.True(t, sawListOf)
}

func TestSealedClassHierarchy(t *testing.T) {
	src := []byte(`sealed class Result {
  data class Success(val value: String) : Result()
  data class Error(val message: String) : Result()
  object Loading : Result()
}
`)
	result := walk(t, "result.kt", src)

	var classNames []string
	for _, n := range result.Nodes {
		if n.Kind == graph.KindClass {
			classNames = append(classNames, n.Name)
		}
	}
	assert.Contains(t, classNames, "Result")
	assert.Contains(t, classNames, "Success")
	assert.Contains(t, classNames, "Error")
	assert.Contains(t, classNames, "Loading")

	var extendsCount int
	for _, e := range result.Refs {
		if e.Kind == graph.RefExtends {
			extendsCount++
		}
	}
	assert.GreaterOrEqual(t, extendsCount, 3)
}
