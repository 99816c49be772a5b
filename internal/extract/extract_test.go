package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
)

func TestExtractFileTypeScriptExport(t *testing.T) {
	gw := sourceparse.NewGateway()
	defer gw.Close()
	e := New(gw)

	src := []byte(`export function processPayment(amount: number): Promise<Receipt> { return stripe.charge(amount); }`)
	result := e.ExtractFile("payment.ts", src, "")

	var fn *graph.Node
	for i := range result.Nodes {
		if result.Nodes[i].Kind == graph.KindFunction {
			fn = &result.Nodes[i]
		}
	}
	require.NotNil(t, fn)
	assert.Equal(t, "processPayment", fn.Name)
	require.NotNil(t, fn.IsExported)
	assert.True(t, *fn.IsExported)
	assert.Contains(t, fn.Signature, "amount: number")

	var sawCharge bool
	for _, ref := range result.UnresolvedReferences {
		if ref.Kind == graph.RefCalls && ref.Name == "charge" {
			sawCharge = true
		}
	}
	assert.True(t, sawCharge)
}

func TestExtractFileUnsupportedLanguage(t *testing.T) {
	gw := sourceparse.NewGateway()
	defer gw.Close()
	e := New(gw)

	result := e.ExtractFile("README.md", []byte("# hi"), "")
	assert.Empty(t, result.Nodes)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, graph.SeverityError, result.Errors[0].Severity)
}

func TestExtractFileLiquid(t *testing.T) {
	gw := sourceparse.NewGateway()
	defer gw.Close()
	e := New(gw)

	result := e.ExtractFile("index.liquid", []byte("{% render 'product-card' %}"), "")
	var component *graph.Node
	for i := range result.Nodes {
		if result.Nodes[i].Kind == graph.KindComponent {
			component = &result.Nodes[i]
		}
	}
	require.NotNil(t, component)
	assert.Equal(t, "product-card", component.Name)
}

func TestExtractBatchRunsEveryFile(t *testing.T) {
	files := []SourceFile{
		{Path: "a.go", Bytes: []byte("package main\nfunc A() {}\n")},
		{Path: "b.py", Bytes: []byte("def b():\n    pass\n")},
		{Path: "c.liquid", Bytes: []byte("{% assign x = 1 %}")},
	}
	results, err := ExtractBatch(context.Background(), 2, files)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, files[i].Path, r.FilePath)
		assert.NotEmpty(t, r.ContentHash)
	}
}

func TestExtractFileRespectsLanguageHint(t *testing.T) {
	gw := sourceparse.NewGateway()
	defer gw.Close()
	e := New(gw)

	result := e.ExtractFile("weird_name", []byte("package main\nfunc A() {}\n"), registry.LangGo)
	assert.Empty(t, result.Errors)
}
