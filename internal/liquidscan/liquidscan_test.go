package liquidscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/codegraph/internal/graph"
)

func TestRenderSnippet(t *testing.T) {
	result := Scan("index.liquid", []byte("{% render 'product-card' %}"))

	var file, component *graph.Node
	for i := range result.Nodes {
		switch result.Nodes[i].Kind {
		case graph.KindFile:
			file = &result.Nodes[i]
		case graph.KindComponent:
			component = &result.Nodes[i]
		}
	}
	require.NotNil(t, file)
	require.NotNil(t, component)
	assert.Equal(t, "product-card", component.Name)

	var contained bool
	for _, e := range result.Edges {
		if e.Kind == graph.EdgeContains && e.SourceID == file.ID && e.TargetID == component.ID {
			contained = true
		}
	}
	assert.True(t, contained)

	require.Len(t, result.Refs, 1)
	assert.Equal(t, "snippets/product-card.liquid", result.Refs[0].Name)
	assert.Equal(t, graph.RefReferences, result.Refs[0].Kind)
}

func TestSchemaWithName(t *testing.T) {
	src := []byte(`{% schema %}{"name": "Hero Banner"}{% endschema %}`)
	result := Scan("hero.liquid", src)

	var schema *graph.Node
	for i := range result.Nodes {
		if result.Nodes[i].Kind == graph.KindConstant {
			schema = &result.Nodes[i]
		}
	}
	require.NotNil(t, schema)
	assert.Equal(t, "Hero Banner", schema.Name)
}

func TestSchemaWithoutNameDefaults(t *testing.T) {
	src := []byte(`{% schema %}{"not_name": true}{% endschema %}`)
	result := Scan("hero.liquid", src)

	var schema *graph.Node
	for i := range result.Nodes {
		if result.Nodes[i].Kind == graph.KindConstant {
			schema = &result.Nodes[i]
		}
	}
	require.NotNil(t, schema)
	assert.Equal(t, "schema", schema.Name)
}

func TestAssignVariable(t *testing.T) {
	result := Scan("x.liquid", []byte("{% assign total = 5 %}"))

	var variable *graph.Node
	for i := range result.Nodes {
		if result.Nodes[i].Kind == graph.KindVariable {
			variable = &result.Nodes[i]
		}
	}
	require.NotNil(t, variable)
	assert.Equal(t, "total", variable.Name)
}
