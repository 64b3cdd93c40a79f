package consumption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecTool_SelectsVariant(t *testing.T) {
	spec := Spec{
		Kind:          KindSolid,
		Name:          "carbide drill",
		BodyLife:      10,
		CornerLife:    99, // ignored for solid tools
		BodyPrice:     50000,
		ChangeSeconds: 30,
	}

	tool, err := spec.Tool()
	require.NoError(t, err)

	solid, ok := tool.(Solid)
	require.True(t, ok)
	assert.Equal(t, "carbide drill", solid.Name)
	assert.InDelta(t, 10, solid.BodyLife, 1e-9)
	assert.InDelta(t, 150000, tool.Consume(30).Cost, 1e-9)
}

func TestSpecOf_KeepsVariantFields(t *testing.T) {
	tool := TopSolidIndexable{Name: "tip", InsertLife: 10, Regrinds: 2, HolderRatio: 8, InsertPrice: 1}

	spec := SpecOf(tool)

	assert.Equal(t, KindTopSolidIndexable, spec.Kind)
	assert.Equal(t, 2, spec.Regrinds)
	assert.Equal(t, 8, spec.HolderRatio)

	back, err := spec.Tool()
	require.NoError(t, err)
	assert.Equal(t, tool, back)
}

func TestTools_ReportsPosition(t *testing.T) {
	_, err := Tools([]Spec{{Kind: KindSolid}, {Kind: "reamer"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool 2")
}
