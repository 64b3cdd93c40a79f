package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/toolcost/internal/catalog"
	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/db"
	"github.com/Simplici0/toolcost/internal/migrations"
	"github.com/Simplici0/toolcost/internal/seed"
)

func newSeededStore(t *testing.T) *catalog.Store {
	t.Helper()

	database, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(database))
	_, err = seed.Run(database, seed.Defaults)
	require.NoError(t, err)

	return catalog.New(database)
}

func TestList_ReturnsActivePresetsInOrder(t *testing.T) {
	store := newSeededStore(t)

	presets, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, presets, len(seed.Defaults))

	for i, p := range presets {
		assert.Equal(t, seed.Defaults[i].Slug, p.Slug)
		assert.Equal(t, seed.Defaults[i].Spec, p.Spec)
	}
}

func TestGet_KingDrillMiniMatchesReferenceCost(t *testing.T) {
	store := newSeededStore(t)

	preset, err := store.Get(context.Background(), "king-drill-mini")
	require.NoError(t, err)
	assert.Equal(t, "King Drill Mini", preset.Spec.Name)

	tool, err := preset.Tool()
	require.NoError(t, err)
	assert.Equal(t, consumption.KindIndexable, tool.Kind())

	// 30 m over 34 m per insert: one insert and one holder
	c := tool.Consume(30)
	assert.Equal(t, int64(1), c.Units)
	assert.InDelta(t, 69000, c.Cost, 1e-9)
}

func TestGet_UnknownSlug(t *testing.T) {
	store := newSeededStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}
