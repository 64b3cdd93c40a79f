package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/db"
	"github.com/Simplici0/toolcost/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(context.Background(), dbPath)
	require.NoError(t, err, "open sqlite database")
	defer database.Close()

	require.NoError(t, migrations.Up(database), "run migrations")

	for i := 0; i < 10; i++ {
		stats, err := Run(database, Defaults)
		require.NoError(t, err, "run seed (iteration=%d)", i)
		if i == 0 {
			assert.Equal(t, len(Defaults), stats.Inserts, "inserts in first run")
			continue
		}
		assert.Equal(t, 0, stats.Inserts, "inserts in iteration %d", i)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM tool_presets`, nil, len(Defaults))
	assertCount(t, database, `SELECT COUNT(*) FROM tool_presets WHERE slug = ?`, "king-drill-mini", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM tool_presets WHERE kind = ? AND corners = ?`, []any{"indexable", 2}, 1)
}

func TestRunRejectsUnknownKind(t *testing.T) {
	database, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, migrations.Up(database))

	bad := []Preset{
		{Slug: "ok", Spec: consumption.Spec{Kind: consumption.KindSolid, Name: "ok"}},
		{Slug: "bad", Spec: consumption.Spec{Kind: "reamer", Name: "bad"}},
	}

	_, err = Run(database, bad)
	require.Error(t, err)

	// the whole seed is rolled back
	assertCount(t, database, `SELECT COUNT(*) FROM tool_presets`, nil, 0)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	require.NoError(t, err, "count query failed")
	assert.Equal(t, expected, count)
}
