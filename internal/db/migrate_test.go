package db

import (
	"database/sql"
	"testing"

	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesVenuesTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='venues'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "venues", name)
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_venues_fetched", "idx_venues_cell"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsUnknownCategory(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO venues (place_id, name, lat, lng, category, fetched_at)
		VALUES ('p1', 'Somewhere', 0, 0, 'nightclub', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_RejectsOutOfRangePriceLevel(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO venues (place_id, name, lat, lng, category, price_level, fetched_at)
		VALUES ('p1', 'Somewhere', 0, 0, 'dinner', 7, '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

// A cache file written before the cell column existed keeps its rows and
// gets cells filled in on the next open.
func TestMigrate_BackfillsCellsForLegacyRows(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE venues (
		place_id     TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		lat          REAL NOT NULL,
		lng          REAL NOT NULL,
		category     TEXT NOT NULL,
		rating       REAL,
		review_count INTEGER,
		price_level  INTEGER,
		address      TEXT NOT NULL DEFAULT '',
		link         TEXT NOT NULL DEFAULT '',
		open_now     INTEGER,
		website      TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		types        TEXT NOT NULL DEFAULT '',
		fetched_at   TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO venues (place_id, name, lat, lng, category, fetched_at)
		VALUES ('old-1', 'Time Out Market', 38.7069, -9.1459, 'dinner', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var cell string
	require.NoError(t, db.QueryRow(`SELECT cell FROM venues WHERE place_id = 'old-1'`).Scan(&cell))
	assert.Equal(t, geohash.EncodeWithPrecision(38.7069, -9.1459, CellPrecision), cell)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM venues WHERE place_id = 'old-1'`).Scan(&name))
	assert.Equal(t, "Time Out Market", name)
}
