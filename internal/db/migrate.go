package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// CellPrecision is the geohash length stored per venue (~150 m cells).
// Neighbourhood lookups query a shorter prefix of it.
const CellPrecision = 7

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCells(db); err != nil {
		return fmt.Errorf("backfilling venue cells: %w", err)
	}
	return nil
}

// migrateBackfillCells computes the geohash cell for rows cached before the
// cell column existed.
func migrateBackfillCells(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT place_id, lat, lng FROM venues WHERE cell = ''`)
	if err != nil {
		return fmt.Errorf("listing venues without cell: %w", err)
	}
	type pending struct {
		id       string
		lat, lng float64
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.lat, &p.lng); err != nil {
			rows.Close()
			return fmt.Errorf("scanning venue: %w", err)
		}
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating venues: %w", err)
	}
	if len(todo) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	for _, p := range todo {
		cell := geohash.EncodeWithPrecision(p.lat, p.lng, CellPrecision)
		if _, err := tx.ExecContext(ctx, `UPDATE venues SET cell = ? WHERE place_id = ?`, cell, p.id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("updating cell for %s: %w", p.id, err)
		}
	}
	return tx.Commit()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		place_id     TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		lat          REAL NOT NULL,
		lng          REAL NOT NULL,
		category     TEXT NOT NULL
		             CHECK(category IN ('activity','dinner','drinks','dessert','scenic','finish','other')),
		rating       REAL,
		review_count INTEGER,
		price_level  INTEGER CHECK(price_level IS NULL OR price_level BETWEEN 0 AND 4),
		address      TEXT NOT NULL DEFAULT '',
		link         TEXT NOT NULL DEFAULT '',
		open_now     INTEGER,
		website      TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		types        TEXT NOT NULL DEFAULT '',
		fetched_at   TEXT NOT NULL
	)`,
	`ALTER TABLE venues ADD COLUMN cell TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_venues_fetched ON venues(fetched_at)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_cell ON venues(cell, category)`,
}
