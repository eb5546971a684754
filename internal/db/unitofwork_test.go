package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/outing/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

func insertVenue(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO venues (place_id, name, lat, lng, category, fetched_at)
		VALUES (?, ?, 0, 0, 'drinks', '2026-01-01T00:00:00Z')`, id, "Venue "+id)
	return err
}

func venueExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM venues WHERE place_id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, database := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertVenue(ctx, tx, "k1"); err != nil {
			return err
		}
		return insertVenue(ctx, tx, "k2")
	})
	require.NoError(t, err)

	assert.True(t, venueExists(t, database, "k1"))
	assert.True(t, venueExists(t, database, "k2"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, database := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertVenue(ctx, tx, "k3"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, venueExists(t, database, "k3"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, database := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertVenue(ctx, tx, "k4")
			panic("boom")
		})
	})

	assert.False(t, venueExists(t, database, "k4"), "row should not exist after panic rollback")
}
