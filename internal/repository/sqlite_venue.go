package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/outing/internal/db"
	"github.com/alexanderramin/outing/internal/domain"
	"github.com/mmcloughlin/geohash"
)

// maxBatchIDs keeps IN clauses under SQLite's bound-parameter limit.
const maxBatchIDs = 500

const venueColumns = `place_id, name, lat, lng, category, rating, review_count, price_level,
	address, link, open_now, website, phone, types, fetched_at`

// SQLiteVenueRepo implements VenueRepo on the venues table.
type SQLiteVenueRepo struct {
	db db.DBTX
}

// NewSQLiteVenueRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteVenueRepo(conn db.DBTX) *SQLiteVenueRepo {
	return &SQLiteVenueRepo{db: conn}
}

func (r *SQLiteVenueRepo) Get(ctx context.Context, placeID string) (*CachedVenue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE place_id = ?`
	row := r.db.QueryRowContext(ctx, query, placeID)
	c, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("venue %s: %w", placeID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning venue: %w", err)
	}
	return c, nil
}

func (r *SQLiteVenueRepo) GetMany(ctx context.Context, placeIDs []string) (map[string]CachedVenue, error) {
	out := make(map[string]CachedVenue, len(placeIDs))
	for start := 0; start < len(placeIDs); start += maxBatchIDs {
		end := min(start+maxBatchIDs, len(placeIDs))
		batch := placeIDs[start:end]

		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		query := `SELECT ` + venueColumns + ` FROM venues WHERE place_id IN (` + placeholders(len(batch)) + `)`
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("listing venues by id: %w", err)
		}
		list, err := scanVenues(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			out[c.Venue.PlaceID] = c
		}
	}
	return out, nil
}

func (r *SQLiteVenueRepo) Upsert(ctx context.Context, v domain.Venue, fetchedAt time.Time) error {
	if v.PlaceID == "" {
		return fmt.Errorf("upserting venue %q: missing place id", v.Name)
	}
	category := v.Category
	if category == "" {
		category = domain.CategoryOther
	}
	query := `INSERT INTO venues (` + venueColumns + `, cell)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(place_id) DO UPDATE SET
			name = excluded.name,
			lat = excluded.lat,
			lng = excluded.lng,
			category = excluded.category,
			rating = excluded.rating,
			review_count = excluded.review_count,
			price_level = excluded.price_level,
			address = excluded.address,
			link = excluded.link,
			open_now = excluded.open_now,
			website = excluded.website,
			phone = excluded.phone,
			types = excluded.types,
			fetched_at = excluded.fetched_at,
			cell = excluded.cell`
	_, err := r.db.ExecContext(ctx, query,
		v.PlaceID,
		v.Name,
		v.Location.Lat,
		v.Location.Lng,
		string(category),
		nullableFloat(v.Rating),
		nullableIntToValue(v.ReviewCount),
		nullableIntToValue(v.PriceLevel),
		v.Address,
		v.Link,
		nullableBool(v.OpenNow),
		v.Website,
		v.Phone,
		joinTypes(v.Types),
		fetchedAt.UTC().Format(time.RFC3339),
		geohash.EncodeWithPrecision(v.Location.Lat, v.Location.Lng, db.CellPrecision),
	)
	if err != nil {
		return fmt.Errorf("upserting venue %s: %w", v.PlaceID, err)
	}
	return nil
}

func (r *SQLiteVenueRepo) ListNear(ctx context.Context, cellPrefix string, category domain.Category, limit int) ([]domain.Venue, error) {
	if cellPrefix == "" {
		return nil, fmt.Errorf("listing nearby venues: empty cell prefix")
	}
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + venueColumns + ` FROM venues
		WHERE cell LIKE ? || '%' AND category = ?
		ORDER BY COALESCE(rating, 0) DESC, COALESCE(review_count, 0) DESC, place_id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, cellPrefix, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("listing nearby venues: %w", err)
	}
	defer rows.Close()

	list, err := scanVenues(rows)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Venue, len(list))
	for i, c := range list {
		out[i] = c.Venue
	}
	return out, nil
}

func (r *SQLiteVenueRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE fetched_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("purging venues: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged venues: %w", err)
	}
	return n, nil
}

func (r *SQLiteVenueRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting venues: %w", err)
	}
	return n, nil
}

// UpsertVenues writes all venues in one transaction. Either every row is
// stored or none are.
func UpsertVenues(ctx context.Context, uow db.UnitOfWork, venues []domain.Venue, fetchedAt time.Time) error {
	if len(venues) == 0 {
		return nil
	}
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteVenueRepo(tx)
		for _, v := range venues {
			if err := repo.Upsert(ctx, v, fetchedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*CachedVenue, error) {
	var (
		v           domain.Venue
		category    string
		rating      sql.NullFloat64
		reviews     sql.NullInt64
		priceLevel  sql.NullInt64
		openNow     sql.NullInt64
		types       string
		fetchedAtTS string
	)
	err := row.Scan(
		&v.PlaceID, &v.Name, &v.Location.Lat, &v.Location.Lng, &category,
		&rating, &reviews, &priceLevel,
		&v.Address, &v.Link, &openNow, &v.Website, &v.Phone, &types, &fetchedAtTS,
	)
	if err != nil {
		return nil, err
	}
	v.Category = domain.Category(category)
	v.Rating = floatPtr(rating)
	v.ReviewCount = intPtr(reviews)
	v.PriceLevel = intPtr(priceLevel)
	v.OpenNow = boolPtr(openNow)
	v.Types = splitTypes(types)

	fetchedAt, err := time.Parse(time.RFC3339, fetchedAtTS)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at for %s: %w", v.PlaceID, err)
	}
	return &CachedVenue{Venue: v, FetchedAt: fetchedAt}, nil
}

func scanVenues(rows *sql.Rows) ([]CachedVenue, error) {
	var out []CachedVenue
	for rows.Next() {
		c, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning venue: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venues: %w", err)
	}
	return out, nil
}
