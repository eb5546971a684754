package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/outing/internal/domain"
)

var ErrNotFound = errors.New("not found")

// CachedVenue is a venue as stored in the details cache, with the time the
// provider data was fetched.
type CachedVenue struct {
	Venue     domain.Venue
	FetchedAt time.Time
}

// Fresh reports whether the entry is younger than ttl at now.
func (c CachedVenue) Fresh(now time.Time, ttl time.Duration) bool {
	return ttl <= 0 || now.Sub(c.FetchedAt) < ttl
}

type VenueRepo interface {
	Get(ctx context.Context, placeID string) (*CachedVenue, error)
	// GetMany returns the cached entries for the ids that exist; missing ids
	// are absent from the map.
	GetMany(ctx context.Context, placeIDs []string) (map[string]CachedVenue, error)
	Upsert(ctx context.Context, v domain.Venue, fetchedAt time.Time) error
	// ListNear returns venues of one category whose cell starts with the
	// given geohash prefix, best rated first.
	ListNear(ctx context.Context, cellPrefix string, category domain.Category, limit int) ([]domain.Venue, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
}
