package service

import (
	"context"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/places"
)

// VenueSource is the upstream venue provider. *places.Client implements it.
type VenueSource interface {
	TextSearch(ctx context.Context, query string, near *domain.Location, radiusM int) ([]places.PlaceResult, error)
	Details(ctx context.Context, placeID string) (*places.PlaceResult, error)
	DistanceMatrix(ctx context.Context, origins, destinations []domain.Location, mode places.TravelMode) ([][]int, error)
	Geocode(ctx context.Context, address string) (domain.Location, error)
}

var _ VenueSource = (*places.Client)(nil)
