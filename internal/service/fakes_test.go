package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/places"
)

var lisbon = domain.Location{Lat: 38.7100, Lng: -9.1370}

// fakeSource serves canned places. Text searches are routed by a substring
// of the query.
type fakeSource struct {
	mu sync.Mutex

	search     map[string][]places.PlaceResult
	searchErr  map[string]error
	details    map[string]places.PlaceResult
	travelMin  int
	matrixErr  error
	center     domain.Location
	geocodeErr error

	searchCalls  int
	detailsCalls int
	matrixCalls  int
	geocodeCalls int
	lastMode     places.TravelMode
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		search:    map[string][]places.PlaceResult{},
		searchErr: map[string]error{},
		details:   map[string]places.PlaceResult{},
		travelMin: 12,
		center:    lisbon,
	}
}

func (f *fakeSource) TextSearch(ctx context.Context, query string, _ *domain.Location, _ int) ([]places.PlaceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for key, err := range f.searchErr {
		if strings.Contains(query, key) {
			return nil, err
		}
	}
	for key, results := range f.search {
		if strings.Contains(query, key) {
			return append([]places.PlaceResult(nil), results...), nil
		}
	}
	return []places.PlaceResult{}, nil
}

func (f *fakeSource) Details(ctx context.Context, placeID string) (*places.PlaceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailsCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := f.details[placeID]
	if !ok {
		return nil, places.ErrNotFound
	}
	return &p, nil
}

func (f *fakeSource) DistanceMatrix(ctx context.Context, origins, destinations []domain.Location, mode places.TravelMode) ([][]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matrixCalls++
	f.lastMode = mode
	if f.matrixErr != nil {
		return nil, f.matrixErr
	}
	out := make([][]int, len(origins))
	for i := range origins {
		out[i] = make([]int, len(destinations))
		for j := range destinations {
			out[i][j] = f.travelMin
		}
	}
	return out, nil
}

func (f *fakeSource) Geocode(ctx context.Context, _ string) (domain.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geocodeCalls++
	if f.geocodeErr != nil {
		return domain.Location{}, f.geocodeErr
	}
	return f.center, nil
}

var errUpstream = errors.New("upstream exploded")

func place(id, name string, rating float64, price int, types ...string) places.PlaceResult {
	n := 300
	return places.PlaceResult{
		PlaceID:          id,
		Name:             name,
		Geometry:         places.Geometry{Location: places.Location{Lat: lisbon.Lat + 0.001, Lng: lisbon.Lng + 0.001}},
		Rating:           &rating,
		UserRatingsTotal: &n,
		PriceLevel:       &price,
		Types:            types,
	}
}

// eveningSource has three venues per pool, each with details.
func eveningSource() *fakeSource {
	f := newFakeSource()
	f.search["things to do"] = []places.PlaceResult{
		place("a1", "Fado House", 4.8, 2, "tourist_attraction"),
		place("a2", "Tile Museum", 4.6, 1, "museum"),
		place("a3", "Escape Room", 4.2, 2, "point_of_interest"),
	}
	f.search["restaurant"] = []places.PlaceResult{
		place("d1", "Cervejaria Ramiro", 4.7, 2, "restaurant"),
		place("d2", "Taberna da Rua", 4.4, 2, "restaurant"),
		place("d3", "Tasca do Chico", 4.1, 1, "restaurant"),
	}
	f.search["cocktail bar"] = []places.PlaceResult{
		place("f1", "Red Frog", 4.7, 3, "bar"),
		place("f2", "Pavilhao Chines", 4.5, 2, "bar"),
		place("f3", "Santini Gelato", 4.6, 1, "cafe"),
	}
	for _, results := range f.search {
		for _, p := range results {
			d := p
			d.Website = "https://example.com/" + p.PlaceID
			open := true
			d.OpeningHours = &places.OpeningHours{OpenNow: &open}
			f.details[p.PlaceID] = d
		}
	}
	return f
}
