package planner

import (
	"math"

	"github.com/alexanderramin/outing/internal/domain"
)

const earthRadiusM = 6371000.0

// HaversineM returns the great-circle distance between two points in metres.
func HaversineM(a, b domain.Location) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180.0)
	dLng := (b.Lng - a.Lng) * (math.Pi / 180.0)

	lat1 := a.Lat * (math.Pi / 180.0)
	lat2 := b.Lat * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// Centroid returns the arithmetic mean of the venue locations.
// The second return value is false when venues is empty.
func Centroid(venues []domain.Venue) (domain.Location, bool) {
	if len(venues) == 0 {
		return domain.Location{}, false
	}
	var lat, lng float64
	for _, v := range venues {
		lat += v.Location.Lat
		lng += v.Location.Lng
	}
	n := float64(len(venues))
	return domain.Location{Lat: lat / n, Lng: lng / n}, true
}
