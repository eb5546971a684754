package planner

import (
	"sort"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/mmcloughlin/geohash"
)

// clusterCellPrecision gives ~1.2 km x 0.6 km geohash cells.
const clusterCellPrecision = 6

type Cluster struct {
	Seed     domain.Venue    `json:"seed"`
	Members  []domain.Venue  `json:"members"`
	Centroid domain.Location `json:"centroid"`
	Cell     string          `json:"cell"`
}

// ClusterVenues partitions venues greedily: each still-unassigned venue, in
// input order, seeds a cluster and absorbs every unassigned venue within
// radiusM of the seed. Membership is not transitive. Clusters are returned
// largest first; equal sizes keep creation order. A non-positive radius
// uses the 1500 m default.
func ClusterVenues(venues []domain.Venue, radiusM float64) []Cluster {
	if radiusM <= 0 {
		radiusM = defaultClusterRadiusM
	}
	assigned := make([]bool, len(venues))
	var clusters []Cluster

	for i, seed := range venues {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []domain.Venue{seed}
		for j := i + 1; j < len(venues); j++ {
			if assigned[j] {
				continue
			}
			if HaversineM(seed.Location, venues[j].Location) <= radiusM {
				assigned[j] = true
				members = append(members, venues[j])
			}
		}
		centroid, _ := Centroid(members)
		clusters = append(clusters, Cluster{
			Seed:     seed,
			Members:  members,
			Centroid: centroid,
			Cell:     geohash.EncodeWithPrecision(seed.Location.Lat, seed.Location.Lng, clusterCellPrecision),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].Members) > len(clusters[j].Members)
	})
	return clusters
}
