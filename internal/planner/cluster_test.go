package planner

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineM(t *testing.T) {
	a := domain.Location{Lat: 0, Lng: 0}
	assert.InDelta(t, 111195, HaversineM(a, domain.Location{Lat: 0, Lng: 1}), 10)
	assert.InDelta(t, 11.1, HaversineM(a, domain.Location{Lat: 0, Lng: 0.0001}), 0.1)
	assert.Equal(t, 0.0, HaversineM(a, a))

	lisbon := domain.Location{Lat: 38.7223, Lng: -9.1393}
	porto := domain.Location{Lat: 41.1579, Lng: -8.6291}
	assert.InDelta(t, HaversineM(lisbon, porto), HaversineM(porto, lisbon), 1e-6)
	assert.InDelta(t, 274000, HaversineM(lisbon, porto), 2000)
}

func TestCentroid(t *testing.T) {
	_, ok := Centroid(nil)
	assert.False(t, ok)

	c, ok := Centroid([]domain.Venue{
		testutil.NewTestVenue("a", "A", testutil.WithLocation(0, 0)),
		testutil.NewTestVenue("b", "B", testutil.WithLocation(2, 4)),
	})
	require.True(t, ok)
	assert.Equal(t, domain.Location{Lat: 1, Lng: 2}, c)
}

func TestClusterVenues_NearAndFar(t *testing.T) {
	venues := []domain.Venue{
		testutil.NewTestVenue("origin", "Origin", testutil.WithLocation(0, 0)),
		testutil.NewTestVenue("far", "Far", testutil.WithLocation(0, 1)),
		testutil.NewTestVenue("near", "Near", testutil.WithLocation(0, 0.0001)),
	}

	clusters := ClusterVenues(venues, 1500)

	require.Len(t, clusters, 2)
	assert.Equal(t, "origin", clusters[0].Seed.PlaceID)
	require.Len(t, clusters[0].Members, 2)
	assert.Equal(t, "near", clusters[0].Members[1].PlaceID)
	assert.Equal(t, "far", clusters[1].Seed.PlaceID)
	assert.Len(t, clusters[1].Members, 1)
	assert.Len(t, clusters[0].Cell, 6)
}

func TestClusterVenues_MembershipIsNotTransitive(t *testing.T) {
	// Each hop is ~1334 m; the third venue is ~2669 m from the seed.
	venues := []domain.Venue{
		testutil.NewTestVenue("a", "A", testutil.WithLocation(0, 0)),
		testutil.NewTestVenue("b", "B", testutil.WithLocation(0, 0.012)),
		testutil.NewTestVenue("c", "C", testutil.WithLocation(0, 0.024)),
	}

	clusters := ClusterVenues(venues, 1500)

	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"a", "b"}, memberIDs(clusters[0]))
	assert.Equal(t, []string{"c"}, memberIDs(clusters[1]))
}

func TestClusterVenues_DefaultRadius(t *testing.T) {
	venues := []domain.Venue{
		testutil.NewTestVenue("a", "A", testutil.WithLocation(0, 0)),
		testutil.NewTestVenue("b", "B", testutil.WithLocation(0, 0.012)),
	}
	assert.Len(t, ClusterVenues(venues, 0), 1)
	assert.Len(t, ClusterVenues(venues, 100), 2)
}

func TestClusterVenues_Empty(t *testing.T) {
	assert.Empty(t, ClusterVenues(nil, 1500))
}

func TestClusterVenues_CentroidOfMembers(t *testing.T) {
	venues := []domain.Venue{
		testutil.NewTestVenue("a", "A", testutil.WithLocation(0, 0)),
		testutil.NewTestVenue("b", "B", testutil.WithLocation(0, 0.002)),
	}
	clusters := ClusterVenues(venues, 1500)
	require.Len(t, clusters, 1)
	assert.InDelta(t, 0.001, clusters[0].Centroid.Lng, 1e-12)
}

// TestClusterVenues_Partition property-tests that clusters partition the
// input and come back largest first.
func TestClusterVenues_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(40)
		venues := make([]domain.Venue, n)
		for i := range venues {
			venues[i] = testutil.NewTestVenue("", "V",
				testutil.WithLocation(38.70+rng.Float64()*0.08, -9.20+rng.Float64()*0.1))
		}

		clusters := ClusterVenues(venues, 1500)

		seen := make(map[string]int)
		for i, c := range clusters {
			require.NotEmpty(t, c.Members, "trial %d", trial)
			assert.Equal(t, c.Seed.PlaceID, c.Members[0].PlaceID, "trial %d", trial)
			for _, m := range c.Members {
				seen[m.PlaceID]++
				assert.LessOrEqual(t, HaversineM(c.Seed.Location, m.Location), 1500.0, "trial %d", trial)
			}
			if i > 0 {
				assert.GreaterOrEqual(t, len(clusters[i-1].Members), len(c.Members), "trial %d", trial)
			}
		}
		assert.Len(t, seen, n, "trial %d", trial)
		for id, count := range seen {
			assert.Equal(t, 1, count, "trial %d: %s", trial, id)
		}
	}
}

func memberIDs(c Cluster) []string {
	ids := make([]string, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.PlaceID
	}
	return ids
}
