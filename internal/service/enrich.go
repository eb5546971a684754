package service

import (
	"context"
	"sort"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/places"
	"github.com/alexanderramin/outing/internal/planner"
	"github.com/alexanderramin/outing/internal/repository"
	"github.com/mmcloughlin/geohash"
	"golang.org/x/sync/errgroup"
)

const (
	// cachedPoolSize caps each category read from the cache as a fallback pool.
	cachedPoolSize = 10
	// fallbackCellPrecision is a ~4.9 km geohash cell around the centre.
	fallbackCellPrecision = 5
	detailsConcurrency    = 3
)

func cellPrefix(loc domain.Location) string {
	return geohash.EncodeWithPrecision(loc.Lat, loc.Lng, fallbackCellPrecision)
}

// hasDetails reports whether a stored venue already went through Place Details.
func hasDetails(v domain.Venue) bool {
	return v.Website != "" || v.Phone != ""
}

type poolRef struct {
	pool  domain.Category
	index int
}

// enrichPools folds cached and freshly fetched details into the pools in
// place. Details calls go to the best-ranked venues first, alternating
// between pools, and stop when the call budget runs out. Fresh results are
// written back to the venue cache.
func (s *planService) enrichPools(ctx context.Context, run *planRun, pools planner.Pools, targets map[domain.Category]float64) error {
	refs := make(map[string][]poolRef)
	var ids []string
	for _, pool := range planner.PoolCategories {
		for i, v := range pools[pool] {
			if _, ok := refs[v.PlaceID]; !ok {
				ids = append(ids, v.PlaceID)
			}
			refs[v.PlaceID] = append(refs[v.PlaceID], poolRef{pool: pool, index: i})
		}
	}

	cached := s.loadCached(ctx, ids)
	enriched := make(map[string]bool, len(cached))
	for id, c := range cached {
		stored := c.Venue
		// Opening state is only meaningful when fetched now.
		stored.OpenNow = nil
		for _, ref := range refs[id] {
			v := pools[ref.pool][ref.index]
			merged := domain.MergeVenue(stored, v)
			merged.Category = v.Category
			pools[ref.pool][ref.index] = merged
		}
		if c.Fresh(run.now, s.cfg.VenueTTL) && hasDetails(c.Venue) {
			enriched[id] = true
		}
	}

	candidates := s.detailCandidates(run, pools, targets, enriched)
	fetched := make([]*places.PlaceResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)
	for i, id := range candidates {
		i, id := i, id
		g.Go(func() error {
			if err := run.calls.Reserve(places.CallDetails); err != nil {
				return nil
			}
			res, err := s.source.Details(gctx, id)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.WarnContext(ctx, "venue details failed", "place_id", id, "error", err)
				return nil
			}
			fetched[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var toStore []domain.Venue
	stored := make(map[string]bool)
	for i, res := range fetched {
		if res == nil {
			continue
		}
		id := candidates[i]
		for _, ref := range refs[id] {
			v := pools[ref.pool][ref.index]
			merged := domain.MergeVenue(v, places.ToVenue(*res, ref.pool))
			merged.PlaceID = id
			pools[ref.pool][ref.index] = merged
		}
		first := refs[id][0]
		toStore = append(toStore, pools[first.pool][first.index])
		stored[id] = true
	}
	// Search results the cache has not seen yet.
	for _, id := range ids {
		if _, ok := cached[id]; ok || stored[id] {
			continue
		}
		first := refs[id][0]
		toStore = append(toStore, pools[first.pool][first.index])
	}
	s.storeVenues(ctx, toStore, run)
	return nil
}

func (s *planService) loadCached(ctx context.Context, ids []string) map[string]repository.CachedVenue {
	if s.venues == nil || len(ids) == 0 {
		return nil
	}
	cached, err := s.venues.GetMany(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "venue cache read failed", "error", err)
		return nil
	}
	return cached
}

// detailCandidates picks up to the remaining details budget of venues
// without fresh details, taking rank 1 of every pool, then rank 2, and so on.
func (s *planService) detailCandidates(run *planRun, pools planner.Pools, targets map[domain.Category]float64, enriched map[string]bool) []string {
	limit := run.calls.Remaining(places.CallDetails)
	if limit <= 0 {
		return nil
	}
	ranked := make(map[domain.Category][]planner.ScoredVenue, len(pools))
	depth := 0
	for _, pool := range planner.PoolCategories {
		ranked[pool] = planner.RankVenues(pools[pool], planner.ScoringContext{
			TargetPerPerson: targets[pool],
			Preferences:     run.req.Preferences,
			Tables:          s.cfg.Tables,
		})
		depth = max(depth, len(ranked[pool]))
	}

	var out []string
	picked := make(map[string]bool)
	for rank := 0; rank < depth && len(out) < limit; rank++ {
		for _, pool := range planner.PoolCategories {
			if rank >= len(ranked[pool]) || len(out) >= limit {
				continue
			}
			id := ranked[pool][rank].Venue.PlaceID
			if enriched[id] || picked[id] {
				continue
			}
			picked[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *planService) storeVenues(ctx context.Context, venues []domain.Venue, run *planRun) {
	if s.uow == nil || len(venues) == 0 {
		return
	}
	sort.SliceStable(venues, func(i, j int) bool { return venues[i].PlaceID < venues[j].PlaceID })
	if err := repository.UpsertVenues(ctx, s.uow, venues, run.now); err != nil {
		s.logger.WarnContext(ctx, "venue cache write failed", "venues", len(venues), "error", err)
	}
}
