package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/db"
	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/places"
	"github.com/alexanderramin/outing/internal/planner"
	"github.com/alexanderramin/outing/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSearchRadiusM = 5000
	defaultVenueTTL      = 7 * 24 * time.Hour
)

type PlanServiceConfig struct {
	// Limits are the per-request call ceilings; nil uses places.DefaultLimits.
	// A zero field disables that kind of call.
	Limits         *places.Limits
	Tables         planner.Tables
	VenueTTL       time.Duration
	ClusterRadiusM float64
	SearchRadiusM  int
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

type planService struct {
	source  VenueSource
	centers *places.CenterCache
	venues  repository.VenueRepo
	uow     db.UnitOfWork
	cfg     PlanServiceConfig
	logger  *slog.Logger

	observer UseCaseObserver
}

func NewPlanService(
	source VenueSource,
	centers *places.CenterCache,
	venues repository.VenueRepo,
	uow db.UnitOfWork,
	cfg PlanServiceConfig,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) app.PlanUseCase {
	if cfg.Limits == nil {
		limits := places.DefaultLimits()
		cfg.Limits = &limits
	}
	if cfg.VenueTTL <= 0 {
		cfg.VenueTTL = defaultVenueTTL
	}
	if cfg.SearchRadiusM <= 0 {
		cfg.SearchRadiusM = defaultSearchRadiusM
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &planService{
		source:   source,
		centers:  centers,
		venues:   venues,
		uow:      uow,
		cfg:      cfg,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

// planRun is the state of one Plan call.
type planRun struct {
	id     string
	req    domain.OutingRequest
	now    time.Time
	calls  *places.CallBudget
	center *domain.Location

	mu       sync.Mutex
	warnings []string
}

func (r *planRun) warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (s *planService) Plan(ctx context.Context, preq app.PlanRequest) (resp *app.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	now := s.cfg.Now()
	if preq.Now != nil {
		now = *preq.Now
	}
	run := &planRun{
		id:    uuid.New().String(),
		req:   preq.Outing,
		now:   now,
		calls: places.NewCallBudget(*s.cfg.Limits),
	}
	fields := map[string]any{"request_id": run.id, "city": preq.Outing.City}
	defer func() {
		usage := run.calls.Snapshot()
		fields["search_calls"] = usage.Search
		fields["details_calls"] = usage.Details
		fields["route_calls"] = usage.Route
		if resp != nil {
			fields["plans"] = len(resp.Plans)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err := app.ValidateRequest(preq.Outing); err != nil {
		return nil, err
	}
	tables := s.cfg.Tables
	skeleton := planner.BuildSkeleton(preq.Outing.Budget, preq.Outing.StartTime, preq.Outing.EndTime, tables)
	fields["template"] = string(skeleton.Template)

	run.center = s.resolveCenter(ctx, run)

	pools, err := s.searchPools(ctx, run)
	if err != nil {
		return nil, &app.PlanError{Code: app.ErrUpstreamFailure, Message: "venue search was interrupted", Err: err}
	}
	if len(pools.All()) == 0 {
		return nil, &app.PlanError{
			Code:    app.ErrNoCandidates,
			Message: fmt.Sprintf("no venues found in %s", preq.Outing.City),
		}
	}

	targets := targetPerPerson(skeleton, preq.Outing)
	if err := s.enrichPools(ctx, run, pools, targets); err != nil {
		return nil, &app.PlanError{Code: app.ErrUpstreamFailure, Message: "venue enrichment was interrupted", Err: err}
	}

	sel := planner.SelectFinalists(planner.SelectionInput{
		Pools:           pools,
		TargetPerPerson: targets,
		Preferences:     preq.Outing.Preferences,
		Tables:          tables,
	})
	in := planner.AssemblyInput{
		Skeleton:  skeleton,
		Selection: sel,
		PerPerson: preq.Outing.PerPerson(),
		Family:    preq.Outing.Preferences.FamilyFriendly,
		Tables:    tables,
	}
	draft := planner.AssemblePlans(in)
	if len(draft) == 0 {
		return nil, &app.PlanError{Code: app.ErrNoPlans, Message: "no itinerary could be built from the venues found"}
	}

	in.Travel = s.travelTimes(ctx, run, draft)
	plans := planner.AssemblePlans(in)
	if len(plans) == 0 {
		return nil, &app.PlanError{Code: app.ErrNoPlans, Message: "no itinerary could be built from the venues found"}
	}

	var planA *domain.Plan
	if plans[0].ID == domain.PlanA {
		planA = &plans[0]
	}
	swaps := planner.BuildSwapMenu(planner.SwapInput{Pools: pools, PlanA: planA, Tables: tables})

	usage := run.calls.Snapshot()
	return &app.PlanResponse{
		RequestID:   run.id,
		GeneratedAt: run.now.UTC(),
		Skeleton:    skeleton,
		Plans:       plans,
		SwapMenu:    swaps,
		Clusters:    summarizeClusters(planner.ClusterVenues(uniqueVenues(pools.All()), s.cfg.ClusterRadiusM)),
		Calls:       app.CallCounts{Search: usage.Search, Details: usage.Details, Route: usage.Route},
		Warnings:    run.warnings,
	}, nil
}

// resolveCenter returns the city centre from the cache or a geocode call.
// Geocoding is not counted against the call budget. Nil means unknown.
func (s *planService) resolveCenter(ctx context.Context, run *planRun) *domain.Location {
	if s.centers != nil {
		if loc, ok := s.centers.Get(run.req.City); ok {
			return &loc
		}
	}
	loc, err := s.source.Geocode(ctx, run.req.City)
	if err != nil {
		s.logger.WarnContext(ctx, "geocode failed", "city", run.req.City, "error", err)
		run.warn("could not locate %s; results are not biased towards the centre", run.req.City)
		return nil
	}
	if s.centers != nil {
		s.centers.Set(run.req.City, loc)
	}
	return &loc
}

// searchPools runs one text search per pool concurrently. A failed search
// degrades to cached venues near the centre, or an empty pool.
func (s *planService) searchPools(ctx context.Context, run *planRun) (planner.Pools, error) {
	pools := make(planner.Pools, len(planner.PoolCategories))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, pool := range planner.PoolCategories {
		pool := pool
		g.Go(func() error {
			venues, err := s.searchPool(gctx, run, pool)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.WarnContext(ctx, "venue search failed", "pool", pool, "error", err)
				venues = s.cachedPool(ctx, run, pool)
				if len(venues) > 0 {
					run.warn("%s search failed; using %d cached venues", pool, len(venues))
				} else {
					run.warn("%s search failed; no %s stops available", pool, pool)
				}
			}
			mu.Lock()
			pools[pool] = venues
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *planService) searchPool(ctx context.Context, run *planRun, pool domain.Category) ([]domain.Venue, error) {
	if err := run.calls.Reserve(places.CallSearch); err != nil {
		return nil, err
	}
	query := places.SearchQuery(pool, run.req.City, run.req.Preferences)
	results, err := s.source.TextSearch(ctx, query, run.center, s.cfg.SearchRadiusM)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", pool, err)
	}
	venues := make([]domain.Venue, 0, len(results))
	for _, r := range results {
		if r.PlaceID == "" || r.BusinessStatus == "CLOSED_PERMANENTLY" {
			continue
		}
		venues = append(venues, places.ToVenue(r, pool))
	}
	return venues, nil
}

// poolCacheCategories are the stored categories a pool can fall back to.
var poolCacheCategories = map[domain.Category][]domain.Category{
	domain.CategoryActivity: {domain.CategoryActivity, domain.CategoryScenic},
	domain.CategoryDinner:   {domain.CategoryDinner},
	domain.CategoryFinish:   {domain.CategoryDrinks, domain.CategoryDessert, domain.CategoryFinish},
}

func (s *planService) cachedPool(ctx context.Context, run *planRun, pool domain.Category) []domain.Venue {
	if s.venues == nil || run.center == nil {
		return nil
	}
	prefix := cellPrefix(*run.center)
	var out []domain.Venue
	for _, c := range poolCacheCategories[pool] {
		venues, err := s.venues.ListNear(ctx, prefix, c, cachedPoolSize)
		if err != nil {
			s.logger.WarnContext(ctx, "cached pool lookup failed", "pool", pool, "error", err)
			continue
		}
		for _, v := range venues {
			// Stored opening state is stale; only a Details call this run may set it.
			v.OpenNow = nil
			out = append(out, v)
		}
	}
	return out
}

// targetPerPerson maps each pool to the per-person spend its skeleton slot
// allows. The finish pool takes the first of drinks, dessert, scenic, finish.
func targetPerPerson(sk domain.Skeleton, req domain.OutingRequest) map[domain.Category]float64 {
	party := req.PartySize
	if party <= 0 {
		party = 2
	}
	first := func(cats ...domain.Category) float64 {
		for _, c := range cats {
			if amt := planner.BudgetForSlot(sk, c); amt > 0 {
				return float64(amt) / float64(party)
			}
		}
		return 0
	}
	return map[domain.Category]float64{
		domain.CategoryActivity: first(domain.CategoryActivity, domain.CategoryScenic),
		domain.CategoryDinner:   first(domain.CategoryDinner),
		domain.CategoryFinish:   first(domain.CategoryDrinks, domain.CategoryDessert, domain.CategoryScenic, domain.CategoryFinish),
	}
}

func summarizeClusters(clusters []planner.Cluster) []app.ClusterSummary {
	out := make([]app.ClusterSummary, 0, len(clusters))
	for _, c := range clusters {
		ids := make([]string, len(c.Members))
		for i, m := range c.Members {
			ids[i] = m.PlaceID
		}
		out = append(out, app.ClusterSummary{
			Cell:     c.Cell,
			Centroid: c.Centroid,
			Seed:     c.Seed.PlaceID,
			Venues:   ids,
		})
	}
	return out
}

// uniqueVenues drops repeated place ids, keeping the first occurrence.
func uniqueVenues(venues []domain.Venue) []domain.Venue {
	seen := make(map[string]bool, len(venues))
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if seen[v.PlaceID] {
			continue
		}
		seen[v.PlaceID] = true
		out = append(out, v)
	}
	return out
}

func isBudgetExhausted(err error) bool {
	return errors.Is(err, places.ErrBudgetExhausted)
}
