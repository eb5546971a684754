package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/repository"
)

type cacheService struct {
	venues   repository.VenueRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewCacheService(venues repository.VenueRepo, now func() time.Time, observers ...UseCaseObserver) app.CacheUseCase {
	if now == nil {
		now = time.Now
	}
	return &cacheService{venues: venues, now: now, observer: useCaseObserverOrNoop(observers)}
}

// PurgeCache removes venues fetched more than olderThan ago.
func (s *cacheService) PurgeCache(ctx context.Context, olderThan time.Duration) (purged int64, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "cache-purge",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"older_than": olderThan.String(), "purged": purged},
		})
	}()

	if olderThan < 0 {
		return 0, fmt.Errorf("older-than must not be negative, got %s", olderThan)
	}
	return s.venues.PurgeOlderThan(ctx, s.now().Add(-olderThan))
}
