package app

import (
	"context"
	"time"
)

type PlanUseCase interface {
	Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

type IntentUseCase interface {
	ParseOuting(ctx context.Context, text string) (*OutingDraft, error)
}

type CacheUseCase interface {
	PurgeCache(ctx context.Context, olderThan time.Duration) (int64, error)
}
