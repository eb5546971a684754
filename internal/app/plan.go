package app

import (
	"time"

	"github.com/alexanderramin/outing/internal/domain"
)

// PlanRequest is the input of the plan use case.
type PlanRequest struct {
	Outing domain.OutingRequest
	// Now pins the generation timestamp; nil uses the wall clock.
	Now *time.Time
}

func NewPlanRequest(outing domain.OutingRequest) PlanRequest {
	return PlanRequest{Outing: outing}
}

// CallCounts reports how many billable upstream calls a request used.
type CallCounts struct {
	Search  int `json:"search"`
	Details int `json:"details"`
	Route   int `json:"route"`
}

// ClusterSummary describes one walkable group of candidate venues.
type ClusterSummary struct {
	Cell     string          `json:"cell"`
	Centroid domain.Location `json:"centroid"`
	Seed     string          `json:"seed"`
	Venues   []string        `json:"venues"`
}

type PlanResponse struct {
	RequestID   string                `json:"request_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Skeleton    domain.Skeleton       `json:"skeleton"`
	Plans       []domain.Plan         `json:"plans"`
	SwapMenu    []domain.SwapMenuItem `json:"swap_menu"`
	Clusters    []ClusterSummary      `json:"clusters,omitempty"`
	Calls       CallCounts            `json:"calls"`
	Warnings    []string              `json:"warnings,omitempty"`
}

type PlanErrorCode string

const (
	ErrInvalidRequest  PlanErrorCode = "INVALID_REQUEST"
	ErrNoCandidates    PlanErrorCode = "NO_CANDIDATES"
	ErrNoPlans         PlanErrorCode = "NO_PLANS"
	ErrUpstreamFailure PlanErrorCode = "UPSTREAM_FAILURE"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error {
	return e.Err
}
