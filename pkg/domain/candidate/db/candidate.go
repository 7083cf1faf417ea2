package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type CandidateInterface interface {
	// Retrieve a candidate by id.
	//
	// Returns (nil, nil) when no live row matches; soft-deleted rows never match.
	Get(ctx context.Context, id string) (*types.Candidate, error)

	// List live candidates matching the filter, newest first.
	List(ctx context.Context, filter types.CandidateFilter) ([]*types.Candidate, error)

	Create(ctx context.Context, spec types.NewCandidate) (*types.Candidate, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.CandidatePatch) (*types.Candidate, error)

	// Soft-delete. Returns false when the id does not exist.
	Delete(ctx context.Context, id string) (bool, error)

	// Funnel counts live candidates per stage.
	// An empty companyId spans all companies.
	Funnel(ctx context.Context, companyId string) (*types.FunnelStats, error)
}
