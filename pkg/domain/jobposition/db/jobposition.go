package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type JobPositionInterface interface {
	// Retrieve a position by id. Returns (nil, nil) when no row matches.
	Get(ctx context.Context, id string) (*types.JobPosition, error)

	// List positions, newest first. An empty companyId lists all companies.
	List(ctx context.Context, companyId string) ([]*types.JobPosition, error)

	Create(ctx context.Context, spec types.NewJobPosition) (*types.JobPosition, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	//
	// Positions are never deleted; close one by patching IsActive off.
	Update(ctx context.Context, id string, patch types.JobPositionPatch) (*types.JobPosition, error)
}
