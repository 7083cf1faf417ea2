package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type AgentInterface interface {
	// Retrieve an agent by id.
	//
	// Returns (nil, nil) when no live row matches; soft-deleted rows never match.
	Get(ctx context.Context, id string) (*types.Agent, error)

	// List all live agents, newest first.
	List(ctx context.Context) ([]*types.Agent, error)

	Create(ctx context.Context, spec types.NewAgent) (*types.Agent, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.AgentPatch) (*types.Agent, error)

	// Soft-delete. Returns false when the id does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}
