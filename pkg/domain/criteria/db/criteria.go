package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type CriteriaGroupInterface interface {
	// Retrieve a group by id.
	//
	// Returns (nil, nil) when no live row matches; soft-deleted rows never match.
	Get(ctx context.Context, id string) (*types.CriteriaGroup, error)

	// List live groups of a position, ascending sort order then created_at.
	ListByPosition(ctx context.Context, jobPositionId string) ([]*types.CriteriaGroup, error)

	Create(ctx context.Context, spec types.NewCriteriaGroup) (*types.CriteriaGroup, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.CriteriaGroupPatch) (*types.CriteriaGroup, error)

	// Soft-delete. Returns false when the id does not exist.
	//
	// Items under the group stay; reports drop them with their group.
	Delete(ctx context.Context, id string) (bool, error)
}

type CriteriaItemInterface interface {
	// Retrieve an item by id, active or not.
	// Returns (nil, nil) when no row matches.
	Get(ctx context.Context, id string) (*types.CriteriaItem, error)

	// List items of a group, ascending sort order then created_at.
	// Inactive items are included; callers filter when scoring.
	ListByGroup(ctx context.Context, criteriaGroupId string) ([]*types.CriteriaItem, error)

	// List items of every live group of a position, for report rendering.
	ListByPosition(ctx context.Context, jobPositionId string) ([]*types.CriteriaItem, error)

	Create(ctx context.Context, spec types.NewCriteriaItem) (*types.CriteriaItem, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.CriteriaItemPatch) (*types.CriteriaItem, error)
}
