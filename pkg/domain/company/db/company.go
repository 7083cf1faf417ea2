package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type CompanyInterface interface {
	// Retrieve a company by id.
	//
	// Returns (nil, nil) when no live row matches; soft-deleted rows never match.
	Get(ctx context.Context, id string) (*types.Company, error)

	// List all live companies, newest first.
	List(ctx context.Context) ([]*types.Company, error)

	Create(ctx context.Context, spec types.NewCompany) (*types.Company, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.CompanyPatch) (*types.Company, error)

	// Soft-delete. Returns false when the id does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}
