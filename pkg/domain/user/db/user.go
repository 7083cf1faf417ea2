package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type UserInterface interface {
	// Retrieve a user by id. Returns (nil, nil) when no row matches.
	Get(ctx context.Context, id string) (*types.User, error)

	// Retrieve a user by the identity-provider subject.
	// Returns (nil, nil) when the subject has no local account yet.
	GetByClerkId(ctx context.Context, clerkId string) (*types.User, error)

	List(ctx context.Context) ([]*types.User, error)

	// Count all users. Provisioning treats the very first account specially.
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, spec types.NewUser) (*types.User, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.UserPatch) (*types.User, error)
}
