package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/user/db"
)

type UpdateUserArgs struct {
	Id    string
	Patch types.UserPatch
}

type UserInterface struct {
	Impl struct {
		Get          func(context.Context, string) (*types.User, error)
		GetByClerkId func(context.Context, string) (*types.User, error)
		List         func(context.Context) ([]*types.User, error)
		Count        func(context.Context) (int, error)
		Create       func(context.Context, types.NewUser) (*types.User, error)
		Update       func(context.Context, string, types.UserPatch) (*types.User, error)
	}
	Calls struct {
		Get          kdbmock.CallLog[string]
		GetByClerkId kdbmock.CallLog[string]
		List         kdbmock.CallLog[struct{}]
		Count        kdbmock.CallLog[struct{}]
		Create       kdbmock.CallLog[types.NewUser]
		Update       kdbmock.CallLog[UpdateUserArgs]
	}
}

var _ kdb.UserInterface = &UserInterface{}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

func (m *UserInterface) Get(ctx context.Context, id string) (*types.User, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) GetByClerkId(ctx context.Context, clerkId string) (*types.User, error) {
	m.Calls.GetByClerkId = append(m.Calls.GetByClerkId, clerkId)
	if m.Impl.GetByClerkId != nil {
		return m.Impl.GetByClerkId(ctx, clerkId)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) List(ctx context.Context) ([]*types.User, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Count(ctx context.Context) (int, error) {
	m.Calls.Count = append(m.Calls.Count, struct{}{})
	if m.Impl.Count != nil {
		return m.Impl.Count(ctx)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Create(ctx context.Context, spec types.NewUser) (*types.User, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Update(ctx context.Context, id string, patch types.UserPatch) (*types.User, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateUserArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}
