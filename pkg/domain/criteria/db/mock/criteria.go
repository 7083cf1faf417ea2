package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/criteria/db"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
)

type UpdateCriteriaGroupArgs struct {
	Id    string
	Patch types.CriteriaGroupPatch
}

type CriteriaGroupInterface struct {
	Impl struct {
		Get            func(context.Context, string) (*types.CriteriaGroup, error)
		ListByPosition func(context.Context, string) ([]*types.CriteriaGroup, error)
		Create         func(context.Context, types.NewCriteriaGroup) (*types.CriteriaGroup, error)
		Update         func(context.Context, string, types.CriteriaGroupPatch) (*types.CriteriaGroup, error)
		Delete         func(context.Context, string) (bool, error)
	}
	Calls struct {
		Get            kdbmock.CallLog[string]
		ListByPosition kdbmock.CallLog[string]
		Create         kdbmock.CallLog[types.NewCriteriaGroup]
		Update         kdbmock.CallLog[UpdateCriteriaGroupArgs]
		Delete         kdbmock.CallLog[string]
	}
}

var _ kdb.CriteriaGroupInterface = &CriteriaGroupInterface{}

func NewCriteriaGroupInterface() *CriteriaGroupInterface {
	return &CriteriaGroupInterface{}
}

func (m *CriteriaGroupInterface) Get(ctx context.Context, id string) (*types.CriteriaGroup, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaGroupInterface) ListByPosition(ctx context.Context, jobPositionId string) ([]*types.CriteriaGroup, error) {
	m.Calls.ListByPosition = append(m.Calls.ListByPosition, jobPositionId)
	if m.Impl.ListByPosition != nil {
		return m.Impl.ListByPosition(ctx, jobPositionId)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaGroupInterface) Create(ctx context.Context, spec types.NewCriteriaGroup) (*types.CriteriaGroup, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaGroupInterface) Update(ctx context.Context, id string, patch types.CriteriaGroupPatch) (*types.CriteriaGroup, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateCriteriaGroupArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaGroupInterface) Delete(ctx context.Context, id string) (bool, error) {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("should not be called"))
}

type UpdateCriteriaItemArgs struct {
	Id    string
	Patch types.CriteriaItemPatch
}

type CriteriaItemInterface struct {
	Impl struct {
		Get            func(context.Context, string) (*types.CriteriaItem, error)
		ListByGroup    func(context.Context, string) ([]*types.CriteriaItem, error)
		ListByPosition func(context.Context, string) ([]*types.CriteriaItem, error)
		Create         func(context.Context, types.NewCriteriaItem) (*types.CriteriaItem, error)
		Update         func(context.Context, string, types.CriteriaItemPatch) (*types.CriteriaItem, error)
	}
	Calls struct {
		Get            kdbmock.CallLog[string]
		ListByGroup    kdbmock.CallLog[string]
		ListByPosition kdbmock.CallLog[string]
		Create         kdbmock.CallLog[types.NewCriteriaItem]
		Update         kdbmock.CallLog[UpdateCriteriaItemArgs]
	}
}

var _ kdb.CriteriaItemInterface = &CriteriaItemInterface{}

func NewCriteriaItemInterface() *CriteriaItemInterface {
	return &CriteriaItemInterface{}
}

func (m *CriteriaItemInterface) Get(ctx context.Context, id string) (*types.CriteriaItem, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaItemInterface) ListByGroup(ctx context.Context, criteriaGroupId string) ([]*types.CriteriaItem, error) {
	m.Calls.ListByGroup = append(m.Calls.ListByGroup, criteriaGroupId)
	if m.Impl.ListByGroup != nil {
		return m.Impl.ListByGroup(ctx, criteriaGroupId)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaItemInterface) ListByPosition(ctx context.Context, jobPositionId string) ([]*types.CriteriaItem, error) {
	m.Calls.ListByPosition = append(m.Calls.ListByPosition, jobPositionId)
	if m.Impl.ListByPosition != nil {
		return m.Impl.ListByPosition(ctx, jobPositionId)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaItemInterface) Create(ctx context.Context, spec types.NewCriteriaItem) (*types.CriteriaItem, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *CriteriaItemInterface) Update(ctx context.Context, id string, patch types.CriteriaItemPatch) (*types.CriteriaItem, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateCriteriaItemArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}
