package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
)

type UpdateJobPositionArgs struct {
	Id    string
	Patch types.JobPositionPatch
}

type JobPositionInterface struct {
	Impl struct {
		Get    func(context.Context, string) (*types.JobPosition, error)
		List   func(context.Context, string) ([]*types.JobPosition, error)
		Create func(context.Context, types.NewJobPosition) (*types.JobPosition, error)
		Update func(context.Context, string, types.JobPositionPatch) (*types.JobPosition, error)
	}
	Calls struct {
		Get    kdbmock.CallLog[string]
		List   kdbmock.CallLog[string]
		Create kdbmock.CallLog[types.NewJobPosition]
		Update kdbmock.CallLog[UpdateJobPositionArgs]
	}
}

var _ kdb.JobPositionInterface = &JobPositionInterface{}

func NewJobPositionInterface() *JobPositionInterface {
	return &JobPositionInterface{}
}

func (m *JobPositionInterface) Get(ctx context.Context, id string) (*types.JobPosition, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *JobPositionInterface) List(ctx context.Context, companyId string) ([]*types.JobPosition, error) {
	m.Calls.List = append(m.Calls.List, companyId)
	if m.Impl.List != nil {
		return m.Impl.List(ctx, companyId)
	}
	panic(errors.New("should not be called"))
}

func (m *JobPositionInterface) Create(ctx context.Context, spec types.NewJobPosition) (*types.JobPosition, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *JobPositionInterface) Update(ctx context.Context, id string, patch types.JobPositionPatch) (*types.JobPosition, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateJobPositionArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}
