package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
)

type UpdateCompanyArgs struct {
	Id    string
	Patch types.CompanyPatch
}

type CompanyInterface struct {
	Impl struct {
		Get    func(context.Context, string) (*types.Company, error)
		List   func(context.Context) ([]*types.Company, error)
		Create func(context.Context, types.NewCompany) (*types.Company, error)
		Update func(context.Context, string, types.CompanyPatch) (*types.Company, error)
		Delete func(context.Context, string) (bool, error)
	}
	Calls struct {
		Get    kdbmock.CallLog[string]
		List   kdbmock.CallLog[struct{}]
		Create kdbmock.CallLog[types.NewCompany]
		Update kdbmock.CallLog[UpdateCompanyArgs]
		Delete kdbmock.CallLog[string]
	}
}

var _ kdb.CompanyInterface = &CompanyInterface{}

func NewCompanyInterface() *CompanyInterface {
	return &CompanyInterface{}
}

func (m *CompanyInterface) Get(ctx context.Context, id string) (*types.Company, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *CompanyInterface) List(ctx context.Context) ([]*types.Company, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("should not be called"))
}

func (m *CompanyInterface) Create(ctx context.Context, spec types.NewCompany) (*types.Company, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *CompanyInterface) Update(ctx context.Context, id string, patch types.CompanyPatch) (*types.Company, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateCompanyArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}

func (m *CompanyInterface) Delete(ctx context.Context, id string) (bool, error) {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("should not be called"))
}
