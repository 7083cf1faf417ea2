package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
)

type UpdateCandidateArgs struct {
	Id    string
	Patch types.CandidatePatch
}

type CandidateInterface struct {
	Impl struct {
		Get    func(context.Context, string) (*types.Candidate, error)
		List   func(context.Context, types.CandidateFilter) ([]*types.Candidate, error)
		Create func(context.Context, types.NewCandidate) (*types.Candidate, error)
		Update func(context.Context, string, types.CandidatePatch) (*types.Candidate, error)
		Delete func(context.Context, string) (bool, error)
		Funnel func(context.Context, string) (*types.FunnelStats, error)
	}
	Calls struct {
		Get    kdbmock.CallLog[string]
		List   kdbmock.CallLog[types.CandidateFilter]
		Create kdbmock.CallLog[types.NewCandidate]
		Update kdbmock.CallLog[UpdateCandidateArgs]
		Delete kdbmock.CallLog[string]
		Funnel kdbmock.CallLog[string]
	}
}

var _ kdb.CandidateInterface = &CandidateInterface{}

func NewCandidateInterface() *CandidateInterface {
	return &CandidateInterface{}
}

func (m *CandidateInterface) Get(ctx context.Context, id string) (*types.Candidate, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *CandidateInterface) List(ctx context.Context, filter types.CandidateFilter) ([]*types.Candidate, error) {
	m.Calls.List = append(m.Calls.List, filter)
	if m.Impl.List != nil {
		return m.Impl.List(ctx, filter)
	}
	panic(errors.New("should not be called"))
}

func (m *CandidateInterface) Create(ctx context.Context, spec types.NewCandidate) (*types.Candidate, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *CandidateInterface) Update(ctx context.Context, id string, patch types.CandidatePatch) (*types.Candidate, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateCandidateArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}

func (m *CandidateInterface) Delete(ctx context.Context, id string) (bool, error) {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *CandidateInterface) Funnel(ctx context.Context, companyId string) (*types.FunnelStats, error) {
	m.Calls.Funnel = append(m.Calls.Funnel, companyId)
	if m.Impl.Funnel != nil {
		return m.Impl.Funnel(ctx, companyId)
	}
	panic(errors.New("should not be called"))
}
