package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/agent/db"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
)

type UpdateAgentArgs struct {
	Id    string
	Patch types.AgentPatch
}

type AgentInterface struct {
	Impl struct {
		Get    func(context.Context, string) (*types.Agent, error)
		List   func(context.Context) ([]*types.Agent, error)
		Create func(context.Context, types.NewAgent) (*types.Agent, error)
		Update func(context.Context, string, types.AgentPatch) (*types.Agent, error)
		Delete func(context.Context, string) (bool, error)
	}
	Calls struct {
		Get    kdbmock.CallLog[string]
		List   kdbmock.CallLog[struct{}]
		Create kdbmock.CallLog[types.NewAgent]
		Update kdbmock.CallLog[UpdateAgentArgs]
		Delete kdbmock.CallLog[string]
	}
}

var _ kdb.AgentInterface = &AgentInterface{}

func NewAgentInterface() *AgentInterface {
	return &AgentInterface{}
}

func (m *AgentInterface) Get(ctx context.Context, id string) (*types.Agent, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *AgentInterface) List(ctx context.Context) ([]*types.Agent, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("should not be called"))
}

func (m *AgentInterface) Create(ctx context.Context, spec types.NewAgent) (*types.Agent, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *AgentInterface) Update(ctx context.Context, id string, patch types.AgentPatch) (*types.Agent, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateAgentArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}

func (m *AgentInterface) Delete(ctx context.Context, id string) (bool, error) {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("should not be called"))
}
