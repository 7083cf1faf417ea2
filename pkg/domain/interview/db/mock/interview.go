package mocks

import (
	"context"
	"errors"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kdbmock "github.com/bandq-jp/hirelog/pkg/domain/internal/db/mock"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
)

type UpdateInterviewArgs struct {
	Id    string
	Patch types.InterviewPatch
}

type SaveDetailsArgs struct {
	InterviewId string
	Inputs      []types.DetailInput
}

type AddQuestionArgs struct {
	InterviewId string
	Input       types.QuestionInput
}

type UpdateQuestionArgs struct {
	QuestionId string
	Patch      types.QuestionPatch
}

type InterviewInterface struct {
	Impl struct {
		Get            func(context.Context, string) (*types.Interview, error)
		GetByCandidate func(context.Context, string) (*types.Interview, error)
		Create         func(context.Context, types.NewInterview) (*types.Interview, error)
		Update         func(context.Context, string, types.InterviewPatch) (*types.Interview, error)
		SaveDetails    func(context.Context, string, []types.DetailInput) ([]*types.InterviewDetail, error)
		ListDetails    func(context.Context, string) ([]*types.InterviewDetail, error)
		AddQuestion    func(context.Context, string, types.QuestionInput) (*types.InterviewQuestionResponse, error)
		UpdateQuestion func(context.Context, string, types.QuestionPatch) (*types.InterviewQuestionResponse, error)
		DeleteQuestion func(context.Context, string) (bool, error)
		ListQuestions  func(context.Context, string) ([]*types.InterviewQuestionResponse, error)
	}
	Calls struct {
		Get            kdbmock.CallLog[string]
		GetByCandidate kdbmock.CallLog[string]
		Create         kdbmock.CallLog[types.NewInterview]
		Update         kdbmock.CallLog[UpdateInterviewArgs]
		SaveDetails    kdbmock.CallLog[SaveDetailsArgs]
		ListDetails    kdbmock.CallLog[string]
		AddQuestion    kdbmock.CallLog[AddQuestionArgs]
		UpdateQuestion kdbmock.CallLog[UpdateQuestionArgs]
		DeleteQuestion kdbmock.CallLog[string]
		ListQuestions  kdbmock.CallLog[string]
	}
}

var _ kdb.InterviewInterface = &InterviewInterface{}

func NewInterviewInterface() *InterviewInterface {
	return &InterviewInterface{}
}

func (m *InterviewInterface) Get(ctx context.Context, id string) (*types.Interview, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) GetByCandidate(ctx context.Context, candidateId string) (*types.Interview, error) {
	m.Calls.GetByCandidate = append(m.Calls.GetByCandidate, candidateId)
	if m.Impl.GetByCandidate != nil {
		return m.Impl.GetByCandidate(ctx, candidateId)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) Create(ctx context.Context, spec types.NewInterview) (*types.Interview, error) {
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, spec)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) Update(ctx context.Context, id string, patch types.InterviewPatch) (*types.Interview, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateInterviewArgs{Id: id, Patch: patch})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) SaveDetails(ctx context.Context, interviewId string, inputs []types.DetailInput) ([]*types.InterviewDetail, error) {
	m.Calls.SaveDetails = append(m.Calls.SaveDetails, SaveDetailsArgs{InterviewId: interviewId, Inputs: inputs})
	if m.Impl.SaveDetails != nil {
		return m.Impl.SaveDetails(ctx, interviewId, inputs)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) ListDetails(ctx context.Context, interviewId string) ([]*types.InterviewDetail, error) {
	m.Calls.ListDetails = append(m.Calls.ListDetails, interviewId)
	if m.Impl.ListDetails != nil {
		return m.Impl.ListDetails(ctx, interviewId)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) AddQuestion(ctx context.Context, interviewId string, input types.QuestionInput) (*types.InterviewQuestionResponse, error) {
	m.Calls.AddQuestion = append(m.Calls.AddQuestion, AddQuestionArgs{InterviewId: interviewId, Input: input})
	if m.Impl.AddQuestion != nil {
		return m.Impl.AddQuestion(ctx, interviewId, input)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) UpdateQuestion(ctx context.Context, questionId string, patch types.QuestionPatch) (*types.InterviewQuestionResponse, error) {
	m.Calls.UpdateQuestion = append(m.Calls.UpdateQuestion, UpdateQuestionArgs{QuestionId: questionId, Patch: patch})
	if m.Impl.UpdateQuestion != nil {
		return m.Impl.UpdateQuestion(ctx, questionId, patch)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) DeleteQuestion(ctx context.Context, questionId string) (bool, error) {
	m.Calls.DeleteQuestion = append(m.Calls.DeleteQuestion, questionId)
	if m.Impl.DeleteQuestion != nil {
		return m.Impl.DeleteQuestion(ctx, questionId)
	}
	panic(errors.New("should not be called"))
}

func (m *InterviewInterface) ListQuestions(ctx context.Context, interviewId string) ([]*types.InterviewQuestionResponse, error) {
	m.Calls.ListQuestions = append(m.Calls.ListQuestions, interviewId)
	if m.Impl.ListQuestions != nil {
		return m.Impl.ListQuestions(ctx, interviewId)
	}
	panic(errors.New("should not be called"))
}
