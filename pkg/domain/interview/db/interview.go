package db

import (
	"context"

	types "github.com/bandq-jp/hirelog/pkg/domain"
)

type InterviewInterface interface {
	// Retrieve an interview by id. Returns (nil, nil) when no row matches.
	Get(ctx context.Context, id string) (*types.Interview, error)

	// Retrieve the interview of a candidate. At most one exists.
	// Returns (nil, nil) when the candidate has not been interviewed.
	GetByCandidate(ctx context.Context, candidateId string) (*types.Interview, error)

	Create(ctx context.Context, spec types.NewInterview) (*types.Interview, error)

	// Apply a partial patch. Returns (nil, nil) when the id does not exist.
	Update(ctx context.Context, id string, patch types.InterviewPatch) (*types.Interview, error)

	// SaveDetails stores scored results in bulk, atomically.
	//
	// The (interview, criteria item) pair is unique: an input naming an
	// already scored item overwrites the stored row in place.
	SaveDetails(ctx context.Context, interviewId string, inputs []types.DetailInput) ([]*types.InterviewDetail, error)

	// ListDetails returns the scored results of an interview
	// in criteria order (group sort, then item sort).
	ListDetails(ctx context.Context, interviewId string) ([]*types.InterviewDetail, error)

	AddQuestion(ctx context.Context, interviewId string, input types.QuestionInput) (*types.InterviewQuestionResponse, error)

	// Apply a partial patch to a question record.
	// Returns (nil, nil) when the id does not exist.
	UpdateQuestion(ctx context.Context, questionId string, patch types.QuestionPatch) (*types.InterviewQuestionResponse, error)

	// Hard-delete a question record. Returns false when the id does not exist.
	DeleteQuestion(ctx context.Context, questionId string) (bool, error)

	// ListQuestions returns the question records of an interview
	// in arrival order.
	ListQuestions(ctx context.Context, interviewId string) ([]*types.InterviewQuestionResponse, error)
}
