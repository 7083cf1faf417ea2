package report

import (
	"context"

	"github.com/bandq-jp/hirelog/pkg/domain"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kcriteria "github.com/bandq-jp/hirelog/pkg/domain/criteria/db"
	kinterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	"github.com/bandq-jp/hirelog/pkg/utils/pointer"
)

// Service fetches everything a report needs and renders it.
type Service struct {
	interview   kinterview.InterviewInterface
	candidate   kcandidate.CandidateInterface
	company     kcompany.CompanyInterface
	jobPosition kjobposition.JobPositionInterface
	group       kcriteria.CriteriaGroupInterface
	item        kcriteria.CriteriaItemInterface
}

func New(
	interview kinterview.InterviewInterface,
	candidate kcandidate.CandidateInterface,
	company kcompany.CompanyInterface,
	jobPosition kjobposition.JobPositionInterface,
	group kcriteria.CriteriaGroupInterface,
	item kcriteria.CriteriaItemInterface,
) *Service {
	return &Service{
		interview:   interview,
		candidate:   candidate,
		company:     company,
		jobPosition: jobPosition,
		group:       group,
		item:        item,
	}
}

// BuildInput assembles the ReportInput of an interview.
//
// Returns (nil, nil) when the interview or its candidate is gone;
// a missing company or position only blanks the corresponding name.
func (s *Service) BuildInput(ctx context.Context, interviewId string) (*ReportInput, error) {
	interview, err := s.interview.Get(ctx, interviewId)
	if err != nil || interview == nil {
		return nil, err
	}

	candidate, err := s.candidate.Get(ctx, interview.CandidateId)
	if err != nil || candidate == nil {
		return nil, err
	}

	in := ReportInput{Interview: interview, Candidate: candidate}

	if company, err := s.company.Get(ctx, candidate.CompanyId); err != nil {
		return nil, err
	} else if company != nil {
		in.CompanyName = company.Name
	}

	if position, err := s.jobPosition.Get(ctx, candidate.JobPositionId); err != nil {
		return nil, err
	} else if position != nil {
		in.PositionName = position.Name
	}

	groups, err := s.group.ListByPosition(ctx, candidate.JobPositionId)
	if err != nil {
		return nil, err
	}
	itemsByGroup := map[string][]*domain.CriteriaItem{}
	for _, g := range groups {
		items, err := s.item.ListByGroup(ctx, g.Id)
		if err != nil {
			return nil, err
		}
		itemsByGroup[g.Id] = items
	}

	details, err := s.interview.ListDetails(ctx, interviewId)
	if err != nil {
		return nil, err
	}
	in.Scores = Aggregate(groups, itemsByGroup, details)

	questions, err := s.interview.ListQuestions(ctx, interviewId)
	if err != nil {
		return nil, err
	}
	in.Questions = questions

	return &in, nil
}

// Client renders the client-facing report of an interview.
// Missing interview or candidate yields ("", nil).
func (s *Service) Client(ctx context.Context, interviewId string) (string, error) {
	in, err := s.BuildInput(ctx, interviewId)
	if err != nil || in == nil {
		return "", err
	}
	return ClientReport(*in), nil
}

// Agent renders the agent-facing feedback of an interview.
// Missing interview or candidate yields ("", nil).
func (s *Service) Agent(ctx context.Context, interviewId string) (string, error) {
	in, err := s.BuildInput(ctx, interviewId)
	if err != nil || in == nil {
		return "", err
	}
	return AgentReport(*in), nil
}

// SaveRendered renders both reports and caches them on the interview
// row. Missing interview or candidate is a no-op.
func (s *Service) SaveRendered(ctx context.Context, interviewId string) error {
	in, err := s.BuildInput(ctx, interviewId)
	if err != nil || in == nil {
		return err
	}

	_, err = s.interview.Update(ctx, interviewId, domain.InterviewPatch{
		ClientReportMarkdown: pointer.Ref(ClientReport(*in)),
		AgentReportMarkdown:  pointer.Ref(AgentReport(*in)),
	})
	return err
}
