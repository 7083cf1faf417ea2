package types

import (
	"time"

	"github.com/bandq-jp/hirelog/pkg/domain"
)

// Client-facing projections. These are separate structs rather than
// filtered views of the staff DTOs so a new internal field stays
// internal until someone adds it here on purpose.

type ClientMe struct {
	CompanyId   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
}

type ClientCandidate struct {
	Id            string `json:"id"`
	CompanyId     string `json:"company_id"`
	JobPositionId string `json:"job_position_id"`
	Name          string `json:"name"`

	Stage05Result     string `json:"stage_0_5_result"`
	StageFirstResult  string `json:"stage_first_result"`
	StageSecondResult string `json:"stage_second_result"`
	StageFinalResult  string `json:"stage_final_result"`
	HireStatus        string `json:"hire_status"`

	Stage05Date            *string `json:"stage_0_5_date,omitempty"`
	StageFirstDate         *string `json:"stage_first_date,omitempty"`
	StageFinalDecisionDate *string `json:"stage_final_decision_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobPositionName string `json:"job_position_name,omitempty"`
}

func FromCandidateForClient(c *domain.Candidate) ClientCandidate {
	return ClientCandidate{
		Id:            c.Id,
		CompanyId:     c.CompanyId,
		JobPositionId: c.JobPositionId,
		Name:          c.Name,

		Stage05Result:     c.Stage05Result.String(),
		StageFirstResult:  c.StageFirstResult.String(),
		StageSecondResult: c.StageSecondResult.String(),
		StageFinalResult:  c.StageFinalResult.String(),
		HireStatus:        c.HireStatus.String(),

		Stage05Date:            formatDate(c.Stage05Date),
		StageFirstDate:         formatDate(c.StageFirstDate),
		StageFinalDecisionDate: formatDate(c.StageFinalDecisionDate),

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type ClientInterview struct {
	Id            string `json:"id"`
	CandidateId   string `json:"candidate_id"`
	InterviewDate string `json:"interview_date"`

	OverallCommentExternal string `json:"overall_comment_external,omitempty"`
	WillTextExternal       string `json:"will_text_external,omitempty"`
	AttractTextExternal    string `json:"attract_text_external,omitempty"`

	ClientReportMarkdown string `json:"client_report_markdown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromInterviewForClient(i *domain.Interview) ClientInterview {
	return ClientInterview{
		Id:            i.Id,
		CandidateId:   i.CandidateId,
		InterviewDate: i.InterviewDate.Format(DateLayout),

		OverallCommentExternal: i.OverallCommentExternal,
		WillTextExternal:       i.WillTextExternal,
		AttractTextExternal:    i.AttractTextExternal,

		ClientReportMarkdown: i.ClientReportMarkdown,

		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type ClientInterviewDetail struct {
	Id              string    `json:"id"`
	InterviewId     string    `json:"interview_id"`
	CriteriaItemId  string    `json:"criteria_item_id"`
	ScoreValue      int       `json:"score_value"`
	CommentExternal string    `json:"comment_external,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromInterviewDetailForClient(d *domain.InterviewDetail) ClientInterviewDetail {
	return ClientInterviewDetail{
		Id:              d.Id,
		InterviewId:     d.InterviewId,
		CriteriaItemId:  d.CriteriaItemId,
		ScoreValue:      d.ScoreValue,
		CommentExternal: d.CommentExternal,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type ClientInterviewQuestionResponse struct {
	Id                  string    `json:"id"`
	InterviewId         string    `json:"interview_id"`
	CriteriaItemId      string    `json:"criteria_item_id,omitempty"`
	QuestionText        string    `json:"question_text"`
	AnswerSummary       string    `json:"answer_summary,omitempty"`
	TranscriptReference string    `json:"transcript_reference,omitempty"`
	IsHighlight         bool      `json:"is_highlight"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func FromQuestionForClient(q *domain.InterviewQuestionResponse) ClientInterviewQuestionResponse {
	return ClientInterviewQuestionResponse{
		Id:                  q.Id,
		InterviewId:         q.InterviewId,
		CriteriaItemId:      q.CriteriaItemId,
		QuestionText:        q.QuestionText,
		AnswerSummary:       q.AnswerSummary,
		TranscriptReference: q.TranscriptReference,
		IsHighlight:         q.IsHighlight,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
}

type ClientInterviewWithDetails struct {
	ClientInterview
	Details           []ClientInterviewDetail           `json:"details"`
	QuestionResponses []ClientInterviewQuestionResponse `json:"question_responses"`
}
