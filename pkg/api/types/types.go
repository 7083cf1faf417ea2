// Package types defines the JSON wire representations of the API.
//
// Field names follow the database columns (snake case). Date-only
// fields travel as "YYYY-MM-DD" strings; timestamps as RFC3339.
package types

import (
	"time"

	"github.com/bandq-jp/hirelog/pkg/domain"
)

const DateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate reads a "YYYY-MM-DD" string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

type User struct {
	Id        string    `json:"id"`
	ClerkId   string    `json:"clerk_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CompanyId string    `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromUser(u *domain.User) User {
	return User{
		Id:        u.Id,
		ClerkId:   u.ClerkId,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CompanyId: u.CompanyId,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserCreateRequest struct {
	ClerkId   string `json:"clerk_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyId string `json:"company_id,omitempty"`
}

type UserPatchRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	CompanyId *string `json:"company_id,omitempty"`
}

type Company struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCompany(c *domain.Company) Company {
	return Company{
		Id:   c.Id,
		Name: c.Name,
		Note: c.Note,

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CompanyCreateRequest struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

type CompanyPatchRequest struct {
	Name *string `json:"name,omitempty"`
	Note *string `json:"note,omitempty"`
}

type CompanyInviteRequest struct {
	Email string `json:"email"`
}

type Agent struct {
	Id           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromAgent(a *domain.Agent) Agent {
	return Agent{
		Id:           a.Id,
		CompanyName:  a.CompanyName,
		ContactName:  a.ContactName,
		ContactEmail: a.ContactEmail,
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type AgentCreateRequest struct {
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Note         string `json:"note,omitempty"`
}

type AgentPatchRequest struct {
	CompanyName  *string `json:"company_name,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Note         *string `json:"note,omitempty"`
}

type AgentStats struct {
	AgentId         string  `json:"agent_id"`
	CompanyName     string  `json:"company_name"`
	ContactName     string  `json:"contact_name,omitempty"`
	ReferralCount   int     `json:"referral_count"`
	Stage05PassRate float64 `json:"stage_0_5_pass_rate"`
	FinalOfferRate  float64 `json:"final_offer_rate"`
	MismatchRate    float64 `json:"mismatch_rate"`
}

func FromAgentStats(s *domain.AgentStats) AgentStats {
	return AgentStats{
		AgentId:         s.AgentId,
		CompanyName:     s.CompanyName,
		ContactName:     s.ContactName,
		ReferralCount:   s.ReferralCount,
		Stage05PassRate: s.Stage05PassRate,
		FinalOfferRate:  s.FinalOfferRate,
		MismatchRate:    s.MismatchRate,
	}
}

type JobPosition struct {
	Id          string    `json:"id"`
	CompanyId   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromJobPosition(p *domain.JobPosition) JobPosition {
	return JobPosition{
		Id:          p.Id,
		CompanyId:   p.CompanyId,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type JobPositionCreateRequest struct {
	CompanyId   string `json:"company_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"` // defaults to true
}

type JobPositionPatchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CriteriaGroup struct {
	Id            string    `json:"id"`
	JobPositionId string    `json:"job_position_id"`
	Label         string    `json:"label"`
	Description   string    `json:"description,omitempty"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromCriteriaGroup(g *domain.CriteriaGroup) CriteriaGroup {
	return CriteriaGroup{
		Id:            g.Id,
		JobPositionId: g.JobPositionId,
		Label:         g.Label,
		Description:   g.Description,
		SortOrder:     g.SortOrder,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

type CriteriaItem struct {
	Id                   string    `json:"id"`
	CriteriaGroupId      string    `json:"criteria_group_id"`
	Label                string    `json:"label"`
	Description          string    `json:"description,omitempty"`
	BehaviorExamplesText string    `json:"behavior_examples_text,omitempty"`
	SortOrder            int       `json:"sort_order"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func FromCriteriaItem(i *domain.CriteriaItem) CriteriaItem {
	return CriteriaItem{
		Id:                   i.Id,
		CriteriaGroupId:      i.CriteriaGroupId,
		Label:                i.Label,
		Description:          i.Description,
		BehaviorExamplesText: i.BehaviorExamplesText,
		SortOrder:            i.SortOrder,
		IsActive:             i.IsActive,
		CreatedAt:            i.CreatedAt,
		UpdatedAt:            i.UpdatedAt,
	}
}

type CriteriaGroupWithItems struct {
	CriteriaGroup
	Items []CriteriaItem `json:"items"`
}

type CriteriaGroupCreateRequest struct {
	JobPositionId string `json:"job_position_id"`
	Label         string `json:"label"`
	Description   string `json:"description,omitempty"`
	SortOrder     int    `json:"sort_order"`
}

type CriteriaGroupPatchRequest struct {
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

type CriteriaItemCreateRequest struct {
	CriteriaGroupId      string `json:"criteria_group_id"`
	Label                string `json:"label"`
	Description          string `json:"description,omitempty"`
	BehaviorExamplesText string `json:"behavior_examples_text,omitempty"`
	SortOrder            int    `json:"sort_order"`
	IsActive             *bool  `json:"is_active,omitempty"` // defaults to true
}

type CriteriaItemPatchRequest struct {
	CriteriaGroupId      *string `json:"criteria_group_id,omitempty"`
	Label                *string `json:"label,omitempty"`
	Description          *string `json:"description,omitempty"`
	BehaviorExamplesText *string `json:"behavior_examples_text,omitempty"`
	SortOrder            *int    `json:"sort_order,omitempty"`
	IsActive             *bool   `json:"is_active,omitempty"`
}

type Candidate struct {
	Id            string `json:"id"`
	CompanyId     string `json:"company_id"`
	JobPositionId string `json:"job_position_id"`
	AgentId       string `json:"agent_id,omitempty"`
	Name          string `json:"name"`
	ResumeUrl     string `json:"resume_url,omitempty"`
	OwnerUserId   string `json:"owner_user_id"`
	Note          string `json:"note,omitempty"`

	Stage05Result     string `json:"stage_0_5_result"`
	StageFirstResult  string `json:"stage_first_result"`
	StageSecondResult string `json:"stage_second_result"`
	StageFinalResult  string `json:"stage_final_result"`
	HireStatus        string `json:"hire_status"`
	MismatchFlag      bool   `json:"mismatch_flag"`

	Stage05Date            *string `json:"stage_0_5_date,omitempty"`
	StageFirstDate         *string `json:"stage_first_date,omitempty"`
	StageFinalDecisionDate *string `json:"stage_final_decision_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCandidate(c *domain.Candidate) Candidate {
	return Candidate{
		Id:            c.Id,
		CompanyId:     c.CompanyId,
		JobPositionId: c.JobPositionId,
		AgentId:       c.AgentId,
		Name:          c.Name,
		ResumeUrl:     c.ResumeUrl,
		OwnerUserId:   c.OwnerUserId,
		Note:          c.Note,

		Stage05Result:     c.Stage05Result.String(),
		StageFirstResult:  c.StageFirstResult.String(),
		StageSecondResult: c.StageSecondResult.String(),
		StageFinalResult:  c.StageFinalResult.String(),
		HireStatus:        c.HireStatus.String(),
		MismatchFlag:      c.MismatchFlag,

		Stage05Date:            formatDate(c.Stage05Date),
		StageFirstDate:         formatDate(c.StageFirstDate),
		StageFinalDecisionDate: formatDate(c.StageFinalDecisionDate),

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CandidateWithRelations decorates a candidate with display names
// resolved from its references.
type CandidateWithRelations struct {
	Candidate
	CompanyName      string `json:"company_name,omitempty"`
	JobPositionName  string `json:"job_position_name,omitempty"`
	AgentCompanyName string `json:"agent_company_name,omitempty"`
	AgentContactName string `json:"agent_contact_name,omitempty"`
	OwnerUserName    string `json:"owner_user_name,omitempty"`
}

type CandidateCreateRequest struct {
	CompanyId     string `json:"company_id"`
	JobPositionId string `json:"job_position_id"`
	AgentId       string `json:"agent_id,omitempty"`
	Name          string `json:"name"`
	ResumeUrl     string `json:"resume_url,omitempty"`
	OwnerUserId   string `json:"owner_user_id,omitempty"` // defaults to the caller
	Note          string `json:"note,omitempty"`
}

type CandidatePatchRequest struct {
	JobPositionId *string `json:"job_position_id,omitempty"`
	AgentId       *string `json:"agent_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	ResumeUrl     *string `json:"resume_url,omitempty"`
	OwnerUserId   *string `json:"owner_user_id,omitempty"`
	Note          *string `json:"note,omitempty"`

	Stage05Result     *string `json:"stage_0_5_result,omitempty"`
	StageFirstResult  *string `json:"stage_first_result,omitempty"`
	StageSecondResult *string `json:"stage_second_result,omitempty"`
	StageFinalResult  *string `json:"stage_final_result,omitempty"`
	HireStatus        *string `json:"hire_status,omitempty"`
	MismatchFlag      *bool   `json:"mismatch_flag,omitempty"`

	Stage05Date            *string `json:"stage_0_5_date,omitempty"`
	StageFirstDate         *string `json:"stage_first_date,omitempty"`
	StageFinalDecisionDate *string `json:"stage_final_decision_date,omitempty"`
}

type FunnelStats struct {
	Total            int `json:"total"`
	Stage05Done      int `json:"stage_0_5_done"`
	Stage05Passed    int `json:"stage_0_5_passed"`
	StageFirstDone   int `json:"stage_first_done"`
	StageFirstPassed int `json:"stage_first_passed"`
	StageSecondDone  int `json:"stage_second_done"`
	StageSecondPass  int `json:"stage_second_passed"`
	StageFinalDone   int `json:"stage_final_done"`
	StageFinalOffer  int `json:"stage_final_offer"`
	Hired            int `json:"hired"`
	Mismatch         int `json:"mismatch"`
}

func FromFunnelStats(f *domain.FunnelStats) FunnelStats {
	return FunnelStats{
		Total:            f.Total,
		Stage05Done:      f.Stage05Done,
		Stage05Passed:    f.Stage05Passed,
		StageFirstDone:   f.StageFirstDone,
		StageFirstPassed: f.StageFirstPassed,
		StageSecondDone:  f.StageSecondDone,
		StageSecondPass:  f.StageSecondPass,
		StageFinalDone:   f.StageFinalDone,
		StageFinalOffer:  f.StageFinalOffer,
		Hired:            f.Hired,
		Mismatch:         f.Mismatch,
	}
}

type Interview struct {
	Id            string `json:"id"`
	CandidateId   string `json:"candidate_id"`
	InterviewerId string `json:"interviewer_id"`
	InterviewDate string `json:"interview_date"`

	OverallCommentExternal string `json:"overall_comment_external,omitempty"`
	OverallCommentInternal string `json:"overall_comment_internal,omitempty"`
	WillTextExternal       string `json:"will_text_external,omitempty"`
	WillTextInternal       string `json:"will_text_internal,omitempty"`
	AttractTextExternal    string `json:"attract_text_external,omitempty"`
	AttractTextInternal    string `json:"attract_text_internal,omitempty"`

	TranscriptRawText string `json:"transcript_raw_text,omitempty"`
	TranscriptSource  string `json:"transcript_source,omitempty"`
	TranscriptUrl     string `json:"transcript_url,omitempty"`

	ClientReportMarkdown string `json:"client_report_markdown,omitempty"`
	AgentReportMarkdown  string `json:"agent_report_markdown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromInterview(i *domain.Interview) Interview {
	return Interview{
		Id:            i.Id,
		CandidateId:   i.CandidateId,
		InterviewerId: i.InterviewerId,
		InterviewDate: i.InterviewDate.Format(DateLayout),

		OverallCommentExternal: i.OverallCommentExternal,
		OverallCommentInternal: i.OverallCommentInternal,
		WillTextExternal:       i.WillTextExternal,
		WillTextInternal:       i.WillTextInternal,
		AttractTextExternal:    i.AttractTextExternal,
		AttractTextInternal:    i.AttractTextInternal,

		TranscriptRawText: i.TranscriptRawText,
		TranscriptSource:  i.TranscriptSource,
		TranscriptUrl:     i.TranscriptUrl,

		ClientReportMarkdown: i.ClientReportMarkdown,
		AgentReportMarkdown:  i.AgentReportMarkdown,

		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type InterviewDetail struct {
	Id              string    `json:"id"`
	InterviewId     string    `json:"interview_id"`
	CriteriaItemId  string    `json:"criteria_item_id"`
	ScoreValue      int       `json:"score_value"`
	CommentExternal string    `json:"comment_external,omitempty"`
	CommentInternal string    `json:"comment_internal,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromInterviewDetail(d *domain.InterviewDetail) InterviewDetail {
	return InterviewDetail{
		Id:              d.Id,
		InterviewId:     d.InterviewId,
		CriteriaItemId:  d.CriteriaItemId,
		ScoreValue:      d.ScoreValue,
		CommentExternal: d.CommentExternal,
		CommentInternal: d.CommentInternal,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type InterviewQuestionResponse struct {
	Id                  string    `json:"id"`
	InterviewId         string    `json:"interview_id"`
	CriteriaItemId      string    `json:"criteria_item_id,omitempty"`
	QuestionText        string    `json:"question_text"`
	AnswerSummary       string    `json:"answer_summary,omitempty"`
	HypothesisText      string    `json:"hypothesis_text,omitempty"`
	TranscriptReference string    `json:"transcript_reference,omitempty"`
	IsHighlight         bool      `json:"is_highlight"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func FromInterviewQuestionResponse(q *domain.InterviewQuestionResponse) InterviewQuestionResponse {
	return InterviewQuestionResponse{
		Id:                  q.Id,
		InterviewId:         q.InterviewId,
		CriteriaItemId:      q.CriteriaItemId,
		QuestionText:        q.QuestionText,
		AnswerSummary:       q.AnswerSummary,
		HypothesisText:      q.HypothesisText,
		TranscriptReference: q.TranscriptReference,
		IsHighlight:         q.IsHighlight,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
}

type InterviewWithDetails struct {
	Interview
	Details           []InterviewDetail           `json:"details"`
	QuestionResponses []InterviewQuestionResponse `json:"question_responses"`
}

type InterviewCreateRequest struct {
	CandidateId   string `json:"candidate_id"`
	InterviewerId string `json:"interviewer_id,omitempty"` // defaults to the caller
	InterviewDate string `json:"interview_date"`
}

type InterviewPatchRequest struct {
	InterviewDate          *string `json:"interview_date,omitempty"`
	OverallCommentExternal *string `json:"overall_comment_external,omitempty"`
	OverallCommentInternal *string `json:"overall_comment_internal,omitempty"`
	WillTextExternal       *string `json:"will_text_external,omitempty"`
	WillTextInternal       *string `json:"will_text_internal,omitempty"`
	AttractTextExternal    *string `json:"attract_text_external,omitempty"`
	AttractTextInternal    *string `json:"attract_text_internal,omitempty"`
	TranscriptRawText      *string `json:"transcript_raw_text,omitempty"`
	TranscriptSource       *string `json:"transcript_source,omitempty"`
	TranscriptUrl          *string `json:"transcript_url,omitempty"`
}

type DetailInput struct {
	CriteriaItemId  string `json:"criteria_item_id"`
	ScoreValue      int    `json:"score_value"`
	CommentExternal string `json:"comment_external,omitempty"`
	CommentInternal string `json:"comment_internal,omitempty"`
}

type QuestionCreateRequest struct {
	CriteriaItemId      string `json:"criteria_item_id,omitempty"`
	QuestionText        string `json:"question_text"`
	AnswerSummary       string `json:"answer_summary,omitempty"`
	HypothesisText      string `json:"hypothesis_text,omitempty"`
	TranscriptReference string `json:"transcript_reference,omitempty"`
	IsHighlight         bool   `json:"is_highlight"`
}

type QuestionPatchRequest struct {
	CriteriaItemId      *string `json:"criteria_item_id,omitempty"`
	QuestionText        *string `json:"question_text,omitempty"`
	AnswerSummary       *string `json:"answer_summary,omitempty"`
	HypothesisText      *string `json:"hypothesis_text,omitempty"`
	TranscriptReference *string `json:"transcript_reference,omitempty"`
	IsHighlight         *bool   `json:"is_highlight,omitempty"`
}

type ReportResponse struct {
	Markdown string `json:"markdown"`
}
