package domain

import "time"

// Interview is the 0.5次 (pre-screening) interview of one candidate.
// At most one interview exists per candidate.
//
// Narrative fields come in external/internal pairs: the external text may be
// shown to client-company users, the internal one is staff-only and must
// never cross the client boundary.
type Interview struct {
	Id            string
	CandidateId   string
	InterviewerId string
	InterviewDate time.Time

	OverallCommentExternal string
	OverallCommentInternal string
	WillTextExternal       string
	WillTextInternal       string
	AttractTextExternal    string
	AttractTextInternal    string

	TranscriptRawText string
	TranscriptSource  string
	TranscriptUrl     string

	// cached renderings, refreshed whenever a report is generated
	ClientReportMarkdown string
	AgentReportMarkdown  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Interview) Equal(other *Interview) bool {
	if (i == nil) || (other == nil) {
		return (i == nil) && (other == nil)
	}
	return i.Id == other.Id &&
		i.CandidateId == other.CandidateId &&
		i.InterviewerId == other.InterviewerId &&
		i.InterviewDate.Equal(other.InterviewDate) &&
		i.OverallCommentExternal == other.OverallCommentExternal &&
		i.OverallCommentInternal == other.OverallCommentInternal &&
		i.WillTextExternal == other.WillTextExternal &&
		i.WillTextInternal == other.WillTextInternal &&
		i.AttractTextExternal == other.AttractTextExternal &&
		i.AttractTextInternal == other.AttractTextInternal
}

type InterviewPatch struct {
	InterviewDate          *time.Time
	OverallCommentExternal *string
	OverallCommentInternal *string
	WillTextExternal       *string
	WillTextInternal       *string
	AttractTextExternal    *string
	AttractTextInternal    *string
	TranscriptRawText      *string
	TranscriptSource       *string
	TranscriptUrl          *string
	ClientReportMarkdown   *string
	AgentReportMarkdown    *string
}

// InterviewDetail is the scored result for one (interview, criteria item)
// pair. The pair is unique: saving details again for the same item updates
// the existing row.
type InterviewDetail struct {
	Id              string
	InterviewId     string
	CriteriaItemId  string
	ScoreValue      int
	CommentExternal string
	CommentInternal string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (d *InterviewDetail) Equal(other *InterviewDetail) bool {
	if (d == nil) || (other == nil) {
		return (d == nil) && (other == nil)
	}
	return d.Id == other.Id &&
		d.InterviewId == other.InterviewId &&
		d.CriteriaItemId == other.CriteriaItemId &&
		d.ScoreValue == other.ScoreValue &&
		d.CommentExternal == other.CommentExternal &&
		d.CommentInternal == other.CommentInternal
}

// DetailInput is one entry of a bulk detail save.
type DetailInput struct {
	CriteriaItemId  string
	ScoreValue      int
	CommentExternal string
	CommentInternal string
}

// InterviewQuestionResponse is a question/answer record taken during the
// interview. IsHighlight selects the records disclosed to clients;
// HypothesisText is staff-only.
type InterviewQuestionResponse struct {
	Id                  string
	InterviewId         string
	CriteriaItemId      string // optional cross-reference
	QuestionText        string
	AnswerSummary       string
	HypothesisText      string
	TranscriptReference string
	IsHighlight         bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (q *InterviewQuestionResponse) Equal(other *InterviewQuestionResponse) bool {
	if (q == nil) || (other == nil) {
		return (q == nil) && (other == nil)
	}
	return q.Id == other.Id &&
		q.InterviewId == other.InterviewId &&
		q.CriteriaItemId == other.CriteriaItemId &&
		q.QuestionText == other.QuestionText &&
		q.AnswerSummary == other.AnswerSummary &&
		q.HypothesisText == other.HypothesisText &&
		q.TranscriptReference == other.TranscriptReference &&
		q.IsHighlight == other.IsHighlight
}

type QuestionInput struct {
	CriteriaItemId      string
	QuestionText        string
	AnswerSummary       string
	HypothesisText      string
	TranscriptReference string
	IsHighlight         bool
}

type QuestionPatch struct {
	CriteriaItemId      *string
	QuestionText        *string
	AnswerSummary       *string
	HypothesisText      *string
	TranscriptReference *string
	IsHighlight         *bool
}

type NewInterview struct {
	CandidateId   string
	InterviewerId string
	InterviewDate time.Time
}
