package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/pool"
	"github.com/bandq-jp/hirelog/pkg/domain"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

type interviewPG struct { // implements db.InterviewInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *interviewPG {
	return &interviewPG{pool: pool}
}

const interviewColumns = `"id", "candidate_id", "interviewer_id", "interview_date",
	"overall_comment_external", "overall_comment_internal",
	"will_text_external", "will_text_internal",
	"attract_text_external", "attract_text_internal",
	"transcript_raw_text", "transcript_source", "transcript_url",
	"client_report_markdown", "agent_report_markdown",
	"created_at", "updated_at"`

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	i := domain.Interview{}
	if err := row.Scan(
		&i.Id, &i.CandidateId, &i.InterviewerId, &i.InterviewDate,
		&i.OverallCommentExternal, &i.OverallCommentInternal,
		&i.WillTextExternal, &i.WillTextInternal,
		&i.AttractTextExternal, &i.AttractTextInternal,
		&i.TranscriptRawText, &i.TranscriptSource, &i.TranscriptUrl,
		&i.ClientReportMarkdown, &i.AgentReportMarkdown,
		&i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

const detailColumns = `"id", "interview_id", "criteria_item_id", "score_value", "comment_external", "comment_internal", "created_at", "updated_at"`

func scanDetail(row pgx.Row) (*domain.InterviewDetail, error) {
	d := domain.InterviewDetail{}
	if err := row.Scan(
		&d.Id, &d.InterviewId, &d.CriteriaItemId, &d.ScoreValue,
		&d.CommentExternal, &d.CommentInternal, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

const questionColumns = `"id", "interview_id", coalesce("criteria_item_id", ''), "question_text", "answer_summary",
	"hypothesis_text", "transcript_reference", "is_highlight", "created_at", "updated_at"`

func scanQuestion(row pgx.Row) (*domain.InterviewQuestionResponse, error) {
	q := domain.InterviewQuestionResponse{}
	if err := row.Scan(
		&q.Id, &q.InterviewId, &q.CriteriaItemId, &q.QuestionText, &q.AnswerSummary,
		&q.HypothesisText, &q.TranscriptReference, &q.IsHighlight, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// qualify prefixes each column of a comma separated list with a table alias.
func qualify(alias string, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = `"` + alias + `".` + p
	}
	return strings.Join(parts, ", ")
}

func (i *interviewPG) Get(ctx context.Context, id string) (*domain.Interview, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanInterview(conn.QueryRow(
		ctx,
		`select `+interviewColumns+` from "interview" where "id" = $1`,
		id,
	))
}

func (i *interviewPG) GetByCandidate(ctx context.Context, candidateId string) (*domain.Interview, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanInterview(conn.QueryRow(
		ctx,
		`select `+interviewColumns+` from "interview" where "candidate_id" = $1`,
		candidateId,
	))
}

func (i *interviewPG) Create(ctx context.Context, spec domain.NewInterview) (*domain.Interview, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	interview, err := scanInterview(conn.QueryRow(
		ctx,
		`
		insert into "interview" ("id", "candidate_id", "interviewer_id", "interview_date", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $5)
		returning `+interviewColumns,
		uuid.NewString(), spec.CandidateId, spec.InterviewerId,
		spec.InterviewDate, time.Now().UTC(),
	))
	if err != nil {
		pgErr := new(pgconn.PgError)
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// "candidate_id" is unique; a candidate has at most one interview.
			return nil, fmt.Errorf("%w: interview for candidate %s", domain.ErrConflict, spec.CandidateId)
		}
		return nil, err
	}
	return interview, nil
}

func (i *interviewPG) Update(ctx context.Context, id string, patch domain.InterviewPatch) (*domain.Interview, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := i.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	return scanInterview(conn.QueryRow(
		ctx,
		`
		update "interview"
		set "interview_date" = $2,
			"overall_comment_external" = $3, "overall_comment_internal" = $4,
			"will_text_external" = $5, "will_text_internal" = $6,
			"attract_text_external" = $7, "attract_text_internal" = $8,
			"transcript_raw_text" = $9, "transcript_source" = $10, "transcript_url" = $11,
			"client_report_markdown" = $12, "agent_report_markdown" = $13,
			"updated_at" = $14
		where "id" = $1
		returning `+interviewColumns,
		id,
		utils.Default(patch.InterviewDate, cur.InterviewDate),
		utils.Default(patch.OverallCommentExternal, cur.OverallCommentExternal),
		utils.Default(patch.OverallCommentInternal, cur.OverallCommentInternal),
		utils.Default(patch.WillTextExternal, cur.WillTextExternal),
		utils.Default(patch.WillTextInternal, cur.WillTextInternal),
		utils.Default(patch.AttractTextExternal, cur.AttractTextExternal),
		utils.Default(patch.AttractTextInternal, cur.AttractTextInternal),
		utils.Default(patch.TranscriptRawText, cur.TranscriptRawText),
		utils.Default(patch.TranscriptSource, cur.TranscriptSource),
		utils.Default(patch.TranscriptUrl, cur.TranscriptUrl),
		utils.Default(patch.ClientReportMarkdown, cur.ClientReportMarkdown),
		utils.Default(patch.AgentReportMarkdown, cur.AgentReportMarkdown),
		time.Now().UTC(),
	))
}

func (i *interviewPG) SaveDetails(ctx context.Context, interviewId string, inputs []domain.DetailInput) ([]*domain.InterviewDetail, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saved := []*domain.InterviewDetail{}
	for _, input := range inputs {
		det, err := scanDetail(tx.QueryRow(
			ctx,
			`
			insert into "interview_detail"
				("id", "interview_id", "criteria_item_id", "score_value", "comment_external", "comment_internal", "created_at", "updated_at")
			values ($1, $2, $3, $4, $5, $6, $7, $7)
			on conflict ("interview_id", "criteria_item_id") do update
				set "score_value" = excluded."score_value",
					"comment_external" = excluded."comment_external",
					"comment_internal" = excluded."comment_internal",
					"updated_at" = excluded."updated_at"
			returning `+detailColumns,
			uuid.NewString(), interviewId, input.CriteriaItemId, input.ScoreValue,
			input.CommentExternal, input.CommentInternal, time.Now().UTC(),
		))
		if err != nil {
			return nil, err
		}
		saved = append(saved, det)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (i *interviewPG) ListDetails(ctx context.Context, interviewId string) ([]*domain.InterviewDetail, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+qualify("d", detailColumns)+`
		from "interview_detail" as "d"
		inner join "criteria_item" as "i" on "i"."id" = "d"."criteria_item_id"
		inner join "criteria_group" as "g" on "g"."id" = "i"."criteria_group_id"
		where "d"."interview_id" = $1
		order by "g"."sort_order", "g"."created_at", "i"."sort_order", "i"."created_at"
		`,
		interviewId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []*domain.InterviewDetail{}
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, det)
	}
	return details, nil
}

func (i *interviewPG) AddQuestion(ctx context.Context, interviewId string, input domain.QuestionInput) (*domain.InterviewQuestionResponse, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanQuestion(conn.QueryRow(
		ctx,
		`
		insert into "interview_question_response"
			("id", "interview_id", "criteria_item_id", "question_text", "answer_summary",
			 "hypothesis_text", "transcript_reference", "is_highlight", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		returning `+questionColumns,
		uuid.NewString(), interviewId, nullable(input.CriteriaItemId),
		input.QuestionText, input.AnswerSummary, input.HypothesisText,
		input.TranscriptReference, input.IsHighlight, time.Now().UTC(),
	))
}

func (i *interviewPG) UpdateQuestion(ctx context.Context, questionId string, patch domain.QuestionPatch) (*domain.InterviewQuestionResponse, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := scanQuestion(conn.QueryRow(
		ctx,
		`select `+questionColumns+` from "interview_question_response" where "id" = $1`,
		questionId,
	))
	if err != nil || cur == nil {
		return nil, err
	}

	return scanQuestion(conn.QueryRow(
		ctx,
		`
		update "interview_question_response"
		set "criteria_item_id" = $2, "question_text" = $3, "answer_summary" = $4,
			"hypothesis_text" = $5, "transcript_reference" = $6, "is_highlight" = $7,
			"updated_at" = $8
		where "id" = $1
		returning `+questionColumns,
		questionId,
		nullable(utils.Default(patch.CriteriaItemId, cur.CriteriaItemId)),
		utils.Default(patch.QuestionText, cur.QuestionText),
		utils.Default(patch.AnswerSummary, cur.AnswerSummary),
		utils.Default(patch.HypothesisText, cur.HypothesisText),
		utils.Default(patch.TranscriptReference, cur.TranscriptReference),
		utils.Default(patch.IsHighlight, cur.IsHighlight),
		time.Now().UTC(),
	))
}

func (i *interviewPG) DeleteQuestion(ctx context.Context, questionId string) (bool, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`delete from "interview_question_response" where "id" = $1`,
		questionId,
	)
	if err != nil {
		return false, err
	}
	return 0 < tag.RowsAffected(), nil
}

func (i *interviewPG) ListQuestions(ctx context.Context, interviewId string) ([]*domain.InterviewQuestionResponse, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+questionColumns+` from "interview_question_response"
		where "interview_id" = $1
		order by "created_at"
		`,
		interviewId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []*domain.InterviewQuestionResponse{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}
