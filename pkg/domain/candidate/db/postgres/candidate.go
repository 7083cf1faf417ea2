package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	kpool "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/pool"
	"github.com/bandq-jp/hirelog/pkg/domain"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

type candidatePG struct { // implements db.CandidateInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *candidatePG {
	return &candidatePG{pool: pool}
}

const candidateColumns = `"id", "company_id", "job_position_id", coalesce("agent_id", ''), "name", "resume_url", "owner_user_id", "note",
	"stage_0_5_result", "stage_first_result", "stage_second_result", "stage_final_result", "hire_status", "mismatch_flag",
	"stage_0_5_date", "stage_first_date", "stage_final_decision_date",
	"created_at", "updated_at", "deleted_flag"`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	c := domain.Candidate{}
	var stage05, first, second, final, hire string
	if err := row.Scan(
		&c.Id, &c.CompanyId, &c.JobPositionId, &c.AgentId, &c.Name, &c.ResumeUrl, &c.OwnerUserId, &c.Note,
		&stage05, &first, &second, &final, &hire, &c.MismatchFlag,
		&c.Stage05Date, &c.StageFirstDate, &c.StageFinalDecisionDate,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedFlag,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if c.Stage05Result, err = domain.AsStageResult(stage05); err != nil {
		return nil, err
	}
	if c.StageFirstResult, err = domain.AsStageResult(first); err != nil {
		return nil, err
	}
	if c.StageSecondResult, err = domain.AsStageResult(second); err != nil {
		return nil, err
	}
	if c.StageFinalResult, err = domain.AsFinalStageResult(final); err != nil {
		return nil, err
	}
	if c.HireStatus, err = domain.AsHireStatus(hire); err != nil {
		return nil, err
	}
	return &c, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (c *candidatePG) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanCandidate(conn.QueryRow(
		ctx,
		`select `+candidateColumns+` from "candidate" where "id" = $1 and not "deleted_flag"`,
		id,
	))
}

func (c *candidatePG) List(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Candidate, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+candidateColumns+` from "candidate"
		where not "deleted_flag"
			and ($1 = '' or "company_id" = $1)
			and ($2 = '' or "job_position_id" = $2)
			and ($3 = '' or "agent_id" = $3)
			and ($4 = '' or "owner_user_id" = $4)
		order by "created_at" desc
		`,
		filter.CompanyId, filter.JobPositionId, filter.AgentId, filter.OwnerUserId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []*domain.Candidate{}
	for rows.Next() {
		cand, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

func (c *candidatePG) Create(ctx context.Context, spec domain.NewCandidate) (*domain.Candidate, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanCandidate(conn.QueryRow(
		ctx,
		`
		insert into "candidate"
			("id", "company_id", "job_position_id", "agent_id", "name", "resume_url", "owner_user_id", "note",
			 "stage_0_5_result", "stage_first_result", "stage_second_result", "stage_final_result", "hire_status",
			 "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, $9, $9, $10, $11, $11)
		returning `+candidateColumns,
		uuid.NewString(), spec.CompanyId, spec.JobPositionId, nullable(spec.AgentId),
		spec.Name, spec.ResumeUrl, spec.OwnerUserId, spec.Note,
		domain.StageNotDone.String(), domain.HireUndecided.String(), time.Now().UTC(),
	))
}

func (c *candidatePG) Update(ctx context.Context, id string, patch domain.CandidatePatch) (*domain.Candidate, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := c.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	stage05Date := cur.Stage05Date
	if patch.Stage05Date != nil {
		stage05Date = patch.Stage05Date
	}
	stageFirstDate := cur.StageFirstDate
	if patch.StageFirstDate != nil {
		stageFirstDate = patch.StageFirstDate
	}
	stageFinalDecisionDate := cur.StageFinalDecisionDate
	if patch.StageFinalDecisionDate != nil {
		stageFinalDecisionDate = patch.StageFinalDecisionDate
	}

	return scanCandidate(conn.QueryRow(
		ctx,
		`
		update "candidate"
		set "company_id" = $2, "job_position_id" = $3, "agent_id" = $4, "name" = $5,
			"resume_url" = $6, "owner_user_id" = $7, "note" = $8,
			"stage_0_5_result" = $9, "stage_first_result" = $10, "stage_second_result" = $11,
			"stage_final_result" = $12, "hire_status" = $13, "mismatch_flag" = $14,
			"stage_0_5_date" = $15, "stage_first_date" = $16, "stage_final_decision_date" = $17,
			"updated_at" = $18
		where "id" = $1 and not "deleted_flag"
		returning `+candidateColumns,
		id,
		utils.Default(patch.CompanyId, cur.CompanyId),
		utils.Default(patch.JobPositionId, cur.JobPositionId),
		nullable(utils.Default(patch.AgentId, cur.AgentId)),
		utils.Default(patch.Name, cur.Name),
		utils.Default(patch.ResumeUrl, cur.ResumeUrl),
		utils.Default(patch.OwnerUserId, cur.OwnerUserId),
		utils.Default(patch.Note, cur.Note),
		utils.Default(patch.Stage05Result, cur.Stage05Result).String(),
		utils.Default(patch.StageFirstResult, cur.StageFirstResult).String(),
		utils.Default(patch.StageSecondResult, cur.StageSecondResult).String(),
		utils.Default(patch.StageFinalResult, cur.StageFinalResult).String(),
		utils.Default(patch.HireStatus, cur.HireStatus).String(),
		utils.Default(patch.MismatchFlag, cur.MismatchFlag),
		stage05Date, stageFirstDate, stageFinalDecisionDate,
		time.Now().UTC(),
	))
}

func (c *candidatePG) Funnel(ctx context.Context, companyId string) (*domain.FunnelStats, error) {
	candidates, err := c.List(ctx, domain.CandidateFilter{CompanyId: companyId})
	if err != nil {
		return nil, err
	}

	stats := domain.FunnelStats{}
	for _, cand := range candidates {
		stats.CountCandidate(cand)
	}
	return &stats, nil
}

func (c *candidatePG) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "candidate" set "deleted_flag" = true, "updated_at" = $2
		where "id" = $1 and not "deleted_flag"
		`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	return 0 < tag.RowsAffected(), nil
}
