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

type jobPositionPG struct { // implements db.JobPositionInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *jobPositionPG {
	return &jobPositionPG{pool: pool}
}

const positionColumns = `"id", "company_id", "name", "description", "is_active", "created_at", "updated_at"`

func scanPosition(row pgx.Row) (*domain.JobPosition, error) {
	p := domain.JobPosition{}
	if err := row.Scan(
		&p.Id, &p.CompanyId, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (j *jobPositionPG) Get(ctx context.Context, id string) (*domain.JobPosition, error) {
	conn, err := j.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanPosition(conn.QueryRow(
		ctx,
		`select `+positionColumns+` from "job_position" where "id" = $1`,
		id,
	))
}

func (j *jobPositionPG) List(ctx context.Context, companyId string) ([]*domain.JobPosition, error) {
	conn, err := j.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query := `select ` + positionColumns + ` from "job_position"`
	args := []interface{}{}
	if companyId != "" {
		query += ` where "company_id" = $1`
		args = append(args, companyId)
	}
	query += ` order by "created_at" desc`

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := []*domain.JobPosition{}
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (j *jobPositionPG) Create(ctx context.Context, spec domain.NewJobPosition) (*domain.JobPosition, error) {
	conn, err := j.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanPosition(conn.QueryRow(
		ctx,
		`
		insert into "job_position" ("id", "company_id", "name", "description", "is_active", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $6)
		returning `+positionColumns,
		uuid.NewString(), spec.CompanyId, spec.Name, spec.Description,
		spec.IsActive, time.Now().UTC(),
	))
}

func (j *jobPositionPG) Update(ctx context.Context, id string, patch domain.JobPositionPatch) (*domain.JobPosition, error) {
	conn, err := j.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := j.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	return scanPosition(conn.QueryRow(
		ctx,
		`
		update "job_position"
		set "name" = $2, "description" = $3, "is_active" = $4, "updated_at" = $5
		where "id" = $1
		returning `+positionColumns,
		id,
		utils.Default(patch.Name, cur.Name),
		utils.Default(patch.Description, cur.Description),
		utils.Default(patch.IsActive, cur.IsActive),
		time.Now().UTC(),
	))
}
