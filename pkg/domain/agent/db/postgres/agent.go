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

type agentPG struct { // implements db.AgentInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *agentPG {
	return &agentPG{pool: pool}
}

const agentColumns = `"id", "company_name", "contact_name", "contact_email", "note", "created_at", "updated_at", "deleted_flag"`

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	a := domain.Agent{}
	if err := row.Scan(
		&a.Id, &a.CompanyName, &a.ContactName, &a.ContactEmail, &a.Note,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedFlag,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (a *agentPG) Get(ctx context.Context, id string) (*domain.Agent, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanAgent(conn.QueryRow(
		ctx,
		`select `+agentColumns+` from "agent" where "id" = $1 and not "deleted_flag"`,
		id,
	))
}

func (a *agentPG) List(ctx context.Context) ([]*domain.Agent, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select `+agentColumns+` from "agent" where not "deleted_flag" order by "created_at" desc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := []*domain.Agent{}
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

func (a *agentPG) Create(ctx context.Context, spec domain.NewAgent) (*domain.Agent, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanAgent(conn.QueryRow(
		ctx,
		`
		insert into "agent" ("id", "company_name", "contact_name", "contact_email", "note", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $6)
		returning `+agentColumns,
		uuid.NewString(), spec.CompanyName, spec.ContactName, spec.ContactEmail,
		spec.Note, time.Now().UTC(),
	))
}

func (a *agentPG) Update(ctx context.Context, id string, patch domain.AgentPatch) (*domain.Agent, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := a.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	return scanAgent(conn.QueryRow(
		ctx,
		`
		update "agent"
		set "company_name" = $2, "contact_name" = $3, "contact_email" = $4, "note" = $5, "updated_at" = $6
		where "id" = $1 and not "deleted_flag"
		returning `+agentColumns,
		id,
		utils.Default(patch.CompanyName, cur.CompanyName),
		utils.Default(patch.ContactName, cur.ContactName),
		utils.Default(patch.ContactEmail, cur.ContactEmail),
		utils.Default(patch.Note, cur.Note),
		time.Now().UTC(),
	))
}

func (a *agentPG) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "agent" set "deleted_flag" = true, "updated_at" = $2
		where "id" = $1 and not "deleted_flag"
		`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	return 0 < tag.RowsAffected(), nil
}
