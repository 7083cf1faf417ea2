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

type companyPG struct { // implements db.CompanyInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *companyPG {
	return &companyPG{pool: pool}
}

func (c *companyPG) Get(ctx context.Context, id string) (*domain.Company, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	com := domain.Company{}
	if err := conn.QueryRow(
		ctx,
		`
		select "id", "name", "note", "created_at", "updated_at", "deleted_flag"
		from "company"
		where "id" = $1 and not "deleted_flag"
		`,
		id,
	).Scan(
		&com.Id, &com.Name, &com.Note, &com.CreatedAt, &com.UpdatedAt, &com.DeletedFlag,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &com, nil
}

func (c *companyPG) List(ctx context.Context) ([]*domain.Company, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "id", "name", "note", "created_at", "updated_at", "deleted_flag"
		from "company"
		where not "deleted_flag"
		order by "created_at" desc
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []*domain.Company{}
	for rows.Next() {
		com := domain.Company{}
		if err := rows.Scan(
			&com.Id, &com.Name, &com.Note, &com.CreatedAt, &com.UpdatedAt, &com.DeletedFlag,
		); err != nil {
			return nil, err
		}
		companies = append(companies, &com)
	}
	return companies, nil
}

func (c *companyPG) Create(ctx context.Context, spec domain.NewCompany) (*domain.Company, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	com := domain.Company{}
	if err := conn.QueryRow(
		ctx,
		`
		insert into "company" ("id", "name", "note", "created_at", "updated_at")
		values ($1, $2, $3, $4, $4)
		returning "id", "name", "note", "created_at", "updated_at", "deleted_flag"
		`,
		uuid.NewString(), spec.Name, spec.Note, time.Now().UTC(),
	).Scan(
		&com.Id, &com.Name, &com.Note, &com.CreatedAt, &com.UpdatedAt, &com.DeletedFlag,
	); err != nil {
		return nil, err
	}
	return &com, nil
}

func (c *companyPG) Update(ctx context.Context, id string, patch domain.CompanyPatch) (*domain.Company, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := c.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	com := domain.Company{}
	if err := conn.QueryRow(
		ctx,
		`
		update "company"
		set "name" = $2, "note" = $3, "updated_at" = $4
		where "id" = $1 and not "deleted_flag"
		returning "id", "name", "note", "created_at", "updated_at", "deleted_flag"
		`,
		id,
		utils.Default(patch.Name, cur.Name),
		utils.Default(patch.Note, cur.Note),
		time.Now().UTC(),
	).Scan(
		&com.Id, &com.Name, &com.Note, &com.CreatedAt, &com.UpdatedAt, &com.DeletedFlag,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &com, nil
}

func (c *companyPG) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "company" set "deleted_flag" = true, "updated_at" = $2
		where "id" = $1 and not "deleted_flag"
		`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	return 0 < tag.RowsAffected(), nil
}
