package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	kpool "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/pool"
	"github.com/bandq-jp/hirelog/pkg/domain"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

type criteriaGroupPG struct { // implements db.CriteriaGroupInterface
	pool kpool.Pool
}

func NewGroup(pool kpool.Pool) *criteriaGroupPG {
	return &criteriaGroupPG{pool: pool}
}

const groupColumns = `"id", "job_position_id", "label", "description", "sort_order", "created_at", "updated_at", "deleted_flag"`

func scanGroup(row pgx.Row) (*domain.CriteriaGroup, error) {
	g := domain.CriteriaGroup{}
	if err := row.Scan(
		&g.Id, &g.JobPositionId, &g.Label, &g.Description, &g.SortOrder,
		&g.CreatedAt, &g.UpdatedAt, &g.DeletedFlag,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (c *criteriaGroupPG) Get(ctx context.Context, id string) (*domain.CriteriaGroup, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanGroup(conn.QueryRow(
		ctx,
		`select `+groupColumns+` from "criteria_group" where "id" = $1 and not "deleted_flag"`,
		id,
	))
}

func (c *criteriaGroupPG) ListByPosition(ctx context.Context, jobPositionId string) ([]*domain.CriteriaGroup, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+groupColumns+` from "criteria_group"
		where "job_position_id" = $1 and not "deleted_flag"
		order by "sort_order", "created_at"
		`,
		jobPositionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*domain.CriteriaGroup{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (c *criteriaGroupPG) Create(ctx context.Context, spec domain.NewCriteriaGroup) (*domain.CriteriaGroup, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanGroup(conn.QueryRow(
		ctx,
		`
		insert into "criteria_group" ("id", "job_position_id", "label", "description", "sort_order", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $6)
		returning `+groupColumns,
		uuid.NewString(), spec.JobPositionId, spec.Label, spec.Description,
		spec.SortOrder, time.Now().UTC(),
	))
}

func (c *criteriaGroupPG) Update(ctx context.Context, id string, patch domain.CriteriaGroupPatch) (*domain.CriteriaGroup, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := c.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	return scanGroup(conn.QueryRow(
		ctx,
		`
		update "criteria_group"
		set "label" = $2, "description" = $3, "sort_order" = $4, "updated_at" = $5
		where "id" = $1 and not "deleted_flag"
		returning `+groupColumns,
		id,
		utils.Default(patch.Label, cur.Label),
		utils.Default(patch.Description, cur.Description),
		utils.Default(patch.SortOrder, cur.SortOrder),
		time.Now().UTC(),
	))
}

func (c *criteriaGroupPG) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "criteria_group" set "deleted_flag" = true, "updated_at" = $2
		where "id" = $1 and not "deleted_flag"
		`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	return 0 < tag.RowsAffected(), nil
}

type criteriaItemPG struct { // implements db.CriteriaItemInterface
	pool kpool.Pool
}

func NewItem(pool kpool.Pool) *criteriaItemPG {
	return &criteriaItemPG{pool: pool}
}

const itemColumns = `"id", "criteria_group_id", "label", "description", "behavior_examples_text", "sort_order", "is_active", "created_at", "updated_at"`

// qualify prefixes each column of a comma separated list with a table alias.
func qualify(alias string, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = `"` + alias + `".` + p
	}
	return strings.Join(parts, ", ")
}

func scanItem(row pgx.Row) (*domain.CriteriaItem, error) {
	i := domain.CriteriaItem{}
	if err := row.Scan(
		&i.Id, &i.CriteriaGroupId, &i.Label, &i.Description, &i.BehaviorExamplesText,
		&i.SortOrder, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (c *criteriaItemPG) Get(ctx context.Context, id string) (*domain.CriteriaItem, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanItem(conn.QueryRow(
		ctx,
		`select `+itemColumns+` from "criteria_item" where "id" = $1`,
		id,
	))
}

func (c *criteriaItemPG) ListByGroup(ctx context.Context, criteriaGroupId string) ([]*domain.CriteriaItem, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+itemColumns+` from "criteria_item"
		where "criteria_group_id" = $1
		order by "sort_order", "created_at"
		`,
		criteriaGroupId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.CriteriaItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *criteriaItemPG) ListByPosition(ctx context.Context, jobPositionId string) ([]*domain.CriteriaItem, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+qualify("i", itemColumns)+`
		from "criteria_item" as "i"
		inner join "criteria_group" as "g" on "g"."id" = "i"."criteria_group_id"
		where "g"."job_position_id" = $1 and not "g"."deleted_flag"
		order by "g"."sort_order", "g"."created_at", "i"."sort_order", "i"."created_at"
		`,
		jobPositionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.CriteriaItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *criteriaItemPG) Create(ctx context.Context, spec domain.NewCriteriaItem) (*domain.CriteriaItem, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanItem(conn.QueryRow(
		ctx,
		`
		insert into "criteria_item"
			("id", "criteria_group_id", "label", "description", "behavior_examples_text", "sort_order", "is_active", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		returning `+itemColumns,
		uuid.NewString(), spec.CriteriaGroupId, spec.Label, spec.Description,
		spec.BehaviorExamplesText, spec.SortOrder, spec.IsActive, time.Now().UTC(),
	))
}

func (c *criteriaItemPG) Update(ctx context.Context, id string, patch domain.CriteriaItemPatch) (*domain.CriteriaItem, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := c.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	return scanItem(conn.QueryRow(
		ctx,
		`
		update "criteria_item"
		set "criteria_group_id" = $2, "label" = $3, "description" = $4,
			"behavior_examples_text" = $5, "sort_order" = $6, "is_active" = $7, "updated_at" = $8
		where "id" = $1
		returning `+itemColumns,
		id,
		utils.Default(patch.CriteriaGroupId, cur.CriteriaGroupId),
		utils.Default(patch.Label, cur.Label),
		utils.Default(patch.Description, cur.Description),
		utils.Default(patch.BehaviorExamplesText, cur.BehaviorExamplesText),
		utils.Default(patch.SortOrder, cur.SortOrder),
		utils.Default(patch.IsActive, cur.IsActive),
		time.Now().UTC(),
	))
}
