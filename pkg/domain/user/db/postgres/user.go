package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/pool"
	"github.com/bandq-jp/hirelog/pkg/domain"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

type userPG struct { // implements db.UserInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *userPG {
	return &userPG{pool: pool}
}

const userColumns = `"id", "clerk_id", "name", "email", "role", coalesce("company_id", ''), "created_at", "updated_at"`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := domain.User{}
	var role string
	if err := row.Scan(
		&u.Id, &u.ClerkId, &u.Name, &u.Email, &role, &u.CompanyId, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	r, err := domain.AsRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = r
	return &u, nil
}

func (u *userPG) Get(ctx context.Context, id string) (*domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanUser(conn.QueryRow(
		ctx,
		`select `+userColumns+` from "app_user" where "id" = $1`,
		id,
	))
}

func (u *userPG) GetByClerkId(ctx context.Context, clerkId string) (*domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return scanUser(conn.QueryRow(
		ctx,
		`select `+userColumns+` from "app_user" where "clerk_id" = $1`,
		clerkId,
	))
}

func (u *userPG) List(ctx context.Context) ([]*domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select `+userColumns+` from "app_user" order by "created_at" desc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (u *userPG) Count(ctx context.Context) (int, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	n := 0
	if err := conn.QueryRow(
		ctx, `select count(*) from "app_user"`,
	).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (u *userPG) Create(ctx context.Context, spec domain.NewUser) (*domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var companyId interface{}
	if spec.CompanyId != "" {
		companyId = spec.CompanyId
	}
	user, err := scanUser(conn.QueryRow(
		ctx,
		`
		insert into "app_user" ("id", "clerk_id", "name", "email", "role", "company_id", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $7, $7)
		returning `+userColumns,
		uuid.NewString(), spec.ClerkId, spec.Name, spec.Email,
		spec.Role.String(), companyId, time.Now().UTC(),
	))
	if err != nil {
		pgErr := new(pgconn.PgError)
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// "clerk_id" is unique.
			return nil, fmt.Errorf("%w: clerk_id %s", domain.ErrConflict, spec.ClerkId)
		}
		return nil, err
	}
	return user, nil
}

func (u *userPG) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	cur, err := u.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}

	var companyId interface{}
	if cid := utils.Default(patch.CompanyId, cur.CompanyId); cid != "" {
		companyId = cid
	}
	return scanUser(conn.QueryRow(
		ctx,
		`
		update "app_user"
		set "name" = $2, "email" = $3, "role" = $4, "company_id" = $5, "updated_at" = $6
		where "id" = $1
		returning `+userColumns,
		id,
		utils.Default(patch.Name, cur.Name),
		utils.Default(patch.Email, cur.Email),
		utils.Default(patch.Role, cur.Role).String(),
		companyId,
		time.Now().UTC(),
	))
}
