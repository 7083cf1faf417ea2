package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/pool"
	kpgschema "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/schema"
	kagent "github.com/bandq-jp/hirelog/pkg/domain/agent/db"
	kpgagent "github.com/bandq-jp/hirelog/pkg/domain/agent/db/postgres"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kpgcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db/postgres"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kpgcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db/postgres"
	kcriteria "github.com/bandq-jp/hirelog/pkg/domain/criteria/db"
	kpgcriteria "github.com/bandq-jp/hirelog/pkg/domain/criteria/db/postgres"
	dbInterface "github.com/bandq-jp/hirelog/pkg/domain/hirelog/db"
	kinterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
	kpginterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db/postgres"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	kpgjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db/postgres"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
	kpguser "github.com/bandq-jp/hirelog/pkg/domain/user/db/postgres"
	xe "github.com/bandq-jp/hirelog/pkg/errors"
)

type hirelogDBPostgres struct {
	pool          *pgxpool.Pool
	user          kuser.UserInterface
	company       kcompany.CompanyInterface
	agent         kagent.AgentInterface
	jobPosition   kjobposition.JobPositionInterface
	criteriaGroup kcriteria.CriteriaGroupInterface
	criteriaItem  kcriteria.CriteriaItemInterface
	candidate     kcandidate.CandidateInterface
	interview     kinterview.InterviewInterface
	schema        dbInterface.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

// WithSchemaRepository points the database at a directory of versioned
// DDL. Without it, Schema() is a null manager which cannot upgrade.
func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(ctx context.Context, url string, options ...Option) (dbInterface.HirelogDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := &Config{}
	for _, option := range options {
		c = option(c)
	}

	p := kpool.Wrap(pool)
	var schema dbInterface.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &hirelogDBPostgres{
		pool:          pool,
		user:          kpguser.New(p),
		company:       kpgcompany.New(p),
		agent:         kpgagent.New(p),
		jobPosition:   kpgjobposition.New(p),
		criteriaGroup: kpgcriteria.NewGroup(p),
		criteriaItem:  kpgcriteria.NewItem(p),
		candidate:     kpgcandidate.New(p),
		interview:     kpginterview.New(p),
		schema:        schema,
	}, nil
}

func (h *hirelogDBPostgres) User() kuser.UserInterface {
	return h.user
}

func (h *hirelogDBPostgres) Company() kcompany.CompanyInterface {
	return h.company
}

func (h *hirelogDBPostgres) Agent() kagent.AgentInterface {
	return h.agent
}

func (h *hirelogDBPostgres) JobPosition() kjobposition.JobPositionInterface {
	return h.jobPosition
}

func (h *hirelogDBPostgres) CriteriaGroup() kcriteria.CriteriaGroupInterface {
	return h.criteriaGroup
}

func (h *hirelogDBPostgres) CriteriaItem() kcriteria.CriteriaItemInterface {
	return h.criteriaItem
}

func (h *hirelogDBPostgres) Candidate() kcandidate.CandidateInterface {
	return h.candidate
}

func (h *hirelogDBPostgres) Interview() kinterview.InterviewInterface {
	return h.interview
}

func (h *hirelogDBPostgres) Schema() dbInterface.SchemaInterface {
	return h.schema
}

func (h *hirelogDBPostgres) Close() error {
	h.pool.Close()
	return nil
}
