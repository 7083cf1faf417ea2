package db

import (
	"context"

	kagent "github.com/bandq-jp/hirelog/pkg/domain/agent/db"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kcriteria "github.com/bandq-jp/hirelog/pkg/domain/criteria/db"
	kinterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
)

// SchemaInterface manages the versioned DDL of the database.
type SchemaInterface interface {
	// Version returns the schema version recorded in the database.
	// 0 means the database is empty.
	Version(ctx context.Context) (int, error)

	// Upgrade applies every schema version newer than the recorded one.
	Upgrade(ctx context.Context) error

	// Context derives a context which is cancelled when the database
	// schema falls behind the schema repository.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}

// HirelogDatabase bundles the row stores behind one connection pool.
type HirelogDatabase interface {
	User() kuser.UserInterface
	Company() kcompany.CompanyInterface
	Agent() kagent.AgentInterface
	JobPosition() kjobposition.JobPositionInterface
	CriteriaGroup() kcriteria.CriteriaGroupInterface
	CriteriaItem() kcriteria.CriteriaItemInterface
	Candidate() kcandidate.CandidateInterface
	Interview() kinterview.InterviewInterface
	Schema() SchemaInterface
	Close() error
}
