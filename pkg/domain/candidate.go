package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownStageResult = errors.New("unknown stage result")
	ErrUnknownHireStatus  = errors.New("unknown hire status")
)

// StageResult is the outcome of the early funnel stages (0.5次/一次/二次).
type StageResult string

const (
	StageNotDone  StageResult = "not_done"
	StagePassed   StageResult = "passed"
	StageRejected StageResult = "rejected"
)

func (s StageResult) String() string {
	return string(s)
}

func AsStageResult(s string) (StageResult, error) {
	switch StageResult(s) {
	case StageNotDone, StagePassed, StageRejected:
		return StageResult(s), nil
	default:
		return StageResult(s), fmt.Errorf("%w: %s", ErrUnknownStageResult, s)
	}
}

// FinalStageResult is the outcome of the final stage, where "offer" replaces
// "passed" and a candidate may decline.
type FinalStageResult string

const (
	FinalNotDone  FinalStageResult = "not_done"
	FinalOffer    FinalStageResult = "offer"
	FinalRejected FinalStageResult = "rejected"
	FinalDeclined FinalStageResult = "declined"
)

func (s FinalStageResult) String() string {
	return string(s)
}

func AsFinalStageResult(s string) (FinalStageResult, error) {
	switch FinalStageResult(s) {
	case FinalNotDone, FinalOffer, FinalRejected, FinalDeclined:
		return FinalStageResult(s), nil
	default:
		return FinalStageResult(s), fmt.Errorf("%w: %s", ErrUnknownStageResult, s)
	}
}

type HireStatus string

const (
	HireUndecided     HireStatus = "undecided"
	HireHired         HireStatus = "hired"
	HireOfferDeclined HireStatus = "offer_declined"
)

func (h HireStatus) String() string {
	return string(h)
}

func AsHireStatus(s string) (HireStatus, error) {
	switch HireStatus(s) {
	case HireUndecided, HireHired, HireOfferDeclined:
		return HireStatus(s), nil
	default:
		return HireStatus(s), fmt.Errorf("%w: %s", ErrUnknownHireStatus, s)
	}
}

// Candidate is one person moving through the recruiting funnel for a
// single position. OwnerUserId is the staff member responsible for them.
type Candidate struct {
	Id            string
	CompanyId     string
	JobPositionId string
	AgentId       string // empty for direct applications
	Name          string
	ResumeUrl     string
	OwnerUserId   string
	Note          string

	Stage05Result     StageResult
	StageFirstResult  StageResult
	StageSecondResult StageResult
	StageFinalResult  FinalStageResult
	HireStatus        HireStatus
	MismatchFlag      bool

	Stage05Date            *time.Time
	StageFirstDate         *time.Time
	StageFinalDecisionDate *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedFlag bool
}

func (c *Candidate) Equal(other *Candidate) bool {
	if (c == nil) || (other == nil) {
		return (c == nil) && (other == nil)
	}
	return c.Id == other.Id &&
		c.CompanyId == other.CompanyId &&
		c.JobPositionId == other.JobPositionId &&
		c.AgentId == other.AgentId &&
		c.Name == other.Name &&
		c.OwnerUserId == other.OwnerUserId &&
		c.Stage05Result == other.Stage05Result &&
		c.StageFirstResult == other.StageFirstResult &&
		c.StageSecondResult == other.StageSecondResult &&
		c.StageFinalResult == other.StageFinalResult &&
		c.HireStatus == other.HireStatus &&
		c.MismatchFlag == other.MismatchFlag &&
		c.DeletedFlag == other.DeletedFlag
}

type CandidatePatch struct {
	CompanyId     *string
	JobPositionId *string
	AgentId       *string
	Name          *string
	ResumeUrl     *string
	OwnerUserId   *string
	Note          *string

	Stage05Result     *StageResult
	StageFirstResult  *StageResult
	StageSecondResult *StageResult
	StageFinalResult  *FinalStageResult
	HireStatus        *HireStatus
	MismatchFlag      *bool

	Stage05Date            *time.Time
	StageFirstDate         *time.Time
	StageFinalDecisionDate *time.Time
}

// CandidateFilter narrows List by exact match; zero values mean "any".
type CandidateFilter struct {
	CompanyId     string
	JobPositionId string
	AgentId       string
	OwnerUserId   string
}

// FunnelStats counts candidates per funnel stage for the dashboard.
type FunnelStats struct {
	Total            int
	Stage05Done      int
	Stage05Passed    int
	StageFirstDone   int
	StageFirstPassed int
	StageSecondDone  int
	StageSecondPass  int
	StageFinalDone   int
	StageFinalOffer  int
	Hired            int
	Mismatch         int
}

// CountCandidate folds one candidate into the counters.
func (f *FunnelStats) CountCandidate(c *Candidate) {
	f.Total += 1
	if c.Stage05Result != StageNotDone {
		f.Stage05Done += 1
	}
	if c.Stage05Result == StagePassed {
		f.Stage05Passed += 1
	}
	if c.StageFirstResult != StageNotDone {
		f.StageFirstDone += 1
	}
	if c.StageFirstResult == StagePassed {
		f.StageFirstPassed += 1
	}
	if c.StageSecondResult != StageNotDone {
		f.StageSecondDone += 1
	}
	if c.StageSecondResult == StagePassed {
		f.StageSecondPass += 1
	}
	if c.StageFinalResult != FinalNotDone {
		f.StageFinalDone += 1
	}
	if c.StageFinalResult == FinalOffer {
		f.StageFinalOffer += 1
	}
	if c.HireStatus == HireHired {
		f.Hired += 1
	}
	if c.MismatchFlag {
		f.Mismatch += 1
	}
}

type NewCandidate struct {
	CompanyId     string
	JobPositionId string
	AgentId       string
	Name          string
	ResumeUrl     string
	OwnerUserId   string
	Note          string
}
