package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/bandq-jp/hirelog/internal/testutils/http"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/domain"
	candidatemocks "github.com/bandq-jp/hirelog/pkg/domain/candidate/db/mock"
	companymocks "github.com/bandq-jp/hirelog/pkg/domain/company/db/mock"
	criteriamocks "github.com/bandq-jp/hirelog/pkg/domain/criteria/db/mock"
	interviewmocks "github.com/bandq-jp/hirelog/pkg/domain/interview/db/mock"
	jobpositionmocks "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db/mock"
	"github.com/bandq-jp/hirelog/pkg/report"

	"github.com/bandq-jp/hirelog/cmd/hirelogd/handlers"
)

type reportMocks struct {
	interview *interviewmocks.InterviewInterface
	candidate *candidatemocks.CandidateInterface
	company   *companymocks.CompanyInterface
	position  *jobpositionmocks.JobPositionInterface
	group     *criteriamocks.CriteriaGroupInterface
	item      *criteriamocks.CriteriaItemInterface
}

// newReportMocks wires a small but renderable interview fixture.
func newReportMocks() reportMocks {
	m := reportMocks{
		interview: interviewmocks.NewInterviewInterface(),
		candidate: candidatemocks.NewCandidateInterface(),
		company:   companymocks.NewCompanyInterface(),
		position:  jobpositionmocks.NewJobPositionInterface(),
		group:     criteriamocks.NewCriteriaGroupInterface(),
		item:      criteriamocks.NewCriteriaItemInterface(),
	}
	m.interview.Impl.Get = func(context.Context, string) (*domain.Interview, error) {
		return theInterview("int-1", "cand-1"), nil
	}
	m.interview.Impl.ListDetails = func(context.Context, string) ([]*domain.InterviewDetail, error) {
		return []*domain.InterviewDetail{}, nil
	}
	m.interview.Impl.ListQuestions = func(context.Context, string) ([]*domain.InterviewQuestionResponse, error) {
		return []*domain.InterviewQuestionResponse{}, nil
	}
	m.interview.Impl.Update = func(ctx context.Context, id string, patch domain.InterviewPatch) (*domain.Interview, error) {
		return theInterview(id, "cand-1"), nil
	}
	m.candidate.Impl.Get = func(context.Context, string) (*domain.Candidate, error) {
		return theCandidate("cand-1"), nil
	}
	m.company.Impl.Get = func(context.Context, string) (*domain.Company, error) {
		return &domain.Company{Id: "company-1", Name: "ACME Inc."}, nil
	}
	m.position.Impl.Get = func(context.Context, string) (*domain.JobPosition, error) {
		return &domain.JobPosition{Id: "pos-1", Name: "Backend Engineer"}, nil
	}
	m.group.Impl.ListByPosition = func(context.Context, string) ([]*domain.CriteriaGroup, error) {
		return []*domain.CriteriaGroup{}, nil
	}
	return m
}

func (m reportMocks) service() *report.Service {
	return report.New(m.interview, m.candidate, m.company, m.position, m.group, m.item)
}

func TestGetClientReportHandler(t *testing.T) {

	t.Run("it renders the markdown and caches it on the interview row", func(t *testing.T) {
		mocks := newReportMocks()

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/v1/reports/client/int-1")
		c.SetParamNames("interviewId")
		c.SetParamValues("int-1")

		testee := handlers.GetClientReportHandler(mocks.service(), "interviewId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apitypes.ReportResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(actual.Markdown, "山田 太郎") ||
			!strings.Contains(actual.Markdown, "ACME Inc.") {
			t.Errorf("markdown does not carry the fixture names:\n%s", actual.Markdown)
		}
		if strings.Contains(actual.Markdown, "verify the gap in the resume") {
			t.Error("internal comments must not leak into the client report")
		}

		if mocks.interview.Calls.Update.Times() != 1 {
			t.Fatalf("the rendering should be cached once, got %d updates", mocks.interview.Calls.Update.Times())
		}
		patch := mocks.interview.Calls.Update[0].Patch
		if patch.ClientReportMarkdown == nil || patch.AgentReportMarkdown == nil {
			t.Errorf("both renderings should be cached: %+v", patch)
		}
	})

	t.Run("a missing interview responds 404 and caches nothing", func(t *testing.T) {
		mocks := newReportMocks()
		mocks.interview.Impl.Get = func(context.Context, string) (*domain.Interview, error) {
			return nil, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/v1/reports/client/int-gone")
		c.SetParamNames("interviewId")
		c.SetParamValues("int-gone")

		err := handlers.GetClientReportHandler(mocks.service(), "interviewId")(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
		if mocks.interview.Calls.Update.Times() != 0 {
			t.Error("nothing should be cached for a missing interview")
		}
	})
}

func TestGetAgentReportHandler(t *testing.T) {

	t.Run("it renders the agent feedback with the stage outcome", func(t *testing.T) {
		mocks := newReportMocks()

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/v1/reports/agent/int-1")
		c.SetParamNames("interviewId")
		c.SetParamValues("int-1")

		testee := handlers.GetAgentReportHandler(mocks.service(), "interviewId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apitypes.ReportResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		// the fixture candidate passed the 0.5次 stage
		if !strings.Contains(actual.Markdown, "通過") {
			t.Errorf("agent feedback should disclose the outcome:\n%s", actual.Markdown)
		}
	})

	t.Run("a vanished candidate responds 404", func(t *testing.T) {
		mocks := newReportMocks()
		mocks.candidate.Impl.Get = func(context.Context, string) (*domain.Candidate, error) {
			return nil, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/v1/reports/agent/int-1")
		c.SetParamNames("interviewId")
		c.SetParamValues("int-1")

		err := handlers.GetAgentReportHandler(mocks.service(), "interviewId")(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
