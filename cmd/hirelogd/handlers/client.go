package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kcriteria "github.com/bandq-jp/hirelog/pkg/domain/criteria/db"
	kinterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	"github.com/bandq-jp/hirelog/pkg/report"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

// clientCompanyId returns the company binding of the calling client
// user. The RequireClient gate runs first, so a missing binding here is
// a server-side inconsistency rather than a user error.
func clientCompanyId(c echo.Context) (string, error) {
	user := auth.UserFrom(c)
	if user == nil || user.Role != domain.RoleClient {
		return "", binderr.Forbidden("client access required")
	}
	if user.CompanyId == "" {
		return "", binderr.Forbidden("client user is not associated with a company")
	}
	return user.CompanyId, nil
}

func ClientMeHandler(dbcompany kcompany.CompanyInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}
		user := auth.UserFrom(c)

		companyName := "-"
		userName := user.Name
		if com, err := dbcompany.Get(c.Request().Context(), companyId); err != nil {
			return binderr.InternalServerError(err)
		} else if com != nil {
			companyName = com.Name
			userName = com.Name
		}

		return c.JSON(http.StatusOK, apitypes.ClientMe{
			CompanyId:   companyId,
			CompanyName: companyName,
			UserName:    userName,
			Email:       user.Email,
		})
	}
}

func clientCandidateOf(
	ctx context.Context,
	dbposition kjobposition.JobPositionInterface,
	positionNames map[string]string,
	cand *domain.Candidate,
) (apitypes.ClientCandidate, error) {
	resp := apitypes.FromCandidateForClient(cand)

	name, ok := positionNames[cand.JobPositionId]
	if !ok {
		if pos, err := dbposition.Get(ctx, cand.JobPositionId); err != nil {
			return resp, err
		} else if pos != nil {
			name = pos.Name
		}
		positionNames[cand.JobPositionId] = name
	}
	resp.JobPositionName = name

	return resp, nil
}

func ListClientCandidatesHandler(
	dbcandidate kcandidate.CandidateInterface,
	dbposition kjobposition.JobPositionInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		candidates, err := dbcandidate.List(ctx, domain.CandidateFilter{CompanyId: companyId})
		if err != nil {
			return binderr.InternalServerError(err)
		}

		positionNames := map[string]string{}
		resp := make([]apitypes.ClientCandidate, 0, len(candidates))
		for _, cand := range candidates {
			cc, err := clientCandidateOf(ctx, dbposition, positionNames, cand)
			if err != nil {
				return binderr.InternalServerError(err)
			}
			resp = append(resp, cc)
		}

		return c.JSON(http.StatusOK, resp)
	}
}

func GetClientCandidateHandler(
	dbcandidate kcandidate.CandidateInterface,
	dbposition kjobposition.JobPositionInterface,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		cand, err := dbcandidate.Get(ctx, c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		// candidates of other companies are indistinguishable from
		// missing ones for clients
		if cand == nil || cand.CompanyId != companyId {
			return binderr.NotFound()
		}

		resp, err := clientCandidateOf(ctx, dbposition, map[string]string{}, cand)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func ListClientJobPositionsHandler(dbposition kjobposition.JobPositionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}

		positions, err := dbposition.List(c.Request().Context(), companyId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(positions, apitypes.FromJobPosition))
	}
}

func ListClientCriteriaGroupsWithItemsHandler(
	dbposition kjobposition.JobPositionInterface,
	dbgroup kcriteria.CriteriaGroupInterface,
	dbitem kcriteria.CriteriaItemInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		positionId := c.QueryParam("job_position_id")
		if positionId == "" {
			return binderr.BadRequest("job_position_id is required", nil)
		}

		position, err := dbposition.Get(ctx, positionId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if position == nil || position.CompanyId != companyId {
			return binderr.NotFound()
		}

		resp, err := composeGroupsWithItems(ctx, dbgroup, dbitem, positionId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GetClientInterviewByCandidateHandler returns the client projection of
// a candidate's interview: external narrative only, highlighted
// questions only. No interview yet is a JSON null.
func GetClientInterviewByCandidateHandler(
	dbcandidate kcandidate.CandidateInterface,
	dbinterview kinterview.InterviewInterface,
	paramCandidateId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		cand, err := dbcandidate.Get(ctx, c.Param(paramCandidateId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if cand == nil || cand.CompanyId != companyId {
			return binderr.NotFound()
		}

		interview, err := dbinterview.GetByCandidate(ctx, cand.Id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return c.JSON(http.StatusOK, nil)
		}

		details, err := dbinterview.ListDetails(ctx, interview.Id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		questions, err := dbinterview.ListQuestions(ctx, interview.Id)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		resp := apitypes.ClientInterviewWithDetails{
			ClientInterview: apitypes.FromInterviewForClient(interview),
			Details:         utils.Map(details, apitypes.FromInterviewDetailForClient),
			QuestionResponses: utils.Map(
				utils.Filter(questions, func(q *domain.InterviewQuestionResponse) bool {
					return q.IsHighlight
				}),
				apitypes.FromQuestionForClient,
			),
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func GetClientReportHandlerForClient(
	dbcandidate kcandidate.CandidateInterface,
	dbinterview kinterview.InterviewInterface,
	reports *report.Service,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyId, err := clientCompanyId(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()
		interviewId := c.Param(paramId)

		interview, err := dbinterview.Get(ctx, interviewId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return binderr.NotFound()
		}

		cand, err := dbcandidate.Get(ctx, interview.CandidateId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if cand == nil || cand.CompanyId != companyId {
			return binderr.NotFound()
		}

		markdown, err := reports.Client(ctx, interviewId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if markdown == "" {
			return binderr.NotFound()
		}

		return c.JSON(http.StatusOK, apitypes.ReportResponse{Markdown: markdown})
	}
}
