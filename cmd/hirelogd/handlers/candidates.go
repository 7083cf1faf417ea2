package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kagent "github.com/bandq-jp/hirelog/pkg/domain/agent/db"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
)

// relationResolver decorates candidates with display names. Lookups are
// cached for the lifetime of one request.
type relationResolver struct {
	company     kcompany.CompanyInterface
	jobPosition kjobposition.JobPositionInterface
	agent       kagent.AgentInterface
	user        kuser.UserInterface

	companyNames  map[string]string
	positionNames map[string]string
	agents        map[string]*domain.Agent
	userNames     map[string]string
}

func newRelationResolver(
	company kcompany.CompanyInterface,
	jobPosition kjobposition.JobPositionInterface,
	agent kagent.AgentInterface,
	user kuser.UserInterface,
) *relationResolver {
	return &relationResolver{
		company:     company,
		jobPosition: jobPosition,
		agent:       agent,
		user:        user,

		companyNames:  map[string]string{},
		positionNames: map[string]string{},
		agents:        map[string]*domain.Agent{},
		userNames:     map[string]string{},
	}
}

func (r *relationResolver) resolve(ctx context.Context, c *domain.Candidate) (apitypes.CandidateWithRelations, error) {
	resp := apitypes.CandidateWithRelations{Candidate: apitypes.FromCandidate(c)}

	companyName, ok := r.companyNames[c.CompanyId]
	if !ok {
		if com, err := r.company.Get(ctx, c.CompanyId); err != nil {
			return resp, err
		} else if com != nil {
			companyName = com.Name
		}
		r.companyNames[c.CompanyId] = companyName
	}
	resp.CompanyName = companyName

	positionName, ok := r.positionNames[c.JobPositionId]
	if !ok {
		if pos, err := r.jobPosition.Get(ctx, c.JobPositionId); err != nil {
			return resp, err
		} else if pos != nil {
			positionName = pos.Name
		}
		r.positionNames[c.JobPositionId] = positionName
	}
	resp.JobPositionName = positionName

	if c.AgentId != "" {
		agent, ok := r.agents[c.AgentId]
		if !ok {
			a, err := r.agent.Get(ctx, c.AgentId)
			if err != nil {
				return resp, err
			}
			agent = a
			r.agents[c.AgentId] = agent
		}
		if agent != nil {
			resp.AgentCompanyName = agent.CompanyName
			resp.AgentContactName = agent.ContactName
		}
	}

	userName, ok := r.userNames[c.OwnerUserId]
	if !ok {
		if owner, err := r.user.Get(ctx, c.OwnerUserId); err != nil {
			return resp, err
		} else if owner != nil {
			userName = owner.Name
		}
		r.userNames[c.OwnerUserId] = userName
	}
	resp.OwnerUserName = userName

	return resp, nil
}

func ListCandidatesHandler(
	dbcandidate kcandidate.CandidateInterface,
	dbcompany kcompany.CompanyInterface,
	dbposition kjobposition.JobPositionInterface,
	dbagent kagent.AgentInterface,
	dbuser kuser.UserInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		candidates, err := dbcandidate.List(ctx, domain.CandidateFilter{
			CompanyId:     c.QueryParam("company_id"),
			JobPositionId: c.QueryParam("job_position_id"),
			AgentId:       c.QueryParam("agent_id"),
			OwnerUserId:   c.QueryParam("owner_user_id"),
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}

		resolver := newRelationResolver(dbcompany, dbposition, dbagent, dbuser)
		resp := make([]apitypes.CandidateWithRelations, 0, len(candidates))
		for _, cand := range candidates {
			withRelations, err := resolver.resolve(ctx, cand)
			if err != nil {
				return binderr.InternalServerError(err)
			}
			resp = append(resp, withRelations)
		}

		return c.JSON(http.StatusOK, resp)
	}
}

func GetCandidateFunnelHandler(dbcandidate kcandidate.CandidateInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := dbcandidate.Funnel(c.Request().Context(), c.QueryParam("company_id"))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromFunnelStats(stats))
	}
}

func GetCandidateHandler(
	dbcandidate kcandidate.CandidateInterface,
	dbcompany kcompany.CompanyInterface,
	dbposition kjobposition.JobPositionInterface,
	dbagent kagent.AgentInterface,
	dbuser kuser.UserInterface,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cand, err := dbcandidate.Get(ctx, c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if cand == nil {
			return binderr.NotFound()
		}

		resolver := newRelationResolver(dbcompany, dbposition, dbagent, dbuser)
		resp, err := resolver.resolve(ctx, cand)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, resp)
	}
}

func CreateCandidateHandler(dbcandidate kcandidate.CandidateInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CandidateCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.CompanyId == "" || req.JobPositionId == "" || req.Name == "" {
			return binderr.BadRequest("company_id, job_position_id and name are required", nil)
		}

		owner := req.OwnerUserId
		if owner == "" {
			user := auth.UserFrom(c)
			if user == nil {
				return binderr.Unauthorized("not authenticated", nil)
			}
			owner = user.Id
		}

		created, err := dbcandidate.Create(c.Request().Context(), domain.NewCandidate{
			CompanyId:     req.CompanyId,
			JobPositionId: req.JobPositionId,
			AgentId:       req.AgentId,
			Name:          req.Name,
			ResumeUrl:     req.ResumeUrl,
			OwnerUserId:   owner,
			Note:          req.Note,
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromCandidate(created))
	}
}

// canEditCandidate passes admins and the candidate's owner.
func canEditCandidate(user *domain.User, cand *domain.Candidate) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleAdmin || cand.OwnerUserId == user.Id
}

func PatchCandidateHandler(dbcandidate kcandidate.CandidateInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(paramId)

		req := new(apitypes.CandidatePatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		cand, err := dbcandidate.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if cand == nil {
			return binderr.NotFound()
		}
		if !canEditCandidate(auth.UserFrom(c), cand) {
			return binderr.Forbidden("not authorized to edit this candidate")
		}

		patch, err := candidatePatchOf(req)
		if err != nil {
			return binderr.BadRequest("invalid stage result, hire status or date", err)
		}

		updated, err := dbcandidate.Update(ctx, id, patch)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromCandidate(updated))
	}
}

func candidatePatchOf(req *apitypes.CandidatePatchRequest) (domain.CandidatePatch, error) {
	patch := domain.CandidatePatch{
		JobPositionId: req.JobPositionId,
		AgentId:       req.AgentId,
		Name:          req.Name,
		ResumeUrl:     req.ResumeUrl,
		OwnerUserId:   req.OwnerUserId,
		Note:          req.Note,
		MismatchFlag:  req.MismatchFlag,
	}

	if req.Stage05Result != nil {
		r, err := domain.AsStageResult(*req.Stage05Result)
		if err != nil {
			return patch, err
		}
		patch.Stage05Result = &r
	}
	if req.StageFirstResult != nil {
		r, err := domain.AsStageResult(*req.StageFirstResult)
		if err != nil {
			return patch, err
		}
		patch.StageFirstResult = &r
	}
	if req.StageSecondResult != nil {
		r, err := domain.AsStageResult(*req.StageSecondResult)
		if err != nil {
			return patch, err
		}
		patch.StageSecondResult = &r
	}
	if req.StageFinalResult != nil {
		r, err := domain.AsFinalStageResult(*req.StageFinalResult)
		if err != nil {
			return patch, err
		}
		patch.StageFinalResult = &r
	}
	if req.HireStatus != nil {
		h, err := domain.AsHireStatus(*req.HireStatus)
		if err != nil {
			return patch, err
		}
		patch.HireStatus = &h
	}

	if req.Stage05Date != nil {
		d, err := apitypes.ParseDate(*req.Stage05Date)
		if err != nil {
			return patch, err
		}
		patch.Stage05Date = &d
	}
	if req.StageFirstDate != nil {
		d, err := apitypes.ParseDate(*req.StageFirstDate)
		if err != nil {
			return patch, err
		}
		patch.StageFirstDate = &d
	}
	if req.StageFinalDecisionDate != nil {
		d, err := apitypes.ParseDate(*req.StageFinalDecisionDate)
		if err != nil {
			return patch, err
		}
		patch.StageFinalDecisionDate = &d
	}

	return patch, nil
}

func DeleteCandidateHandler(dbcandidate kcandidate.CandidateInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(paramId)

		cand, err := dbcandidate.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if cand == nil {
			return binderr.NotFound()
		}
		if !canEditCandidate(auth.UserFrom(c), cand) {
			return binderr.Forbidden("not authorized to delete this candidate")
		}

		deleted, err := dbcandidate.Delete(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if !deleted {
			return binderr.NotFound()
		}
		return c.NoContent(http.StatusNoContent)
	}
}
