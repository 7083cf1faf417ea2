package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kagent "github.com/bandq-jp/hirelog/pkg/domain/agent/db"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

func ListAgentsHandler(dbagent kagent.AgentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		agents, err := dbagent.List(c.Request().Context())
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(agents, apitypes.FromAgent))
	}
}

func GetAgentHandler(dbagent kagent.AgentInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		agent, err := dbagent.Get(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if agent == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromAgent(agent))
	}
}

func CreateAgentHandler(dbagent kagent.AgentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.AgentCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.CompanyName == "" {
			return binderr.BadRequest("company_name is required", nil)
		}

		created, err := dbagent.Create(c.Request().Context(), domain.NewAgent{
			CompanyName:  req.CompanyName,
			ContactName:  req.ContactName,
			ContactEmail: req.ContactEmail,
			Note:         req.Note,
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromAgent(created))
	}
}

func PatchAgentHandler(dbagent kagent.AgentInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.AgentPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		updated, err := dbagent.Update(
			c.Request().Context(), c.Param(paramId),
			domain.AgentPatch{
				CompanyName:  req.CompanyName,
				ContactName:  req.ContactName,
				ContactEmail: req.ContactEmail,
				Note:         req.Note,
			},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromAgent(updated))
	}
}

func DeleteAgentHandler(dbagent kagent.AgentInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		deleted, err := dbagent.Delete(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if !deleted {
			return binderr.NotFound()
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func rate(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// AgentStatsHandler folds each agent's referred candidates into
// percentage rates (one decimal). Agents without referrals report zero
// rates rather than dividing by zero.
func AgentStatsHandler(
	dbagent kagent.AgentInterface,
	dbcandidate kcandidate.CandidateInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		agents, err := dbagent.List(ctx)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		resp := make([]apitypes.AgentStats, 0, len(agents))
		for _, agent := range agents {
			stats := domain.AgentStats{
				AgentId:     agent.Id,
				CompanyName: agent.CompanyName,
				ContactName: agent.ContactName,
			}

			candidates, err := dbcandidate.List(ctx, domain.CandidateFilter{AgentId: agent.Id})
			if err != nil {
				return binderr.InternalServerError(err)
			}

			if total := len(candidates); 0 < total {
				passed, offered, mismatched := 0, 0, 0
				for _, cand := range candidates {
					if cand.Stage05Result == domain.StagePassed {
						passed += 1
					}
					if cand.StageFinalResult == domain.FinalOffer {
						offered += 1
					}
					if cand.MismatchFlag {
						mismatched += 1
					}
				}
				stats.ReferralCount = total
				stats.Stage05PassRate = rate(passed, total)
				stats.FinalOfferRate = rate(offered, total)
				stats.MismatchRate = rate(mismatched, total)
			}

			resp = append(resp, apitypes.FromAgentStats(&stats))
		}

		return c.JSON(http.StatusOK, resp)
	}
}
