package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

func ListJobPositionsHandler(dbposition kjobposition.JobPositionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		positions, err := dbposition.List(c.Request().Context(), c.QueryParam("company_id"))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(positions, apitypes.FromJobPosition))
	}
}

func GetJobPositionHandler(dbposition kjobposition.JobPositionInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		position, err := dbposition.Get(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if position == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromJobPosition(position))
	}
}

func CreateJobPositionHandler(dbposition kjobposition.JobPositionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.JobPositionCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.CompanyId == "" || req.Name == "" {
			return binderr.BadRequest("company_id and name are required", nil)
		}

		created, err := dbposition.Create(c.Request().Context(), domain.NewJobPosition{
			CompanyId:   req.CompanyId,
			Name:        req.Name,
			Description: req.Description,
			IsActive:    utils.Default(req.IsActive, true),
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromJobPosition(created))
	}
}

func PatchJobPositionHandler(dbposition kjobposition.JobPositionInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.JobPositionPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		updated, err := dbposition.Update(
			c.Request().Context(), c.Param(paramId),
			domain.JobPositionPatch{
				Name:        req.Name,
				Description: req.Description,
				IsActive:    req.IsActive,
			},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromJobPosition(updated))
	}
}
