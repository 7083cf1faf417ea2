package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kcriteria "github.com/bandq-jp/hirelog/pkg/domain/criteria/db"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

func ListCriteriaGroupsHandler(dbgroup kcriteria.CriteriaGroupInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		positionId := c.QueryParam("job_position_id")
		if positionId == "" {
			return binderr.BadRequest("job_position_id is required", nil)
		}

		groups, err := dbgroup.ListByPosition(c.Request().Context(), positionId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(groups, apitypes.FromCriteriaGroup))
	}
}

// composeGroupsWithItems zips the rubric of a position: groups in their
// sort order, each carrying its items.
func composeGroupsWithItems(
	ctx context.Context,
	dbgroup kcriteria.CriteriaGroupInterface,
	dbitem kcriteria.CriteriaItemInterface,
	positionId string,
) ([]apitypes.CriteriaGroupWithItems, error) {
	groups, err := dbgroup.ListByPosition(ctx, positionId)
	if err != nil {
		return nil, err
	}

	resp := make([]apitypes.CriteriaGroupWithItems, 0, len(groups))
	for _, group := range groups {
		items, err := dbitem.ListByGroup(ctx, group.Id)
		if err != nil {
			return nil, err
		}
		resp = append(resp, apitypes.CriteriaGroupWithItems{
			CriteriaGroup: apitypes.FromCriteriaGroup(group),
			Items:         utils.Map(items, apitypes.FromCriteriaItem),
		})
	}
	return resp, nil
}

func ListCriteriaGroupsWithItemsHandler(
	dbgroup kcriteria.CriteriaGroupInterface,
	dbitem kcriteria.CriteriaItemInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		positionId := c.QueryParam("job_position_id")
		if positionId == "" {
			return binderr.BadRequest("job_position_id is required", nil)
		}

		resp, err := composeGroupsWithItems(c.Request().Context(), dbgroup, dbitem, positionId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func CreateCriteriaGroupHandler(dbgroup kcriteria.CriteriaGroupInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CriteriaGroupCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.JobPositionId == "" || req.Label == "" {
			return binderr.BadRequest("job_position_id and label are required", nil)
		}

		created, err := dbgroup.Create(c.Request().Context(), domain.NewCriteriaGroup{
			JobPositionId: req.JobPositionId,
			Label:         req.Label,
			Description:   req.Description,
			SortOrder:     req.SortOrder,
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromCriteriaGroup(created))
	}
}

func PatchCriteriaGroupHandler(dbgroup kcriteria.CriteriaGroupInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CriteriaGroupPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		updated, err := dbgroup.Update(
			c.Request().Context(), c.Param(paramId),
			domain.CriteriaGroupPatch{
				Label:       req.Label,
				Description: req.Description,
				SortOrder:   req.SortOrder,
			},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromCriteriaGroup(updated))
	}
}

func DeleteCriteriaGroupHandler(dbgroup kcriteria.CriteriaGroupInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		deleted, err := dbgroup.Delete(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if !deleted {
			return binderr.NotFound()
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ListCriteriaItemsHandler(dbitem kcriteria.CriteriaItemInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		groupId := c.QueryParam("group_id")
		if groupId == "" {
			return binderr.BadRequest("group_id is required", nil)
		}

		items, err := dbitem.ListByGroup(c.Request().Context(), groupId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(items, apitypes.FromCriteriaItem))
	}
}

func CreateCriteriaItemHandler(dbitem kcriteria.CriteriaItemInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CriteriaItemCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.CriteriaGroupId == "" || req.Label == "" {
			return binderr.BadRequest("criteria_group_id and label are required", nil)
		}

		created, err := dbitem.Create(c.Request().Context(), domain.NewCriteriaItem{
			CriteriaGroupId:      req.CriteriaGroupId,
			Label:                req.Label,
			Description:          req.Description,
			BehaviorExamplesText: req.BehaviorExamplesText,
			SortOrder:            req.SortOrder,
			IsActive:             utils.Default(req.IsActive, true),
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromCriteriaItem(created))
	}
}

func PatchCriteriaItemHandler(dbitem kcriteria.CriteriaItemInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CriteriaItemPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		updated, err := dbitem.Update(
			c.Request().Context(), c.Param(paramId),
			domain.CriteriaItemPatch{
				CriteriaGroupId:      req.CriteriaGroupId,
				Label:                req.Label,
				Description:          req.Description,
				BehaviorExamplesText: req.BehaviorExamplesText,
				SortOrder:            req.SortOrder,
				IsActive:             req.IsActive,
			},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromCriteriaItem(updated))
	}
}
