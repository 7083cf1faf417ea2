package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/clerk"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

func ListCompaniesHandler(dbcompany kcompany.CompanyInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		companies, err := dbcompany.List(c.Request().Context())
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(companies, apitypes.FromCompany))
	}
}

func GetCompanyHandler(dbcompany kcompany.CompanyInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		com, err := dbcompany.Get(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if com == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromCompany(com))
	}
}

func CreateCompanyHandler(dbcompany kcompany.CompanyInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CompanyCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.Name == "" {
			return binderr.BadRequest("name is required", nil)
		}

		created, err := dbcompany.Create(
			c.Request().Context(), domain.NewCompany{Name: req.Name, Note: req.Note},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromCompany(created))
	}
}

func PatchCompanyHandler(dbcompany kcompany.CompanyInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.CompanyPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		updated, err := dbcompany.Update(
			c.Request().Context(), c.Param(paramId),
			domain.CompanyPatch{Name: req.Name, Note: req.Note},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromCompany(updated))
	}
}

func DeleteCompanyHandler(dbcompany kcompany.CompanyInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		deleted, err := dbcompany.Delete(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if !deleted {
			return binderr.NotFound()
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// Inviter is the slice of the Clerk client used by the invite handler.
type Inviter interface {
	CreateInvitation(ctx context.Context, req clerk.InvitationRequest) (*clerk.Invitation, error)
}

// InviteCompanyUserHandler mails a Clerk invitation carrying client role
// metadata and records a placeholder user bound to the company. The
// placeholder is replaced when the invitee signs in for the first time.
func InviteCompanyUserHandler(
	dbcompany kcompany.CompanyInterface,
	dbuser kuser.UserInterface,
	inviter Inviter,
	frontendBaseURL string,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyId := c.Param(paramId)

		req := new(apitypes.CompanyInviteRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.Email == "" {
			return binderr.BadRequest("email is required", nil)
		}

		com, err := dbcompany.Get(ctx, companyId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if com == nil {
			return binderr.NotFound()
		}

		if inviter == nil {
			return binderr.NewErrorMessage(
				http.StatusInternalServerError, "CLERK_SECRET_KEY is not configured",
			)
		}

		// Clerk sends the invitee here to accept; the page hosts sign-up.
		redirectUrl := strings.TrimSuffix(frontendBaseURL, "/") + "/sign-up"

		invitation, err := inviter.CreateInvitation(ctx, clerk.InvitationRequest{
			EmailAddress: req.Email,
			RedirectUrl:  redirectUrl,
			PublicMetadata: clerk.InvitationMetadata{
				Role:      "client",
				CompanyId: companyId,
			},
			Notify: true,
		})
		if err != nil {
			return binderr.BadRequest("failed to create invitation", err)
		}

		if _, err := dbuser.Create(ctx, domain.NewUser{
			ClerkId:   "invitation:" + invitation.Id,
			Name:      com.Name,
			Email:     req.Email,
			Role:      domain.RoleClient,
			CompanyId: companyId,
		}); err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, invitation)
	}
}
