package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

// GetMeHandler returns the authenticated user.
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user := auth.UserFrom(c)
		if user == nil {
			return binderr.Unauthorized("not authenticated", nil)
		}
		return c.JSON(http.StatusOK, apitypes.FromUser(user))
	}
}

// ListUsersHandler lists all users. Client users are displayed under
// their company's current name, resolved once per company per request.
func ListUsersHandler(dbuser kuser.UserInterface, dbcompany kcompany.CompanyInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		users, err := dbuser.List(ctx)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		companyNames := map[string]string{}
		resp := make([]apitypes.User, 0, len(users))
		for _, u := range users {
			if u.Role == domain.RoleClient && u.CompanyId != "" {
				name, ok := companyNames[u.CompanyId]
				if !ok {
					name = u.Name
					if com, err := dbcompany.Get(ctx, u.CompanyId); err != nil {
						return binderr.InternalServerError(err)
					} else if com != nil {
						name = com.Name
					}
					companyNames[u.CompanyId] = name
				}
				u.Name = name
			}
			resp = append(resp, apitypes.FromUser(u))
		}

		return c.JSON(http.StatusOK, resp)
	}
}

func CreateUserHandler(dbuser kuser.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := new(apitypes.UserCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		role, err := domain.AsRole(req.Role)
		if err != nil {
			return binderr.BadRequest("role should be admin, interviewer or client", err)
		}

		created, err := dbuser.Create(ctx, domain.NewUser{
			ClerkId:   req.ClerkId,
			Name:      req.Name,
			Email:     req.Email,
			Role:      role,
			CompanyId: req.CompanyId,
		})
		if errors.Is(err, domain.ErrConflict) {
			return binderr.Conflict("a user with that clerk_id already exists")
		}
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitypes.FromUser(created))
	}
}

// PatchUserHandler updates a user. Internal roles are restricted to the
// allowed email domain; client users must point at an existing company
// and take its name as their display name.
func PatchUserHandler(
	dbuser kuser.UserInterface,
	dbcompany kcompany.CompanyInterface,
	allowedEmailDomain string,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(paramId)

		req := new(apitypes.UserPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		cur, err := dbuser.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if cur == nil {
			return binderr.NotFound()
		}

		patch := domain.UserPatch{
			Name:      req.Name,
			Email:     req.Email,
			CompanyId: req.CompanyId,
		}
		if req.Role != nil {
			role, err := domain.AsRole(*req.Role)
			if err != nil {
				return binderr.BadRequest("role should be admin, interviewer or client", err)
			}
			patch.Role = &role
		}

		// the record as it would be after the patch
		role := utils.Default(patch.Role, cur.Role)
		email := utils.Default(patch.Email, cur.Email)
		companyId := utils.Default(patch.CompanyId, cur.CompanyId)

		if role == domain.RoleAdmin || role == domain.RoleInterviewer {
			if allowedEmailDomain != "" && !strings.HasSuffix(email, "@"+allowedEmailDomain) {
				return binderr.BadRequest(
					"only @"+allowedEmailDomain+" users can be admin/interviewer", nil,
				)
			}
		}
		if role == domain.RoleClient {
			if companyId == "" {
				return binderr.BadRequest("client users must be associated with a company", nil)
			}
			com, err := dbcompany.Get(ctx, companyId)
			if err != nil {
				return binderr.InternalServerError(err)
			}
			if com == nil {
				return binderr.BadRequest("company not found for client user", nil)
			}
			patch.Name = &com.Name
		}

		updated, err := dbuser.Update(ctx, id, patch)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}

		return c.JSON(http.StatusOK, apitypes.FromUser(updated))
	}
}
