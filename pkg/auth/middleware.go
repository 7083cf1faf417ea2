package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
)

const userContextKey = "hirelog/current-user"

// UserFrom reads the authenticated user stashed by Authenticate.
// Returns nil when the request did not pass the middleware.
func UserFrom(c echo.Context) *domain.User {
	if u, ok := c.Get(userContextKey).(*domain.User); ok {
		return u
	}
	return nil
}

// for tests bypassing Authenticate
func SetUser(c echo.Context, u *domain.User) {
	c.Set(userContextKey, u)
}

// Middleware authenticates requests against the identity provider and
// provisions local accounts on first sight.
type Middleware struct {
	verifier      TokenVerifier
	users         kuser.UserInterface
	companies     kcompany.CompanyInterface
	allowedDomain string
}

func NewMiddleware(
	verifier TokenVerifier,
	users kuser.UserInterface,
	companies kcompany.CompanyInterface,
	allowedDomain string,
) *Middleware {
	return &Middleware{
		verifier:      verifier,
		users:         users,
		companies:     companies,
		allowedDomain: allowedDomain,
	}
}

func (m *Middleware) emailAllowed(email string) bool {
	if m.allowedDomain == "" {
		return true
	}
	return strings.HasSuffix(email, "@"+m.allowedDomain)
}

func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return binderr.Unauthorized("bearer token is required", nil)
		}

		claims, err := m.verifier.Verify(ctx, token)
		if err != nil {
			return binderr.Unauthorized("could not validate credentials", err)
		}

		user, err := m.users.GetByClerkId(ctx, claims.Subject)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if user == nil {
			user, err = m.provision(ctx, claims)
			if err != nil {
				return err
			}
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// provision creates a local account for an unseen subject.
//
// The very first account becomes admin. A subject carrying client
// invitation metadata becomes a client bound to the invited company
// and displays its name. Everyone else becomes an interviewer, which
// requires the allowed email domain.
func (m *Middleware) provision(ctx context.Context, claims *Claims) (*domain.User, error) {
	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	spec := domain.NewUser{
		ClerkId: claims.Subject,
		Name:    name,
		Email:   claims.Email,
	}

	if claims.Metadata.Role == domain.RoleClient.String() && claims.Metadata.CompanyId != "" {
		company, err := m.companies.Get(ctx, claims.Metadata.CompanyId)
		if err != nil {
			return nil, binderr.InternalServerError(err)
		}
		if company == nil {
			return nil, binderr.Forbidden("the invited company does not exist anymore")
		}
		spec.Role = domain.RoleClient
		spec.CompanyId = company.Id
		spec.Name = company.Name
	} else {
		if !m.emailAllowed(claims.Email) {
			return nil, binderr.Forbidden("this email domain is not allowed to sign in")
		}

		count, err := m.users.Count(ctx)
		if err != nil {
			return nil, binderr.InternalServerError(err)
		}
		if count == 0 {
			spec.Role = domain.RoleAdmin
		} else {
			spec.Role = domain.RoleInterviewer
		}
	}

	user, err := m.users.Create(ctx, spec)
	if err != nil {
		return nil, binderr.InternalServerError(err)
	}
	return user, nil
}

// RequireInternal admits admins and interviewers.
func RequireInternal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFrom(c)
		if user == nil || !user.Role.Internal() {
			return binderr.Forbidden("staff access required")
		}
		return next(c)
	}
}

// RequireAdmin admits admins only.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFrom(c)
		if user == nil || user.Role != domain.RoleAdmin {
			return binderr.Forbidden("admin access required")
		}
		return next(c)
	}
}

// RequireClient admits client users bound to a company.
func RequireClient(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFrom(c)
		if user == nil || user.Role != domain.RoleClient {
			return binderr.Forbidden("client access required")
		}
		if user.CompanyId == "" {
			return binderr.Forbidden("client user is not associated with a company")
		}
		return next(c)
	}
}
