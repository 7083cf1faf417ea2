package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/bandq-jp/hirelog/internal/testutils/http"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/domain"
	companymocks "github.com/bandq-jp/hirelog/pkg/domain/company/db/mock"
	usermocks "github.com/bandq-jp/hirelog/pkg/domain/user/db/mock"
)

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f fakeVerifier) Verify(context.Context, string) (*auth.Claims, error) {
	return f.claims, f.err
}

func claimsFor(sub string, name string, email string, metadata auth.InvitationMetadata) *auth.Claims {
	c := &auth.Claims{Name: name, Email: email, Metadata: metadata}
	c.Subject = sub
	return c
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()

	okHandler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("when the subject has an account, it stashes the user", func(t *testing.T) {
		users := usermocks.NewUserInterface()
		known := &domain.User{Id: "user-1", ClerkId: "clerk-1", Role: domain.RoleInterviewer}
		users.Impl.GetByClerkId = func(_ context.Context, clerkId string) (*domain.User, error) {
			return known, nil
		}
		m := auth.NewMiddleware(
			fakeVerifier{claims: claimsFor("clerk-1", "n", "n@bandq.jp", auth.InvitationMetadata{})},
			users, companymocks.NewCompanyInterface(), "bandq.jp",
		)

		var stashed *domain.User
		handler := m.Authenticate(func(c echo.Context) error {
			stashed = auth.UserFrom(c)
			return c.NoContent(http.StatusOK)
		})

		ctx, resp := httptestutil.Get(e, "/api/v1/users/me",
			httptestutil.WithHeader("Authorization", "Bearer token"))
		if err := handler(ctx); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", resp.Code)
		}
		if !stashed.Equal(known) {
			t.Errorf("unexpected user in context: %+v", stashed)
		}
		if users.Calls.GetByClerkId.Times() != 1 || users.Calls.GetByClerkId[0] != "clerk-1" {
			t.Error("GetByClerkId is not called with the token subject")
		}
	})

	t.Run("when the bearer token is missing, it rejects with 401", func(t *testing.T) {
		m := auth.NewMiddleware(
			fakeVerifier{},
			usermocks.NewUserInterface(), companymocks.NewCompanyInterface(), "bandq.jp",
		)
		handler := m.Authenticate(okHandler)

		ctx, _ := httptestutil.Get(e, "/api/v1/users/me")
		err := handler(ctx)

		var httpError *echo.HTTPError
		if !errors.As(err, &httpError) || httpError.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %v", err)
		}
	})

	t.Run("when verification fails, it rejects with 401", func(t *testing.T) {
		m := auth.NewMiddleware(
			fakeVerifier{err: errors.New("fake verify error")},
			usermocks.NewUserInterface(), companymocks.NewCompanyInterface(), "bandq.jp",
		)
		handler := m.Authenticate(okHandler)

		ctx, _ := httptestutil.Get(e, "/api/v1/users/me",
			httptestutil.WithHeader("Authorization", "Bearer broken"))
		err := handler(ctx)

		var httpError *echo.HTTPError
		if !errors.As(err, &httpError) || httpError.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %v", err)
		}
	})
}

func TestProvisioning(t *testing.T) {
	e := echo.New()

	run := func(t *testing.T, m *auth.Middleware) (*domain.User, error) {
		t.Helper()
		var stashed *domain.User
		handler := m.Authenticate(func(c echo.Context) error {
			stashed = auth.UserFrom(c)
			return c.NoContent(http.StatusOK)
		})
		ctx, _ := httptestutil.Get(e, "/api/v1/users/me",
			httptestutil.WithHeader("Authorization", "Bearer token"))
		err := handler(ctx)
		return stashed, err
	}

	t.Run("the first user in an empty table becomes admin", func(t *testing.T) {
		users := usermocks.NewUserInterface()
		users.Impl.GetByClerkId = func(context.Context, string) (*domain.User, error) { return nil, nil }
		users.Impl.Count = func(context.Context) (int, error) { return 0, nil }
		users.Impl.Create = func(_ context.Context, spec domain.NewUser) (*domain.User, error) {
			return &domain.User{Id: "user-1", ClerkId: spec.ClerkId, Name: spec.Name, Email: spec.Email, Role: spec.Role}, nil
		}
		m := auth.NewMiddleware(
			fakeVerifier{claims: claimsFor("clerk-1", "太郎", "taro@bandq.jp", auth.InvitationMetadata{})},
			users, companymocks.NewCompanyInterface(), "bandq.jp",
		)

		stashed, err := run(t, m)
		if err != nil {
			t.Fatal(err)
		}

		if stashed.Role != domain.RoleAdmin {
			t.Errorf("unexpected role: %s", stashed.Role)
		}
		if users.Calls.Create.Times() != 1 {
			t.Fatal("Create should be called once")
		}
		if created := users.Calls.Create[0]; created.Role != domain.RoleAdmin || created.ClerkId != "clerk-1" {
			t.Errorf("unexpected spec: %+v", created)
		}
	})

	t.Run("a later unknown staff subject becomes interviewer", func(t *testing.T) {
		users := usermocks.NewUserInterface()
		users.Impl.GetByClerkId = func(context.Context, string) (*domain.User, error) { return nil, nil }
		users.Impl.Count = func(context.Context) (int, error) { return 3, nil }
		users.Impl.Create = func(_ context.Context, spec domain.NewUser) (*domain.User, error) {
			return &domain.User{Id: "user-4", Role: spec.Role}, nil
		}
		m := auth.NewMiddleware(
			fakeVerifier{claims: claimsFor("clerk-4", "次郎", "jiro@bandq.jp", auth.InvitationMetadata{})},
			users, companymocks.NewCompanyInterface(), "bandq.jp",
		)

		stashed, err := run(t, m)
		if err != nil {
			t.Fatal(err)
		}
		if stashed.Role != domain.RoleInterviewer {
			t.Errorf("unexpected role: %s", stashed.Role)
		}
	})

	t.Run("a staff subject outside the allowed domain is rejected with 403", func(t *testing.T) {
		users := usermocks.NewUserInterface()
		users.Impl.GetByClerkId = func(context.Context, string) (*domain.User, error) { return nil, nil }
		m := auth.NewMiddleware(
			fakeVerifier{claims: claimsFor("clerk-5", "外部", "someone@example.com", auth.InvitationMetadata{})},
			users, companymocks.NewCompanyInterface(), "bandq.jp",
		)

		_, err := run(t, m)

		var httpError *echo.HTTPError
		if !errors.As(err, &httpError) || httpError.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %v", err)
		}
		if users.Calls.Create.Times() != 0 {
			t.Error("no user should be created")
		}
	})

	t.Run("invitation metadata provisions a client bound to the company", func(t *testing.T) {
		users := usermocks.NewUserInterface()
		users.Impl.GetByClerkId = func(context.Context, string) (*domain.User, error) { return nil, nil }
		users.Impl.Create = func(_ context.Context, spec domain.NewUser) (*domain.User, error) {
			return &domain.User{Id: "user-9", Role: spec.Role, CompanyId: spec.CompanyId, Name: spec.Name}, nil
		}
		companies := companymocks.NewCompanyInterface()
		companies.Impl.Get = func(context.Context, string) (*domain.Company, error) {
			return &domain.Company{Id: "company-1", Name: "株式会社サンプル"}, nil
		}
		m := auth.NewMiddleware(
			fakeVerifier{claims: claimsFor(
				"clerk-9", "", "client@example.com",
				auth.InvitationMetadata{Role: "client", CompanyId: "company-1"},
			)},
			users, companies, "bandq.jp",
		)

		stashed, err := run(t, m)
		if err != nil {
			t.Fatal(err)
		}

		if stashed.Role != domain.RoleClient || stashed.CompanyId != "company-1" {
			t.Errorf("unexpected provisioned user: %+v", stashed)
		}
		if created := users.Calls.Create[0]; created.Name != "株式会社サンプル" {
			t.Errorf("client user should display the company name: %+v", created)
		}
	})

	t.Run("invitation to a vanished company is rejected with 403", func(t *testing.T) {
		users := usermocks.NewUserInterface()
		users.Impl.GetByClerkId = func(context.Context, string) (*domain.User, error) { return nil, nil }
		companies := companymocks.NewCompanyInterface()
		companies.Impl.Get = func(context.Context, string) (*domain.Company, error) { return nil, nil }
		m := auth.NewMiddleware(
			fakeVerifier{claims: claimsFor(
				"clerk-9", "", "client@example.com",
				auth.InvitationMetadata{Role: "client", CompanyId: "gone"},
			)},
			users, companies, "bandq.jp",
		)

		_, err := run(t, m)

		var httpError *echo.HTTPError
		if !errors.As(err, &httpError) || httpError.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %v", err)
		}
	})
}

func TestGates(t *testing.T) {
	e := echo.New()
	okHandler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	type gateCase struct {
		gate func(echo.HandlerFunc) echo.HandlerFunc
		user *domain.User
		pass bool
	}

	for name, testcase := range map[string]gateCase{
		"RequireInternal admits admin": {
			gate: auth.RequireInternal,
			user: &domain.User{Role: domain.RoleAdmin},
			pass: true,
		},
		"RequireInternal admits interviewer": {
			gate: auth.RequireInternal,
			user: &domain.User{Role: domain.RoleInterviewer},
			pass: true,
		},
		"RequireInternal rejects client": {
			gate: auth.RequireInternal,
			user: &domain.User{Role: domain.RoleClient, CompanyId: "company-1"},
			pass: false,
		},
		"RequireAdmin admits admin": {
			gate: auth.RequireAdmin,
			user: &domain.User{Role: domain.RoleAdmin},
			pass: true,
		},
		"RequireAdmin rejects interviewer": {
			gate: auth.RequireAdmin,
			user: &domain.User{Role: domain.RoleInterviewer},
			pass: false,
		},
		"RequireClient admits bound client": {
			gate: auth.RequireClient,
			user: &domain.User{Role: domain.RoleClient, CompanyId: "company-1"},
			pass: true,
		},
		"RequireClient rejects unbound client": {
			gate: auth.RequireClient,
			user: &domain.User{Role: domain.RoleClient},
			pass: false,
		},
		"RequireClient rejects staff": {
			gate: auth.RequireClient,
			user: &domain.User{Role: domain.RoleAdmin},
			pass: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			ctx, resp := httptestutil.Get(e, "/")
			auth.SetUser(ctx, testcase.user)

			err := testcase.gate(okHandler)(ctx)

			if testcase.pass {
				if err != nil || resp.Code != http.StatusOK {
					t.Errorf("expected pass, got err=%v status=%d", err, resp.Code)
				}
				return
			}

			var httpError *echo.HTTPError
			if !errors.As(err, &httpError) || httpError.Code != http.StatusForbidden {
				t.Errorf("expected 403, got %v", err)
			}
		})
	}
}
