package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/bandq-jp/hirelog/internal/testutils/http"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/domain"
	companymocks "github.com/bandq-jp/hirelog/pkg/domain/company/db/mock"
	usermocks "github.com/bandq-jp/hirelog/pkg/domain/user/db/mock"

	"github.com/bandq-jp/hirelog/cmd/hirelogd/handlers"
)

func TestGetMeHandler(t *testing.T) {

	t.Run("it returns the authenticated user", func(t *testing.T) {
		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/v1/users/me")
		auth.SetUser(c, &domain.User{
			Id: "user-1", ClerkId: "clerk-1", Name: "Staff One",
			Email: "one@bandq.jp", Role: domain.RoleAdmin,
		})

		testee := handlers.GetMeHandler()
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apitypes.User{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != "user-1" || actual.Role != "admin" || actual.Email != "one@bandq.jp" {
			t.Errorf("unexpected user in response: %+v", actual)
		}
	})

	t.Run("it returns 401 when no user is stashed on the context", func(t *testing.T) {
		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/v1/users/me")

		testee := handlers.GetMeHandler()
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusUnauthorized {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusUnauthorized)
		}
	})
}

func TestListUsersHandler(t *testing.T) {

	t.Run("client users are listed under their company's name, resolved once per company", func(t *testing.T) {
		mckuser := usermocks.NewUserInterface()
		mckuser.Impl.List = func(context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{Id: "user-1", Name: "Staff One", Role: domain.RoleAdmin},
				{Id: "user-2", Name: "stale name", Role: domain.RoleClient, CompanyId: "company-1"},
				{Id: "user-3", Name: "another stale name", Role: domain.RoleClient, CompanyId: "company-1"},
			}, nil
		}
		mckcompany := companymocks.NewCompanyInterface()
		mckcompany.Impl.Get = func(ctx context.Context, id string) (*domain.Company, error) {
			if id != "company-1" {
				t.Errorf("unexpected company id: %s", id)
			}
			return &domain.Company{Id: "company-1", Name: "ACME Inc."}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/v1/users")

		testee := handlers.ListUsersHandler(mckuser, mckcompany)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := []apitypes.User{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if len(actual) != 3 {
			t.Fatalf("unexpected number of users: %d", len(actual))
		}
		if actual[0].Name != "Staff One" {
			t.Errorf("staff user should keep its own name: %s", actual[0].Name)
		}
		if actual[1].Name != "ACME Inc." || actual[2].Name != "ACME Inc." {
			t.Errorf(
				"client users should take their company name: %s, %s",
				actual[1].Name, actual[2].Name,
			)
		}

		if mckcompany.Calls.Get.Times() != 1 {
			t.Errorf("company should be looked up once per request, not %d times", mckcompany.Calls.Get.Times())
		}
	})

	t.Run("it returns 500 when the user list can not be read", func(t *testing.T) {
		mckuser := usermocks.NewUserInterface()
		mckuser.Impl.List = func(context.Context) ([]*domain.User, error) {
			return nil, errors.New("fake error")
		}
		mckcompany := companymocks.NewCompanyInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/v1/users")

		err := handlers.ListUsersHandler(mckuser, mckcompany)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusInternalServerError {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusInternalServerError)
		}
	})
}

func TestCreateUserHandler(t *testing.T) {

	t.Run("it creates a user from the requested json", func(t *testing.T) {
		mckuser := usermocks.NewUserInterface()
		mckuser.Impl.Create = func(ctx context.Context, spec domain.NewUser) (*domain.User, error) {
			return &domain.User{
				Id: "user-new", ClerkId: spec.ClerkId, Name: spec.Name,
				Email: spec.Email, Role: spec.Role, CompanyId: spec.CompanyId,
				CreatedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
			}, nil
		}

		body := []byte(`{
			"clerk_id": "clerk-9", "name": "New Staff",
			"email": "new@bandq.jp", "role": "interviewer"
		}`)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/users", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.CreateUserHandler(mckuser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mckuser.Calls.Create.Times() != 1 {
			t.Fatalf("Create should be called once, not %d times", mckuser.Calls.Create.Times())
		}
		spec := mckuser.Calls.Create[0]
		if spec.ClerkId != "clerk-9" || spec.Role != domain.RoleInterviewer {
			t.Errorf("Create called with unexpected spec: %+v", spec)
		}

		actual := apitypes.User{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != "user-new" {
			t.Errorf("unexpected user in response: %+v", actual)
		}
	})

	t.Run("a duplicated clerk_id is a 409", func(t *testing.T) {
		mckuser := usermocks.NewUserInterface()
		mckuser.Impl.Create = func(ctx context.Context, spec domain.NewUser) (*domain.User, error) {
			return nil, fmt.Errorf("%w: clerk_id %s", domain.ErrConflict, spec.ClerkId)
		}

		body := []byte(`{"clerk_id": "clerk-9", "name": "x", "email": "x@bandq.jp", "role": "interviewer"}`)

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/v1/users", bytes.NewReader(body))

		err := handlers.CreateUserHandler(mckuser)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusConflict {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusConflict)
		}
	})

	t.Run("it returns 400 for an unknown role", func(t *testing.T) {
		mckuser := usermocks.NewUserInterface()

		body := []byte(`{"clerk_id": "clerk-9", "name": "x", "email": "x@bandq.jp", "role": "superuser"}`)

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/v1/users", bytes.NewReader(body))

		err := handlers.CreateUserHandler(mckuser)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})
}

func TestPatchUserHandler(t *testing.T) {
	theUser := func() *domain.User {
		return &domain.User{
			Id: "user-1", ClerkId: "clerk-1", Name: "Staff One",
			Email: "one@bandq.jp", Role: domain.RoleInterviewer,
		}
	}

	type when struct {
		body    string
		current *domain.User
		company *domain.Company
	}
	type then struct {
		statusCode int
	}

	for name, testcase := range map[string]struct {
		when when
		then then
	}{
		"when the user does not exist, it should respond 404": {
			when: when{body: `{"name": "whoever"}`, current: nil},
			then: then{statusCode: http.StatusNotFound},
		},
		"when an internal role would end up outside the allowed domain, it should respond 400": {
			when: when{
				body:    `{"email": "one@elsewhere.example"}`,
				current: theUser(),
			},
			then: then{statusCode: http.StatusBadRequest},
		},
		"when a client role has no company to attach to, it should respond 400": {
			when: when{body: `{"role": "client"}`, current: theUser()},
			then: then{statusCode: http.StatusBadRequest},
		},
		"when a client role points at a missing company, it should respond 400": {
			when: when{
				body:    `{"role": "client", "company_id": "company-gone"}`,
				current: theUser(),
				company: nil,
			},
			then: then{statusCode: http.StatusBadRequest},
		},
	} {
		t.Run(name, func(t *testing.T) {
			mckuser := usermocks.NewUserInterface()
			mckuser.Impl.Get = func(context.Context, string) (*domain.User, error) {
				return testcase.when.current, nil
			}
			mckcompany := companymocks.NewCompanyInterface()
			mckcompany.Impl.Get = func(context.Context, string) (*domain.Company, error) {
				return testcase.when.company, nil
			}

			e := echo.New()
			c, _ := httptestutil.Patch(
				e, "/api/v1/users/user-1", bytes.NewReader([]byte(testcase.when.body)),
			)
			c.SetParamNames("id")
			c.SetParamValues("user-1")

			err := handlers.PatchUserHandler(mckuser, mckcompany, "bandq.jp", "id")(c)

			var echoErr *echo.HTTPError
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
			}
			if echoErr.Code != testcase.then.statusCode {
				t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, testcase.then.statusCode)
			}
			if mckuser.Calls.Update.Times() != 0 {
				t.Error("Update should not be called on a rejected patch")
			}
		})
	}

	t.Run("a user turned client takes the company's name as display name", func(t *testing.T) {
		mckuser := usermocks.NewUserInterface()
		mckuser.Impl.Get = func(context.Context, string) (*domain.User, error) {
			return theUser(), nil
		}
		mckuser.Impl.Update = func(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
			u := theUser()
			u.Role = domain.RoleClient
			u.CompanyId = "company-1"
			u.Name = *patch.Name
			return u, nil
		}
		mckcompany := companymocks.NewCompanyInterface()
		mckcompany.Impl.Get = func(context.Context, string) (*domain.Company, error) {
			return &domain.Company{Id: "company-1", Name: "ACME Inc."}, nil
		}

		body := []byte(`{"role": "client", "company_id": "company-1"}`)

		e := echo.New()
		c, respRec := httptestutil.Patch(e, "/api/v1/users/user-1", bytes.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues("user-1")

		testee := handlers.PatchUserHandler(mckuser, mckcompany, "bandq.jp", "id")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mckuser.Calls.Update.Times() != 1 {
			t.Fatalf("Update should be called once, not %d times", mckuser.Calls.Update.Times())
		}
		patch := mckuser.Calls.Update[0].Patch
		if patch.Name == nil || *patch.Name != "ACME Inc." {
			t.Errorf("patch should carry the company name: %+v", patch.Name)
		}

		actual := apitypes.User{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Name != "ACME Inc." || actual.Role != "client" {
			t.Errorf("unexpected user in response: %+v", actual)
		}
	})
}
