package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/bandq-jp/hirelog/internal/testutils/http"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/domain"
	criteriamocks "github.com/bandq-jp/hirelog/pkg/domain/criteria/db/mock"

	"github.com/bandq-jp/hirelog/cmd/hirelogd/handlers"
)

func TestListCriteriaGroupsHandler(t *testing.T) {

	t.Run("without job_position_id the request is a 400", func(t *testing.T) {
		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/v1/criteria/groups")

		err := handlers.ListCriteriaGroupsHandler(criteriamocks.NewCriteriaGroupInterface())(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})

	t.Run("groups of the position are listed", func(t *testing.T) {
		mckgroup := criteriamocks.NewCriteriaGroupInterface()
		mckgroup.Impl.ListByPosition = func(context.Context, string) ([]*domain.CriteriaGroup, error) {
			return []*domain.CriteriaGroup{
				{Id: "group-1", JobPositionId: "pos-1", Label: "技術力", SortOrder: 1},
				{Id: "group-2", JobPositionId: "pos-1", Label: "カルチャーフィット", SortOrder: 2},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/v1/criteria/groups?job_position_id=pos-1")

		testee := handlers.ListCriteriaGroupsHandler(mckgroup)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mckgroup.Calls.ListByPosition[0] != "pos-1" {
			t.Errorf("unexpected position id: %s", mckgroup.Calls.ListByPosition[0])
		}

		actual := []apitypes.CriteriaGroup{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if len(actual) != 2 || actual[0].Label != "技術力" || actual[1].Label != "カルチャーフィット" {
			t.Errorf("unexpected groups: %+v", actual)
		}
	})
}

func TestListCriteriaGroupsWithItemsHandler(t *testing.T) {

	t.Run("each group carries the items queried by its own id", func(t *testing.T) {
		mckgroup := criteriamocks.NewCriteriaGroupInterface()
		mckgroup.Impl.ListByPosition = func(context.Context, string) ([]*domain.CriteriaGroup, error) {
			return []*domain.CriteriaGroup{
				{Id: "group-1", JobPositionId: "pos-1", Label: "技術力"},
				{Id: "group-2", JobPositionId: "pos-1", Label: "カルチャーフィット"},
			}, nil
		}
		mckitem := criteriamocks.NewCriteriaItemInterface()
		mckitem.Impl.ListByGroup = func(ctx context.Context, groupId string) ([]*domain.CriteriaItem, error) {
			if groupId == "group-1" {
				return []*domain.CriteriaItem{
					{Id: "item-1", CriteriaGroupId: groupId, Label: "設計力", IsActive: true},
					{Id: "item-2", CriteriaGroupId: groupId, Label: "コード品質", IsActive: true},
				}, nil
			}
			return []*domain.CriteriaItem{}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/v1/criteria/groups/with-items?job_position_id=pos-1")

		testee := handlers.ListCriteriaGroupsWithItemsHandler(mckgroup, mckitem)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mckitem.Calls.ListByGroup.Times() != 2 {
			t.Errorf("items should be queried once per group: %v", mckitem.Calls.ListByGroup)
		}

		actual := []apitypes.CriteriaGroupWithItems{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if len(actual) != 2 {
			t.Fatalf("unexpected number of groups: %d", len(actual))
		}
		if len(actual[0].Items) != 2 || actual[0].Items[1].Label != "コード品質" {
			t.Errorf("items of group-1 not composed: %+v", actual[0].Items)
		}
		if len(actual[1].Items) != 0 {
			t.Errorf("group-2 should be empty: %+v", actual[1].Items)
		}
	})

	t.Run("a failing item query aborts with 500", func(t *testing.T) {
		mckgroup := criteriamocks.NewCriteriaGroupInterface()
		mckgroup.Impl.ListByPosition = func(context.Context, string) ([]*domain.CriteriaGroup, error) {
			return []*domain.CriteriaGroup{{Id: "group-1", JobPositionId: "pos-1", Label: "技術力"}}, nil
		}
		mckitem := criteriamocks.NewCriteriaItemInterface()
		mckitem.Impl.ListByGroup = func(context.Context, string) ([]*domain.CriteriaItem, error) {
			return nil, errors.New("fake error")
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/v1/criteria/groups/with-items?job_position_id=pos-1")

		err := handlers.ListCriteriaGroupsWithItemsHandler(mckgroup, mckitem)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusInternalServerError {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusInternalServerError)
		}
	})
}

func TestCreateCriteriaGroupHandler(t *testing.T) {

	t.Run("it passes the requested spec to the database", func(t *testing.T) {
		mckgroup := criteriamocks.NewCriteriaGroupInterface()
		mckgroup.Impl.Create = func(ctx context.Context, spec domain.NewCriteriaGroup) (*domain.CriteriaGroup, error) {
			return &domain.CriteriaGroup{
				Id: "group-1", JobPositionId: spec.JobPositionId,
				Label: spec.Label, Description: spec.Description, SortOrder: spec.SortOrder,
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/criteria/groups",
			jsonBody(t, apitypes.CriteriaGroupCreateRequest{
				JobPositionId: "pos-1", Label: "技術力", Description: "ハードスキル全般", SortOrder: 3,
			}),
		)

		testee := handlers.CreateCriteriaGroupHandler(mckgroup)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		expectedSpec := domain.NewCriteriaGroup{
			JobPositionId: "pos-1", Label: "技術力", Description: "ハードスキル全般", SortOrder: 3,
		}
		if mckgroup.Calls.Create[0] != expectedSpec {
			t.Errorf("unmatch spec. (actual, expected) = (%+v, %+v)", mckgroup.Calls.Create[0], expectedSpec)
		}

		actual := apitypes.CriteriaGroup{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != "group-1" || actual.Label != "技術力" {
			t.Errorf("unexpected response: %+v", actual)
		}
	})

	t.Run("missing required fields are a 400", func(t *testing.T) {
		for name, req := range map[string]apitypes.CriteriaGroupCreateRequest{
			"no job_position_id": {Label: "技術力"},
			"no label":           {JobPositionId: "pos-1"},
		} {
			t.Run(name, func(t *testing.T) {
				mckgroup := criteriamocks.NewCriteriaGroupInterface()

				e := echo.New()
				c, _ := httptestutil.Post(e, "/api/v1/criteria/groups", jsonBody(t, req))

				err := handlers.CreateCriteriaGroupHandler(mckgroup)(c)

				var echoErr *echo.HTTPError
				if !errors.As(err, &echoErr) {
					t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
				}
				if echoErr.Code != http.StatusBadRequest {
					t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
				}
				if mckgroup.Calls.Create.Times() != 0 {
					t.Error("Create should not be called")
				}
			})
		}
	})
}

func TestPatchCriteriaGroupHandler(t *testing.T) {

	t.Run("patching a missing group is a 404", func(t *testing.T) {
		mckgroup := criteriamocks.NewCriteriaGroupInterface()
		mckgroup.Impl.Update = func(context.Context, string, domain.CriteriaGroupPatch) (*domain.CriteriaGroup, error) {
			return nil, nil
		}

		e := echo.New()
		c, _ := httptestutil.Patch(
			e, "/api/v1/criteria/groups/group-404",
			jsonBody(t, map[string]string{"label": "新ラベル"}),
		)
		c.SetParamNames("id")
		c.SetParamValues("group-404")

		err := handlers.PatchCriteriaGroupHandler(mckgroup, "id")(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestDeleteCriteriaGroupHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		deleted      bool
		expectedCode int
	}{
		"a deleted group is a 204": {deleted: true, expectedCode: http.StatusNoContent},
		"a missing group is a 404": {deleted: false, expectedCode: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			mckgroup := criteriamocks.NewCriteriaGroupInterface()
			mckgroup.Impl.Delete = func(context.Context, string) (bool, error) {
				return testcase.deleted, nil
			}

			e := echo.New()
			c, respRec := httptestutil.Delete(e, "/api/v1/criteria/groups/group-1")
			c.SetParamNames("id")
			c.SetParamValues("group-1")

			err := handlers.DeleteCriteriaGroupHandler(mckgroup, "id")(c)

			if testcase.deleted {
				if err != nil {
					t.Fatal(err)
				}
				if respRec.Code != testcase.expectedCode {
					t.Errorf("unmatch status code:%d, expected:%d", respRec.Code, testcase.expectedCode)
				}
				return
			}

			var echoErr *echo.HTTPError
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
			}
			if echoErr.Code != testcase.expectedCode {
				t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, testcase.expectedCode)
			}
		})
	}
}

func TestCreateCriteriaItemHandler(t *testing.T) {

	t.Run("is_active defaults to true when omitted", func(t *testing.T) {
		mckitem := criteriamocks.NewCriteriaItemInterface()
		mckitem.Impl.Create = func(ctx context.Context, spec domain.NewCriteriaItem) (*domain.CriteriaItem, error) {
			return &domain.CriteriaItem{
				Id: "item-1", CriteriaGroupId: spec.CriteriaGroupId,
				Label: spec.Label, IsActive: spec.IsActive,
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/criteria/items",
			jsonBody(t, map[string]string{"criteria_group_id": "group-1", "label": "設計力"}),
		)

		testee := handlers.CreateCriteriaItemHandler(mckitem)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if !mckitem.Calls.Create[0].IsActive {
			t.Error("the item should be active by default")
		}

		actual := apitypes.CriteriaItem{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if !actual.IsActive {
			t.Errorf("unexpected response: %+v", actual)
		}
	})

	t.Run("an explicit is_active false is kept", func(t *testing.T) {
		mckitem := criteriamocks.NewCriteriaItemInterface()
		mckitem.Impl.Create = func(ctx context.Context, spec domain.NewCriteriaItem) (*domain.CriteriaItem, error) {
			return &domain.CriteriaItem{Id: "item-1", IsActive: spec.IsActive}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/v1/criteria/items",
			jsonBody(t, map[string]any{
				"criteria_group_id": "group-1", "label": "設計力", "is_active": false,
			}),
		)

		testee := handlers.CreateCriteriaItemHandler(mckitem)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mckitem.Calls.Create[0].IsActive {
			t.Error("an explicit false should not be overridden")
		}
	})

	t.Run("missing criteria_group_id or label is a 400", func(t *testing.T) {
		mckitem := criteriamocks.NewCriteriaItemInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/v1/criteria/items",
			jsonBody(t, map[string]string{"label": "設計力"}),
		)

		err := handlers.CreateCriteriaItemHandler(mckitem)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
		if mckitem.Calls.Create.Times() != 0 {
			t.Error("Create should not be called")
		}
	})
}

func TestPatchCriteriaItemHandler(t *testing.T) {

	t.Run("only the requested fields flow into the patch", func(t *testing.T) {
		mckitem := criteriamocks.NewCriteriaItemInterface()
		mckitem.Impl.Update = func(ctx context.Context, id string, patch domain.CriteriaItemPatch) (*domain.CriteriaItem, error) {
			return &domain.CriteriaItem{Id: id, Label: "設計力", IsActive: false}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Patch(
			e, "/api/v1/criteria/items/item-1",
			jsonBody(t, map[string]any{"is_active": false}),
		)
		c.SetParamNames("id")
		c.SetParamValues("item-1")

		testee := handlers.PatchCriteriaItemHandler(mckitem, "id")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		args := mckitem.Calls.Update[0]
		if args.Id != "item-1" {
			t.Errorf("unexpected id: %s", args.Id)
		}
		if args.Patch.IsActive == nil || *args.Patch.IsActive {
			t.Errorf("is_active should be patched to false: %+v", args.Patch)
		}
		if args.Patch.Label != nil {
			t.Errorf("label should stay untouched: %+v", args.Patch)
		}
	})

	t.Run("patching a missing item is a 404", func(t *testing.T) {
		mckitem := criteriamocks.NewCriteriaItemInterface()
		mckitem.Impl.Update = func(context.Context, string, domain.CriteriaItemPatch) (*domain.CriteriaItem, error) {
			return nil, nil
		}

		e := echo.New()
		c, _ := httptestutil.Patch(
			e, "/api/v1/criteria/items/item-404",
			jsonBody(t, map[string]string{"label": "新ラベル"}),
		)
		c.SetParamNames("id")
		c.SetParamValues("item-404")

		err := handlers.PatchCriteriaItemHandler(mckitem, "id")(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
