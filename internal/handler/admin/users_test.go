package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookshop/internal/database"
	"bookshop/internal/model"
	"bookshop/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreUserStubs() {
	listUsers = store.ListUsers
	updateUserRole = store.UpdateUserRole
}

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restoreUserStubs)
	e := echo.New()

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return []model.User{
			{ID: 2, Username: "bob", PasswordHash: "h2", Role: model.RoleUser},
			{ID: 1, Username: "alice", PasswordHash: "h1", Role: model.RoleAdmin},
		}, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ListUsersHandler(&database.FakeDB{})(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"username":"bob"`)
	require.Contains(t, rec.Body.String(), `"username":"alice"`)
	require.NotContains(t, rec.Body.String(), "h1")
	require.NotContains(t, rec.Body.String(), "h2")

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return nil, errors.New("boom")
	}
	rec = httptest.NewRecorder()
	require.NoError(t, ListUsersHandler(&database.FakeDB{})(e.NewContext(req, rec)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func newRoleCtx(e *echo.Echo, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	return ctx, rec
}

func TestUpdateUserRoleHandler(t *testing.T) {
	t.Cleanup(restoreUserStubs)
	e := echo.New()
	e.Validator = okValidator{}

	// bad id
	ctx, rec := newRoleCtx(e, "abc", `{"role":"admin"}`)
	require.NoError(t, UpdateUserRoleHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// invalid role enum
	ctx, rec = newRoleCtx(e, "2", `{"role":"superuser"}`)
	require.NoError(t, UpdateUserRoleHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid role")

	// unknown user
	updateUserRole = func(context.Context, database.DB, int, model.Role) (*model.User, error) {
		return nil, fmt.Errorf("UpdateUserRole: %w", store.ErrNotFound)
	}
	ctx, rec = newRoleCtx(e, "99", `{"role":"admin"}`)
	require.NoError(t, UpdateUserRoleHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// promotion
	var gotID int
	var gotRole model.Role
	updateUserRole = func(_ context.Context, _ database.DB, id int, role model.Role) (*model.User, error) {
		gotID, gotRole = id, role
		return &model.User{ID: id, Username: "bob", Role: role}, nil
	}
	ctx, rec = newRoleCtx(e, "2", `{"role":"admin"}`)
	require.NoError(t, UpdateUserRoleHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, gotID)
	require.Equal(t, model.RoleAdmin, gotRole)
	require.Contains(t, rec.Body.String(), `"role":"admin"`)

	// store failure
	updateUserRole = func(context.Context, database.DB, int, model.Role) (*model.User, error) {
		return nil, errors.New("boom")
	}
	ctx, rec = newRoleCtx(e, "2", `{"role":"user"}`)
	require.NoError(t, UpdateUserRoleHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
