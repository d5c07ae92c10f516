package users

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookshop/internal/database"
	"bookshop/internal/middleware"
	"bookshop/internal/model"
	"bookshop/internal/store"
	"bookshop/internal/upload"
	"bookshop/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreStubs() {
	updateUserProfile = store.UpdateUserProfile
}

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

func ctxWithUser(e *echo.Echo, req *http.Request, u *model.User) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if u != nil {
		ctx.Set(middleware.ContextUserKey, u)
	}
	return ctx, rec
}

func TestGetMeHandler(t *testing.T) {
	e := echo.New()
	hint := "drink"
	u := &model.User{ID: 1, Username: "alice", Email: "alice@x.com",
		PasswordHash: "hash", PasswordHint: &hint, Role: model.RoleAdmin}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, rec := ctxWithUser(e, req, u)
	require.NoError(t, GetMeHandler()(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"username":"alice"`)
	require.Contains(t, rec.Body.String(), `"passwordHint":"drink"`)
	require.NotContains(t, rec.Body.String(), "hash")

	// no resolved identity
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, rec = ctxWithUser(e, req, nil)
	require.NoError(t, GetMeHandler()(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateMeHandlerJSON(t *testing.T) {
	t.Cleanup(restoreStubs)

	e := echo.New()
	e.Validator = okValidator{}
	saver := upload.NewSaver(t.TempDir())
	wp := worker.NewPool(1)
	defer wp.Stop()

	u := &model.User{ID: 1, Username: "alice", Email: "alice@x.com", Role: model.RoleUser}

	// field update
	var gotFirst *string
	updateUserProfile = func(_ context.Context, _ database.DB, id int, firstName, lastName, email, passwordHint, profileImageURL *string) (*model.User, error) {
		require.Equal(t, 1, id)
		gotFirst = firstName
		require.Nil(t, profileImageURL)
		return &model.User{ID: 1, FirstName: *firstName, Username: "alice", Email: "alice@x.com", Role: model.RoleUser}, nil
	}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"firstName":"Alicia"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx, rec := ctxWithUser(e, req, u)
	require.NoError(t, UpdateMeHandler(&database.FakeDB{}, saver, wp)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFirst)
	require.Equal(t, "Alicia", *gotFirst)
	require.Contains(t, rec.Body.String(), `"firstName":"Alicia"`)

	// duplicate email
	updateUserProfile = func(context.Context, database.DB, int, *string, *string, *string, *string, *string) (*model.User, error) {
		return nil, fmt.Errorf("UpdateUserProfile: %w", store.ErrDuplicate)
	}
	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"email":"taken@x.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx, rec = ctxWithUser(e, req, u)
	require.NoError(t, UpdateMeHandler(&database.FakeDB{}, saver, wp)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already exists")

	// missing identity
	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx, rec = ctxWithUser(e, req, nil)
	require.NoError(t, UpdateMeHandler(&database.FakeDB{}, saver, wp)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func pngUpload(t *testing.T, w *multipart.Writer, field, name string) {
	t.Helper()
	fw, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, png.Encode(fw, img))
}

func TestUpdateMeHandlerAvatar(t *testing.T) {
	t.Cleanup(restoreStubs)

	e := echo.New()
	e.Validator = okValidator{}
	baseDir := t.TempDir()
	saver := upload.NewSaver(baseDir)

	// seed an old avatar on disk
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "profile"), 0o755))
	oldPath := filepath.Join(baseDir, "profile", "avatar-old.jpg")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o644))
	oldURL := "/uploads/profile/avatar-old.jpg"
	u := &model.User{ID: 1, Username: "alice", Role: model.RoleUser, ProfileImageURL: &oldURL}

	var gotImageURL *string
	updateUserProfile = func(_ context.Context, _ database.DB, _ int, _, _, _, _ *string, profileImageURL *string) (*model.User, error) {
		gotImageURL = profileImageURL
		return &model.User{ID: 1, Username: "alice", Role: model.RoleUser, ProfileImageURL: profileImageURL}, nil
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	pngUpload(t, w, "profileImage", "avatar.png")
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	wp := worker.NewPool(1)
	ctx, rec := ctxWithUser(e, req, u)
	require.NoError(t, UpdateMeHandler(&database.FakeDB{}, saver, wp)(ctx))
	wp.Stop()

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotImageURL)
	require.Contains(t, *gotImageURL, "/uploads/profile/avatar-")

	// new avatar stored, replaced one removed
	rel, found := strings.CutPrefix(*gotImageURL, "/uploads/")
	require.True(t, found)
	_, err := os.Stat(filepath.Join(baseDir, rel))
	require.NoError(t, err)
	_, err = os.Stat(oldPath)
	require.True(t, os.IsNotExist(err))
}

func TestUpdateMeHandlerBadImage(t *testing.T) {
	t.Cleanup(restoreStubs)

	e := echo.New()
	e.Validator = okValidator{}
	saver := upload.NewSaver(t.TempDir())
	wp := worker.NewPool(1)
	defer wp.Stop()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("profileImage", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	ctx, rec := ctxWithUser(e, req, &model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, UpdateMeHandler(&database.FakeDB{}, saver, wp)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid profile image")
}
