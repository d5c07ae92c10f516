// File: internal/handler/users/me.go
package users

import (
	"errors"
	"net/http"

	"bookshop/internal/api"
	"bookshop/internal/database"
	"bookshop/internal/middleware"
	"bookshop/internal/store"
	"bookshop/internal/upload"
	"bookshop/internal/worker"

	"github.com/labstack/echo/v4"
)

var updateUserProfile = store.UpdateUserProfile

// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Update current user info
// @Description 更新當前使用者個人資料；可附帶 multipart profileImage 更換頭像
// @Tags        users
// @Accept      json
// @Accept      mpfd
// @Produce     json
// @Param       firstName    formData string false "名"
// @Param       lastName     formData string false "姓"
// @Param       email        formData string false "Email"
// @Param       passwordHint formData string false "密碼提示"
// @Param       profileImage formData file   false "頭像圖片"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [put]
func UpdateMeHandler(db database.DB, saver *upload.Saver, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
		}

		var req api.UpdateMeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		var imageURL *string
		if fh, err := c.FormFile("profileImage"); err == nil {
			url, err := saver.SaveImage(fh, "profile", "avatar")
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid profile image"})
			}
			imageURL = &url
		}

		updated, err := updateUserProfile(c.Request().Context(), db, user.ID,
			req.FirstName, req.LastName, req.Email, req.PasswordHint, imageURL)
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}

		// The replaced avatar file is removed off the request path.
		if imageURL != nil && user.ProfileImageURL != nil {
			old := *user.ProfileImageURL
			wp.Submit(func() {
				if err := saver.Remove(old); err != nil {
					c.Logger().Warnf("remove old avatar %s: %v", old, err)
				}
			})
		}

		return c.JSON(http.StatusOK, api.NewUserResponse(updated))
	}
}
