// File: internal/handler/auth/auth.go
package auth

import (
	"errors"
	"net/http"
	"time"

	"bookshop/internal/api"
	"bookshop/internal/database"
	"bookshop/internal/model"
	"bookshop/internal/service"
	"bookshop/internal/store"

	"github.com/labstack/echo/v4"
)

const tokenTTL = 24 * time.Hour

var (
	hashPassword        = service.HashPassword
	authenticateUser    = service.AuthenticateUser
	issueAccessToken    = service.IssueAccessToken
	countUsers          = store.CountUsers
	createUser          = store.CreateUser
	findDuplicateUser   = store.FindUserByUsernameOrEmail
	getUserByIdentifier = store.GetUserByIdentifier
)

// @Summary     Register a new user
// @Description 建立新帳號；系統中第一個註冊成功的使用者自動成為管理員
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.RegisterRequest true "註冊資料"
// @Success     201 {object} api.RegisterResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()

		if _, err := findDuplicateUser(ctx, db, req.Username, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "User with this email or username already exists"})
		} else if !errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}

		// The first user in an empty store becomes the admin. The count is
		// read from the store at registration time, never cached; the unique
		// indexes remain the authority on concurrent duplicates.
		count, err := countUsers(ctx, db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}
		role := model.RoleUser
		if count == 0 {
			role = model.RoleAdmin
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}

		user := &model.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         role,
		}
		if req.PasswordHint != "" {
			user.PasswordHint = &req.PasswordHint
		}

		created, err := createUser(ctx, db, user)
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "User with this email or username already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}

		return c.JSON(http.StatusCreated, api.RegisterResponse{
			Message: "User registered successfully",
			User: api.RegisteredUser{
				ID:       created.ID,
				Username: created.Username,
				Email:    created.Email,
				Role:     created.Role,
			},
		})
	}
}

// @Summary     Log in
// @Description 使用 username 或 email 加密碼登入，回傳 24 小時效期的存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.LoginRequest true "登入資料"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		// Unknown identifier and wrong password answer identically so that
		// the response never reveals which check failed.
		user, err := getUserByIdentifier(c.Request().Context(), db, req.Username)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		}
		if err := authenticateUser(*user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		}

		token, err := issueAccessToken(*user, tokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Token: token,
			User:  api.NewUserResponse(user),
		})
	}
}
