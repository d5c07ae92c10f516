// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"bookshop/internal/cache"
	"bookshop/internal/database"
	"bookshop/internal/handler"
	"bookshop/internal/handler/admin"
	"bookshop/internal/handler/auth"
	"bookshop/internal/handler/books"
	"bookshop/internal/handler/users"
	"bookshop/internal/middleware"
	"bookshop/internal/upload"
	"bookshop/internal/worker"
)

// Options carries the collaborators the routes need.
type Options struct {
	DB           database.DB
	Cache        cache.Cache
	Saver        *upload.Saver
	Workers      worker.Pool
	BookCacheTTL time.Duration
}

// Setup registers every route and its guards.
func Setup(e *echo.Echo, opts Options) {
	api := e.Group("/api")

	api.GET("/health", handler.HealthHandler(opts.DB, opts.Cache))

	api.POST("/auth/register", auth.RegisterHandler(opts.DB))
	api.POST("/auth/login", auth.LoginHandler(opts.DB))

	requireAuth := middleware.RequireAuth(opts.DB)
	requireAdmin := middleware.RequireAdmin(opts.DB)

	apiUsersMe := api.Group("/users/me", requireAuth)
	apiUsersMe.GET("", users.GetMeHandler())
	apiUsersMe.PUT("", users.UpdateMeHandler(opts.DB, opts.Saver, opts.Workers))

	api.GET("/books", books.ListBooksHandler(opts.DB, opts.Cache, opts.BookCacheTTL), requireAuth)

	apiAdmin := api.Group("/admin", requireAdmin)
	apiAdmin.GET("/users", admin.ListUsersHandler(opts.DB))
	apiAdmin.PUT("/users/:id/role", admin.UpdateUserRoleHandler(opts.DB))
	apiAdmin.POST("/books", admin.CreateBookHandler(opts.DB, opts.Cache, opts.Saver))

	// Uploaded covers, PDFs and avatars are served as static files.
	e.Static("/uploads", opts.Saver.BaseDir)
}
