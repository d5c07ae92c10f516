// File: internal/handler/books/books.go
package books

import (
	"encoding/json"
	"net/http"
	"time"

	"bookshop/internal/api"
	"bookshop/internal/cache"
	"bookshop/internal/database"
	"bookshop/internal/model"
	"bookshop/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// ListCacheKey holds the cached catalog listing.
const ListCacheKey = "books:all"

var listBooks = store.ListBooks

// @Summary     List books
// @Description 取得書目清單（新到舊排序），結果以 Redis 快取
// @Tags        books
// @Produce     json
// @Success     200 {array} model.Book
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books [get]
func ListBooksHandler(db database.DB, rdb cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if b, err := rdb.Get(ctx, ListCacheKey).Bytes(); err == nil {
			var cached []model.Book
			if err := json.Unmarshal(b, &cached); err == nil {
				return c.JSON(http.StatusOK, cached)
			}
		} else if err != redis.Nil {
			c.Logger().Warnf("books cache read: %v", err)
		}

		books, err := listBooks(ctx, db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}
		if books == nil {
			books = []model.Book{}
		}

		if b, err := json.Marshal(books); err == nil {
			if err := rdb.Set(ctx, ListCacheKey, b, ttl).Err(); err != nil {
				c.Logger().Warnf("books cache write: %v", err)
			}
		}

		return c.JSON(http.StatusOK, books)
	}
}
