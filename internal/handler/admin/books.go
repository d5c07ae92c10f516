// File: internal/handler/admin/books.go
package admin

import (
	"net/http"

	"bookshop/internal/api"
	"bookshop/internal/cache"
	"bookshop/internal/database"
	"bookshop/internal/handler/books"
	"bookshop/internal/model"
	"bookshop/internal/store"
	"bookshop/internal/upload"

	"github.com/labstack/echo/v4"
)

var createBook = store.CreateBook

// @Summary     Create a book
// @Description 新增書目；multipart 需同時附上封面圖片與 PDF 檔案
// @Tags        admin
// @Accept      mpfd
// @Produce     json
// @Param       title       formData string true "書名"
// @Param       author      formData string true "作者"
// @Param       description formData string true "簡介"
// @Param       price       formData number true "價格"
// @Param       cover       formData file   true "封面圖片"
// @Param       pdf         formData file   true "PDF 檔案"
// @Success     201 {object} model.Book
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/books [post]
func CreateBookHandler(db database.DB, rdb cache.Cache, saver *upload.Saver) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateBookRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		coverFile, coverErr := c.FormFile("cover")
		pdfFile, pdfErr := c.FormFile("pdf")
		if coverErr != nil || pdfErr != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Both cover image and PDF file are required"})
		}

		coverURL, err := saver.SaveImage(coverFile, "books", "cover")
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid cover image"})
		}
		pdfURL, err := saver.SavePDF(pdfFile, "books", "book")
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid PDF file"})
		}

		book := &model.Book{
			Title:         req.Title,
			Author:        req.Author,
			Description:   req.Description,
			Price:         req.Price,
			CoverImageURL: &coverURL,
			BookFileURL:   pdfURL,
		}
		created, err := createBook(c.Request().Context(), db, book)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		}

		// A new book makes the cached listing stale.
		if err := rdb.Del(c.Request().Context(), books.ListCacheKey).Err(); err != nil {
			c.Logger().Warnf("books cache invalidate: %v", err)
		}

		return c.JSON(http.StatusCreated, created)
	}
}
