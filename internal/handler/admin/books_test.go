package admin

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshop/internal/cache"
	"bookshop/internal/database"
	"bookshop/internal/handler/books"
	"bookshop/internal/model"
	"bookshop/internal/store"
	"bookshop/internal/upload"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreBookStubs() {
	createBook = store.CreateBook
}

func writeField(t *testing.T, w *multipart.Writer, name, value string) {
	t.Helper()
	require.NoError(t, w.WriteField(name, value))
}

func bookForm(t *testing.T, withCover, withPDF bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	writeField(t, w, "title", "The Go Programming Language")
	writeField(t, w, "author", "Donovan & Kernighan")
	writeField(t, w, "description", "The authoritative resource")
	writeField(t, w, "price", "34.99")
	if withCover {
		fw, err := w.CreateFormFile("cover", "cover.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	}
	if withPDF {
		fw, err := w.CreateFormFile("pdf", "book.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newBookCtx(e *echo.Echo, body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateBookHandler(t *testing.T) {
	t.Cleanup(restoreBookStubs)

	e := echo.New()
	e.Validator = okValidator{}
	saver := upload.NewSaver(t.TempDir())

	noDel := &cache.FakeCache{}

	// cover missing
	body, ct := bookForm(t, false, true)
	ctx, rec := newBookCtx(e, body, ct)
	require.NoError(t, CreateBookHandler(&database.FakeDB{}, noDel, saver)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Both cover image and PDF file are required")

	// pdf missing
	body, ct = bookForm(t, true, false)
	ctx, rec = newBookCtx(e, body, ct)
	require.NoError(t, CreateBookHandler(&database.FakeDB{}, noDel, saver)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// success invalidates the listing cache
	var created model.Book
	createBook = func(_ context.Context, _ database.DB, b *model.Book) (*model.Book, error) {
		b.ID = 1
		b.CreatedAt = time.Now()
		created = *b
		return b, nil
	}
	deleted := false
	rdb := &cache.FakeCache{
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			require.Equal(t, []string{books.ListCacheKey}, keys)
			deleted = true
			return redis.NewIntResult(1, nil)
		},
	}
	body, ct = bookForm(t, true, true)
	ctx, rec = newBookCtx(e, body, ct)
	require.NoError(t, CreateBookHandler(&database.FakeDB{}, rdb, saver)(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, deleted)
	require.Equal(t, "The Go Programming Language", created.Title)
	require.InDelta(t, 34.99, created.Price, 0.001)
	require.NotNil(t, created.CoverImageURL)
	require.Contains(t, *created.CoverImageURL, "/uploads/books/cover-")
	require.Contains(t, created.BookFileURL, "/uploads/books/book-")
}

func TestCreateBookHandlerBadFiles(t *testing.T) {
	t.Cleanup(restoreBookStubs)

	e := echo.New()
	e.Validator = okValidator{}
	saver := upload.NewSaver(t.TempDir())

	// cover that is not an image
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	writeField(t, w, "title", "T")
	writeField(t, w, "author", "A")
	writeField(t, w, "description", "D")
	writeField(t, w, "price", "1")
	fw, err := w.CreateFormFile("cover", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("garbage"))
	require.NoError(t, err)
	fw, err = w.CreateFormFile("pdf", "book.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ctx, rec := newBookCtx(e, body, w.FormDataContentType())
	require.NoError(t, CreateBookHandler(&database.FakeDB{}, &cache.FakeCache{}, saver)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid cover image")
}
