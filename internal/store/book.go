// File: internal/store/book.go
package store

import (
	"context"
	"fmt"

	"bookshop/internal/database"
	"bookshop/internal/model"
)

func CreateBook(ctx context.Context, db database.DB, b *model.Book) (*model.Book, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO books (title, author, description, price, cover_image_url, book_file_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		b.Title,
		b.Author,
		b.Description,
		b.Price,
		b.CoverImageURL,
		b.BookFileURL,
	)
	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateBook: %w", err)
	}
	return b, nil
}

// ListBooks returns the whole catalog, newest first.
func ListBooks(ctx context.Context, db database.DB) ([]model.Book, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, author, description, price, cover_image_url, book_file_url, created_at
		 FROM books ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b := model.Book{}
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Description,
			&b.Price,
			&b.CoverImageURL,
			&b.BookFileURL,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListBooks: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}
	return books, nil
}
