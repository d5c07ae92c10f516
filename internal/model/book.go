// File: internal/model/book.go
package model

import "time"

type Book struct {
	ID            int       `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Author        string    `db:"author" json:"author"`
	Description   string    `db:"description" json:"description"`
	Price         float64   `db:"price" json:"price"`
	CoverImageURL *string   `db:"cover_image_url" json:"coverImageUrl,omitempty"`
	BookFileURL   string    `db:"book_file_url" json:"bookFileUrl"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
