package api

// CreateBookRequest carries the metadata fields of the book-creation
// multipart form; the cover and pdf files ride alongside it.
// swagger:model api.CreateBookRequest
type CreateBookRequest struct {
	Title       string  `form:"title" validate:"required" example:"The Go Programming Language"`
	Author      string  `form:"author" validate:"required" example:"Donovan & Kernighan"`
	Description string  `form:"description" validate:"required" example:"The authoritative resource"`
	Price       float64 `form:"price" validate:"gte=0" example:"34.99"`
}
