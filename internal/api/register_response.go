package api

import "bookshop/internal/model"

// RegisteredUser is the slim user view returned right after registration.
// swagger:model api.RegisteredUser
type RegisteredUser struct {
	ID       int        `json:"id" example:"1"`
	Username string     `json:"username" example:"alice"`
	Email    string     `json:"email" example:"alice@example.com"`
	Role     model.Role `json:"role" example:"user"`
}

// swagger:model api.RegisterResponse
type RegisterResponse struct {
	Message string         `json:"message" example:"User registered successfully"`
	User    RegisteredUser `json:"user"`
}
