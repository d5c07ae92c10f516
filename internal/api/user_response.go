package api

import (
	"time"

	"bookshop/internal/model"
)

// UserResponse is the public view of a user. The password hash never leaves
// the store layer.
// swagger:model api.UserResponse
type UserResponse struct {
	ID              int        `json:"id" example:"1"`
	FirstName       string     `json:"firstName" example:"Alice"`
	LastName        string     `json:"lastName" example:"Smith"`
	Username        string     `json:"username" example:"alice"`
	Email           string     `json:"email" example:"alice@example.com"`
	Role            model.Role `json:"role" example:"user"`
	PasswordHint    *string    `json:"passwordHint,omitempty"`
	ProfileImageURL *string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse builds the public view from a stored user.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Username:        u.Username,
		Email:           u.Email,
		Role:            u.Role,
		PasswordHint:    u.PasswordHint,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}
