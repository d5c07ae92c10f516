package api

// UpdateMeRequest carries a partial profile update; nil fields are left
// untouched.
// swagger:model api.UpdateMeRequest
type UpdateMeRequest struct {
	FirstName    *string `json:"firstName" form:"firstName" example:"Alice"`
	LastName     *string `json:"lastName" form:"lastName" example:"Smith"`
	Email        *string `json:"email" form:"email" validate:"omitempty,email" example:"alice@example.com"`
	PasswordHint *string `json:"passwordHint" form:"passwordHint" example:"favourite drink"`
}
