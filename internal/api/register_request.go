package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	FirstName    string `json:"firstName" form:"firstName" validate:"required" example:"Alice"`
	LastName     string `json:"lastName" form:"lastName" validate:"required" example:"Smith"`
	Username     string `json:"username" form:"username" validate:"required" example:"alice"`
	Email        string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password     string `json:"password" form:"password" validate:"required" example:"Secret123!"`
	PasswordHint string `json:"passwordHint" form:"passwordHint" example:"favourite drink"`
}
