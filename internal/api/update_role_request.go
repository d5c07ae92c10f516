package api

// swagger:model api.UpdateRoleRequest
type UpdateRoleRequest struct {
	Role string `json:"role" form:"role" validate:"required" example:"admin"`
}
