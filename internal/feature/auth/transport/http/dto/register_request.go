package dto

// RegisterReq represents the request body for the /register endpoint.
// It uses Gin's binding tags for validation (required fields, email format).
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}
