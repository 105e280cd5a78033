package dto

// UserItem is the user payload returned on successful authentication.
type UserItem struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID string `json:"role_id"`
	Active bool   `json:"active"`
}

// LoginResp carries the authenticated user and the bearer token.
type LoginResp struct {
	User  UserItem `json:"user"`
	Token string   `json:"token"`
}
