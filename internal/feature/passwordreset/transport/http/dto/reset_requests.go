// Package dto はpasswordresetフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"market_backend/internal/feature/passwordreset/domain/entity"
)

// RequestResetReq は/password/emailエンドポイントのリクエストボディを表します。
type RequestResetReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq は/password/resetエンドポイントのリクエストボディを表します。
type ResetPasswordReq struct {
	Email     string `json:"email" binding:"required,email"`
	Token     string `json:"token" binding:"required"`
	ResetCode int    `json:"reset_code" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// TicketItem is the ticket payload returned by the token lookup endpoint.
// The confirmation code is deliberately omitted: the endpoint is reachable
// with the token alone and must not hand out the second factor.
type TicketItem struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTicketItem converts a ticket entity to its transport representation.
func NewTicketItem(t *entity.PasswordReset) TicketItem {
	return TicketItem{
		Email:     t.Email,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
