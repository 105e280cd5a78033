// Package handler はpasswordresetフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"market_backend/internal/api"
	"market_backend/internal/feature/passwordreset/domain"
	"market_backend/internal/feature/passwordreset/domain/entity"
	"market_backend/internal/feature/passwordreset/transport/http/dto"
	"market_backend/internal/platform/logger"
)

// ResetUsecase はパスワードリセット操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ResetUsecase interface {
	RequestReset(ctx context.Context, email string) error
	ValidateToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	ResetPassword(ctx context.Context, email, token string, code int, newPassword string) error
}

// ResetHandler はパスワードリセットのHTTPリクエストを処理します。
type ResetHandler struct {
	reset ResetUsecase
}

// NewResetHandler はResetHandlerの新しいインスタンスを生成します。
func NewResetHandler(reset ResetUsecase) *ResetHandler {
	return &ResetHandler{reset: reset}
}

// RequestReset はリセットコードの発行を処理します。
// - アカウント不在・非対象アカウントはどちらも同一メッセージの404
// - 成功時は汎用の確認メッセージで200（配送の成否には依存しない）
func (h *ResetHandler) RequestReset(c *gin.Context) {
	log := logger.Get()

	var req dto.RequestResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	if err := h.reset.RequestReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, api.Error(err.Error()))
			return
		}
		log.Error().Err(err).Str("remote_addr", c.ClientIP()).Msg("reset request failed")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}

	log.Info().Str("email", req.Email).Str("remote_addr", c.ClientIP()).Msg("reset code issued")
	c.JSON(http.StatusOK, api.Success("a confirmation code has been sent to your email address"))
}

// FindToken はトークンの照会を処理します。
// 不在と失効はどちらも同一メッセージの404で、呼び出し側からは区別できません。
func (h *ResetHandler) FindToken(c *gin.Context) {
	token := c.Param("token")

	ticket, err := h.reset.ValidateToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, api.Error(err.Error()))
			return
		}
		logger.Get().Error().Err(err).Msg("token lookup failed")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}

	c.JSON(http.StatusOK, dto.NewTicketItem(ticket))
}

// ResetPassword はチケットの消費とパスワード更新を処理します。
// トークン・メール・コードの部分一致に関するフィードバックは返しません。
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	log := logger.Get()

	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	err := h.reset.ResetPassword(c.Request.Context(), req.Email, req.Token, req.ResetCode, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) || errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, api.Error(err.Error()))
			return
		}
		log.Error().Err(err).Str("remote_addr", c.ClientIP()).Msg("password reset failed")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}

	log.Info().Str("email", req.Email).Str("remote_addr", c.ClientIP()).Msg("password reset completed")
	c.JSON(http.StatusOK, api.Success("password has been restored successfully"))
}
