// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/api"
	"market_backend/internal/feature/auth/domain/entity"
	"market_backend/internal/feature/auth/transport/http/dto"
	jwtmw "market_backend/internal/platform/jwt"
	"market_backend/internal/platform/logger"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規アカウントを登録し、ログイン済みトークンを返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// Logout は提示されたトークンを失効させます。
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド（email, password, name必須）
// - バリデーションエラー時は400を返却
// - 登録失敗時は汎用メッセージで500を返却（実際のエラーは公開しない）
// - 成功時はログイン応答（user + token）付きで200を返却
func (h *AuthHandler) Register(c *gin.Context) {
	log := logger.Get()

	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("register validation failed")
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		// 登録失敗の詳細（メール重複等）は列挙攻撃防止のため公開しない
		log.Warn().Err(err).Str("email", req.Email).Str("remote_addr", c.ClientIP()).Msg("register failed")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}

	log.Info().Str("email", user.Email).Str("remote_addr", c.ClientIP()).Msg("user registered")
	c.JSON(http.StatusOK, loginResponse(user, token))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はユーザーとトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	log := logger.Get()

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("login validation failed")
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Str("remote_addr", c.ClientIP()).Msg("login failed")
		c.JSON(http.StatusUnauthorized, api.Error("invalid email or password"))
		return
	}

	log.Info().Str("email", user.Email).Str("remote_addr", c.ClientIP()).Msg("user login successful")
	c.JSON(http.StatusOK, loginResponse(user, token))
}

// Logout は提示されたベアラートークンを失効させます。
// 認証ミドルウェアが設定したjtiと満了時刻をコンテキストから取得します。
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(jwtmw.ContextTokenJTI)
	expiresAt, _ := c.Get(jwtmw.ContextTokenExp)
	exp, ok := expiresAt.(time.Time)
	if jti == "" || !ok {
		c.JSON(http.StatusUnauthorized, api.Error("invalid token"))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), jti, exp); err != nil {
		logger.Get().Error().Err(err).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}

	c.JSON(http.StatusOK, api.Success("user has been logged out"))
}

func loginResponse(user *entity.User, token string) dto.LoginResp {
	return dto.LoginResp{
		User: dto.UserItem{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			RoleID: user.RoleID,
			Active: user.Active,
		},
		Token: token,
	}
}
