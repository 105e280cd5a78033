// Package router はアプリケーションのルーティングテーブルを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "market_backend/internal/feature/auth/transport/handler"
	resethandler "market_backend/internal/feature/passwordreset/transport/handler"
	producthandler "market_backend/internal/feature/products/transport/handler"
	httphandler "market_backend/internal/platform/http/handler"
)

// NewRouter configures the gin engine with all API routes.
// authRequired is the JWT middleware guarding the authenticated group.
func NewRouter(auth *authhandler.AuthHandler, reset *resethandler.ResetHandler,
	products *producthandler.ProductHandler, authRequired gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", httphandler.Health)

	v1 := r.Group("/api/v1")

	// 認証不要
	v1.POST("/login", auth.Login)
	v1.POST("/register", auth.Register)
	v1.POST("/password/email", reset.RequestReset)
	v1.GET("/password/find/:token", reset.FindToken)
	v1.POST("/password/reset", reset.ResetPassword)

	// 認証必須のルート
	authed := v1.Group("/")
	authed.Use(authRequired)
	{
		authed.POST("/logout", auth.Logout)

		authed.GET("/products", products.Index)
		authed.POST("/products", products.Store)
		authed.GET("/products/:id/show", products.Show)
		authed.POST("/products/:id/update", products.Update)
		authed.DELETE("/products/:id/delete", products.Destroy)

		authed.GET("/units", products.Units)
	}

	return r
}
