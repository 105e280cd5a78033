package jwtmw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"market_backend/internal/api"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextEmail    = "userEmail"
	ContextTokenJTI = "tokenJTI"
	ContextTokenExp = "tokenExp"
)

// Denylist reports whether a token ID has been revoked (logout).
// A nil Denylist disables the revocation check.
type Denylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(secret string, denylist Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("missing bearer token"))
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("server misconfigured"))
			return
		}

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("invalid token"))
			return
		}

		// 3. Reject tokens revoked by a previous logout
		jti, _ := claims["jti"].(string)
		if denylist != nil && jti != "" {
			revoked, err := denylist.IsRevoked(c.Request.Context(), jti)
			if err == nil && revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("invalid token"))
				return
			}
			// Denylist errors are treated as not revoked: token signature
			// and expiry were already verified above.
		}

		// 4. Extract claims (payload)
		if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
			c.Set(ContextUserID, uint(sub))
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmail, email)
		}
		c.Set(ContextTokenJTI, jti)
		if exp, ok := claims["exp"].(float64); ok {
			c.Set(ContextTokenExp, time.Unix(int64(exp), 0))
		}

		// 5. Pass control to the next handler
		c.Next()
	}
}
