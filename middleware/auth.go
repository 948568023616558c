package middleware

import (
	"context"
	"net/http"
	"strings"

	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// RevocationChecker reports whether a token id was logged out.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// JWTAuthMiddleware validates the bearer token and rejects revoked ones.
func JWTAuthMiddleware(revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		revoked, err := revocations.IsTokenRevoked(c.Request.Context(), claims.Id)
		if err != nil {
			utils.GetLogger().Error("revocation check failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Could not verify session", "")
			return
		}
		if revoked {
			utils.JSONError(c, http.StatusUnauthorized, "Token has been revoked", "")
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}
