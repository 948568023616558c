package middleware

import (
	"net/http"

	"consultorio/models"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the listed roles. It must run
// after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString(CtxRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Insufficient permissions", "")
	}
}

// AdminOnly is RequireRole(models.RoleAdmin).
func AdminOnly() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
