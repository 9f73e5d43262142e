package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdvapp/restaurant-pos/config"
	"github.com/pdvapp/restaurant-pos/utils"
)

// RequireCapability gates a route on the role-capability table. The role
// comes from the auth middleware, never from ambient globals.
func RequireCapability(cap config.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		if !config.RoleCan(roleStr, cap) {
			utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
			c.Abort()
			return
		}

		c.Next()
	}
}
