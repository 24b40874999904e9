// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	appctx "oilbook/internal/core/context"
)

// RequireCapability middleware checks if user carries the capability.
// Capabilities are derived from the role at token validation time.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if !appctx.HasCapability(c.Request.Context(), capability) {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("required_capability", capability),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyCapability middleware checks if user carries any of the capabilities.
func RequireAnyCapability(capabilities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		for _, capability := range capabilities {
			if appctx.HasCapability(c.Request.Context(), capability) {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_capabilities", capabilities),
		)
		c.Abort()
	}
}
