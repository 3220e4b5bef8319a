package middleware

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// BusinessResolver resolves the authenticated user's business into the
// request context. Workflows downstream assume a valid {user_id, business_id}
// identity context.
func BusinessResolver(userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Error("Failed to resolve user for business lookup", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			return
		}
		if user.BusinessID == nil {
			logger.Warn("User has no business", slog.String("user_id", userID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User does not belong to a business"})
			return
		}

		c.Set(string(businessIDKey), *user.BusinessID)
		c.Next()
	}
}

// RequirePermission gates a route on a permission key. The workflow services
// perform no authorization themselves; this middleware is the single gate.
func RequirePermission(businessSvc portssvc.BusinessSvcFacade, permKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		businessID, ok := GetBusinessIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User does not belong to a business"})
			return
		}

		allowed, err := businessSvc.HasPermission(c.Request.Context(), userID, businessID, permKey)
		if err != nil {
			logger.Error("Permission check failed", slog.String("error", err.Error()), slog.String("permission", permKey))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			return
		}
		if !allowed {
			logger.Warn("Permission denied", slog.String("permission", permKey))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}

		c.Next()
	}
}
