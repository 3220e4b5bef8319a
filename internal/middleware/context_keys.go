package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey     = contextKey("userID")
	businessIDKey = contextKey("businessID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, checking the request context as well.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetBusinessIDFromContext retrieves the caller's business ID, resolved by
// BusinessResolver.
func GetBusinessIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(businessIDKey)); exists {
		if businessID, ok := v.(string); ok {
			return businessID, true
		}
	}
	return "", false
}
