package identity

import "github.com/gin-gonic/gin"

const contextKey = "actorID"

// GetUserID returns the acting user's ID stored by the Required middleware,
// or empty string when no identity is present.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
