package middlewares

import (
	"github.com/gin-gonic/gin"
)

// NoCache forbids client and proxy caching on every response so reloads
// always show the freshly persisted transcript.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Next()
	}
}
