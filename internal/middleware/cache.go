package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InvalidateOnWrite calls invalidate after a successful non-GET request so
// cached dashboard counters do not outlive the data they summarise.
func InvalidateOnWrite(invalidate func(ctx context.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if invalidate == nil || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			invalidate(c.Request.Context())
		}
	}
}
