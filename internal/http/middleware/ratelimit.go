package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/http/response"
	"github.com/torkelwestby/christmas-rebus/internal/ratelimit"
)

// RateLimit rejects callers over the limiter's fixed window with a canned
// message; no retry-after hint, just "wait a bit".
func RateLimit(limiter *ratelimit.Limiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if ok, _ := limiter.Allow(c.ClientIP()); !ok {
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errors.New(message))
			c.Abort()
			return
		}
		c.Next()
	}
}
