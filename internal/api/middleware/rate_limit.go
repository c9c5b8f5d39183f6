package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/pkg/redis"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// RateLimit is a Redis sliding-window limiter keyed on the caller and route.
// Authenticated requests count per user, anonymous ones per client IP.
// With rdb nil, or on a Redis error, requests pass.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		caller := c.GetString("user_id")
		if caller == "" {
			caller = c.ClientIP()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", caller, c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
