package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/cache"
)

// RateLimit enforces a fixed-window per-IP request budget backed by the
// shared cache store, so the count is consistent across worker processes.
// Fails open: if the store is unreachable the request is allowed.
func RateLimit(store cache.Cache, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		count, err := store.Increment(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Msg("rate limit store unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := store.Expire(c.Request.Context(), key, time.Minute); err != nil {
				log.Warn().Err(err).Msg("failed to set rate limit window")
			}
		}

		if count > int64(perMinute) {
			response.TooManyRequests(c, "rate limit exceeded, retry in a minute")
			c.Abort()
			return
		}

		c.Next()
	}
}
