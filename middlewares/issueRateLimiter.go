package middlewares

import (
	"net/http"
	"os"
	"time"

	"cleancity-be/config"

	"github.com/gin-gonic/gin"
)

// IssueRateLimiter caps issue submissions per client IP over a 24h window
// using a Redis counter. When Redis is not configured the limiter is a no-op.
func IssueRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		ctx := config.Ctx
		keyPrefix := os.Getenv("REDIS_ISSUE_LIMIT_PREFIX")
		if keyPrefix == "" {
			keyPrefix = "cleancity:issue-limit"
		}

		clientKey := keyPrefix + ":" + c.ClientIP()

		count, err := config.RedisClient.Incr(ctx, clientKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// First increment starts the window.
		if count == 1 {
			if err := config.RedisClient.Expire(ctx, clientKey, 24*time.Hour).Err(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, clientKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
