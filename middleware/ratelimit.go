package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"

	"github.com/printflow/printflow-logistics-api/contract"
)

// luaRateLimit implements a sliding-window counter as one atomic Redis
// operation. KEYS[1]=limit key, ARGV: now, window start, window seconds,
// member, limit. Returns the request count in the window, or -1 when the
// limit is exceeded.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// RedisRateLimit limits mutation traffic per authenticated user, falling
// back to the client IP when no user is in context. It must run after
// RequireAuth. A Redis error fails open so the API keeps serving.
func RedisRateLimit(rdb *rd.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		if user, err := CurrentUser(c); err == nil {
			key = fmt.Sprintf("rate_limit:api:user:%s", user.ID)
		} else {
			key = fmt.Sprintf("rate_limit:api:ip:%s", c.ClientIP())
		}

		now := time.Now().Unix()
		windowSec := int64(window.Seconds())
		windowStart := now - windowSec
		member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

		res, err := rdb.Eval(c.Request.Context(), luaRateLimit, []string{key},
			now, windowStart, windowSec, member, limit).Int()
		if err != nil {
			// Fail open on Redis errors
			c.Next()
			return
		}

		if res < 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, contract.ErrorResponse{
				Message: "Too many requests, please retry later",
			})
			return
		}
		c.Next()
	}
}
