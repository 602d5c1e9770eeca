package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/observability"
	"github.com/yungbote/mindwell-backend/internal/platform/ctxutil"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/platform/ratelimit"
)

// RateLimit limits requests per authenticated user, falling back to the client
// IP. A limiter error lets the request through.
func RateLimit(log *logger.Logger, limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("middleware", "RateLimit", "scope", scope)
	return func(c *gin.Context) {
		key := scope + ":ip:" + c.ClientIP()
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			key = scope + ":user:" + rd.UserID.String()
		}
		d, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			observability.Current().IncRateLimited(scope)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errors.New("too many requests, slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}
