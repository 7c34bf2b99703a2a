package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware resolves the bearer token, if any, to the
// requesting user id. Without enforcement a request carrying no token
// passes through unauthenticated.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		if h.enforceOwnership {
			h.logger.Error().Msg("authorization header required")
			abort(c, newUnauthorizedError(errAuthorizationRequired.Error()))
			return
		}
		c.Next()
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	userID, err := h.auth.ParseAccessToken(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse access token")
		abort(c, newUnauthorizedError("invalid access token"))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

// requesterID returns the authenticated user id, if the request had one.
func requesterID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// NewAccessLogMiddleware logs every request once it has been served.
func NewAccessLogMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("served request")
	}
}

// NewRateLimitMiddleware limits requests per client IP. rateFormatted
// follows the limiter format, e.g. "20-M"; empty disables limiting and
// returns nil.
func NewRateLimitMiddleware(logger zerolog.Logger, rateFormatted string) (gin.HandlerFunc, error) {
	if rateFormatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		ctx, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Error().
				Err(err).
				Msg("failed to check rate limit")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			logger.Warn().
				Str("client_ip", c.ClientIP()).
				Msg("rate limit exceeded")
			abort(c, newAPIError(http.StatusTooManyRequests, errRateLimitExceeded.Error()))
			return
		}
		c.Next()
	}, nil
}
