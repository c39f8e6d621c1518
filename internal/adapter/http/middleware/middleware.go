package middleware

import (
	"net/http"
	"strings"
	"time"

	"escrow-settlement/pkg/apperror"
	"escrow-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Identity headers set by the fronting auth proxy.
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"

	// Context keys
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

// Identity creates a middleware that reads the caller identity from the
// trusted proxy headers. Routes behind it can assume a valid user ID is in
// the context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(HeaderUserID)
		if rawID == "" {
			response.Error(c, apperror.ErrForbidden("access this resource"))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			response.Error(c, apperror.ErrForbidden("access this resource"))
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUserEmail, strings.ToLower(c.GetHeader(HeaderUserEmail)))
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits the request body size to protect JSON binding.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
