// Package middleware provides the gin middleware chain: JWT authentication,
// request logging and Prometheus instrumentation.
package middleware

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"splitledger/internal/auth"
	"splitledger/internal/metrics"
)

// Context keys set by Auth.
const (
	ContextUserEmail = "user_email"
	ContextUserID    = "user_id"
)

// Auth validates the bearer token and stores the caller's identity on the
// context. Requests without a valid token get 401.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserEmail returns the authenticated caller's email, set by Auth.
func UserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}

// Logger logs each request with latency and status.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", c.ClientIP())
	}
}

// Metrics records the request latency histogram by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
