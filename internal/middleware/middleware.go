package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"flightdesk/internal/guard"
	"flightdesk/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
)

// CORS lets a browser front end on another origin drive the shell.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+HeaderRequestID)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// RequestID reuses an incoming X-Request-ID or issues a new one, and
// stores it in the request context for logs and outbound gateway calls.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = logger.NewRequestID()
		}

		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Logger logs every request: failures at warn/error, the rest at debug.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			logFields = append(logFields, "error", c.Errors.String())
		}

		log := logger.WithContext(c.Request.Context())
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Request completed with error", logFields...)
		case status >= 400:
			log.Warn("Request rejected", logFields...)
		default:
			log.Debug("Request completed", logFields...)
		}
	}
}

// Recovery turns a panic into a 500 response with a detailed log entry.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithContext(c.Request.Context()).Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// Timeout bounds the request context, and with it every gateway call made
// while handling the request.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Serialize runs the handlers behind it one at a time, so view state and
// the session never see concurrent mutation.
func Serialize() gin.HandlerFunc {
	var mu sync.Mutex
	return func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.Next()
	}
}

// ClearNavigation drops a redirect left over from an earlier request.
func ClearNavigation(h *guard.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Take()
		c.Next()
	}
}

type emailSource interface {
	Email() (string, bool)
}

// UserContext tags the request context with the session email for logs.
func UserContext(sessions emailSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, ok := sessions.Email(); ok {
			c.Request = c.Request.WithContext(logger.ContextWithUserEmail(c.Request.Context(), email))
		}
		c.Next()
	}
}

// RequireSession adapts the route guard to gin. Browsers are redirected to
// the login view; JSON clients get 401 with the redirect target.
func RequireSession(g *guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		if g.CanActivate(route) {
			c.Next()
			return
		}

		if wantsJSON(c.Request) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Unauthorized",
				"redirect": guard.LoginPath,
			})
			return
		}
		c.Redirect(http.StatusFound, guard.LoginPath)
		c.Abort()
	}
}

// AdminChecker reports whether the session holds the admin role. *session.Store implements it.
type AdminChecker interface {
	IsAdmin() bool
}

// RequireAdmin rejects sessions without the admin role. Mount it after
// RequireSession.
func RequireAdmin(sessions AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.IsAdmin() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
