package stubserver

import (
	"net/http"
	"strings"
	"time"

	"bidbazaar/internal/models"
	"bidbazaar/utils"

	"github.com/gin-gonic/gin"
)

const userContextKey = "session_user"

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequired resolves the bearer token into a session user or rejects the
// request with 401.
func AuthRequired(repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		user, ok := repo.SessionUser(token)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "session expired")
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// SessionUser returns the user resolved by AuthRequired
func SessionUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
