package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"realty-client/internal/models"
	"realty-client/services/bidding/helpers"
	"realty-client/utils"
)

// Authenticator verifies bearer access tokens
type Authenticator interface {
	Authenticate(access string) (models.User, error)
}

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

// RequireAuth rejects requests without a valid access token
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONDetail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		authenticate(c, auth, token)
	}
}

// OptionalAuth identifies the caller when a token is sent. An invalid token
// is still rejected so clients get a chance to refresh.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		authenticate(c, auth, token)
	}
}

func authenticate(c *gin.Context, auth Authenticator, token string) {
	u, err := auth.Authenticate(token)
	if err != nil {
		utils.JSONDetail(c, http.StatusUnauthorized, "Given token not valid for any token type")
		utils.Debug("auth: token rejected", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
		return
	}
	helpers.SetCurrentUser(c, u)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
