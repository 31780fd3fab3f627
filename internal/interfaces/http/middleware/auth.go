package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshuahale/portfolio-backend/internal/application/auth"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/utils"
)

// ContextKeyUserID is the gin context key under which the session middleware
// binds the authenticated user's ID. The binding is read-only for the rest
// of the request pipeline.
const ContextKeyUserID = "user_id"

type AuthMiddleware struct {
	sessions *auth.SessionService
	logger   logger.Interface
}

func NewAuthMiddleware(sessions *auth.SessionService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// SessionAuth resolves the sid cookie to a user identity and binds it to the
// request context. It never rejects a request: a missing, invalid, or expired
// cookie simply leaves the request unauthenticated, and any access denial
// happens downstream based on the absence of an identity.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetSessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, ok, err := m.sessions.Validate(token)
		if err != nil {
			// Store failure: proceed unauthenticated rather than leak which
			// condition occurred; protected routes will still return 401.
			m.logger.Errorw("session validation failed", "error", err)
			c.Next()
			return
		}

		if ok {
			c.Set(ContextKeyUserID, userID)
		}

		c.Next()
	}
}

// RequireAuth rejects requests that did not resolve an identity. It must run
// after SessionAuth.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeyUserID); !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID bound by SessionAuth.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
