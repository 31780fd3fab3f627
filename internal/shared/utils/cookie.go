package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshuahale/portfolio-backend/internal/shared/config"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "sid"

// SetSessionCookie sets the session token as an HttpOnly cookie.
// maxAge is the cookie lifetime in seconds and should match the session TTL.
func SetSessionCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, maxAge int) {
	sameSite := parseSameSite(cookieConfig.SameSite)
	c.SetSameSite(sameSite)

	c.SetCookie(
		SessionCookie,
		token,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie removes the session cookie. Clearing must always succeed
// regardless of whether a server-side session still exists.
func ClearSessionCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	sameSite := parseSameSite(cookieConfig.SameSite)
	c.SetSameSite(sameSite)

	c.SetCookie(
		SessionCookie,
		"",
		-1,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// GetSessionToken retrieves the session token from the request cookie.
// Returns an empty string when the cookie is absent.
func GetSessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
