package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuahale/portfolio-backend/internal/shared/config"
)

func testCookieConfig() config.CookieConfig {
	return config.CookieConfig{
		Path:     "/",
		Secure:   true,
		SameSite: "Lax",
	}
}

func recordCookie(t *testing.T, handler gin.HandlerFunc) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/", handler)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetSessionCookie(t *testing.T) {
	cookie := recordCookie(t, func(c *gin.Context) {
		SetSessionCookie(c, testCookieConfig(), "token-value", 604800)
	})

	assert.Equal(t, SessionCookie, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	cookie := recordCookie(t, func(c *gin.Context) {
		ClearSessionCookie(c, testCookieConfig())
	})

	assert.Equal(t, SessionCookie, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestGetSessionToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		got = GetSessionToken(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "abc123"})
	engine.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc123", got)

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, got)
}
