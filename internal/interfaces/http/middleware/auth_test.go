package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuahale/portfolio-backend/internal/application/auth"
	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/utils"
)

type memorySessionRepo struct {
	sessions map[string]*user.Session
	nextID   uint
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*user.Session)}
}

func (r *memorySessionRepo) Create(s *user.Session) error {
	if _, exists := r.sessions[s.Token]; exists {
		return errors.NewConflictError("session token already exists")
	}
	r.nextID++
	s.ID = r.nextID
	r.sessions[s.Token] = s
	return nil
}

func (r *memorySessionRepo) GetByToken(token string) (*user.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, errors.NewNotFoundError("session not found")
	}
	return s, nil
}

func (r *memorySessionRepo) ExistsByToken(token string) (bool, error) {
	_, ok := r.sessions[token]
	return ok, nil
}

func (r *memorySessionRepo) DeleteByToken(token string) (bool, error) {
	if _, ok := r.sessions[token]; !ok {
		return false, nil
	}
	delete(r.sessions, token)
	return true, nil
}

func (r *memorySessionRepo) DeleteByUserID(userID uint) (int64, error) {
	var count int64
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
			count++
		}
	}
	return count, nil
}

func (r *memorySessionRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	var count int64
	for token, s := range r.sessions {
		if !s.ExpiresAt.After(cutoff) {
			delete(r.sessions, token)
			count++
		}
	}
	return count, nil
}

type singleUserRepo struct{ id uint }

func (r singleUserRepo) Create(u *user.User) error { return nil }

func (r singleUserRepo) GetByID(id uint) (*user.User, error) {
	if id != r.id {
		return nil, errors.NewNotFoundError("user not found")
	}
	return &user.User{ID: id, Active: true}, nil
}

func (r singleUserRepo) GetByEmailOrUsername(login string) (*user.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}

func (r singleUserRepo) ExistsByEmail(email string) (bool, error)       { return false, nil }
func (r singleUserRepo) ExistsByUsername(username string) (bool, error) { return false, nil }
func (r singleUserRepo) Update(u *user.User) error                      { return nil }

func setupAuthTest(t *testing.T) (*gin.Engine, *auth.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := auth.NewSessionService(newMemorySessionRepo(), singleUserRepo{id: 1}, 7*24*time.Hour, logger.NewLogger())
	mw := NewAuthMiddleware(sessions, logger.NewLogger())

	engine := gin.New()
	engine.Use(mw.SessionAuth())
	engine.GET("/whoami", func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": userID})
	})
	engine.GET("/private", mw.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return engine, sessions
}

func doRequest(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuth_NoCookie(t *testing.T) {
	engine, _ := setupAuthTest(t)

	rec := doRequest(engine, "/whoami", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestSessionAuth_ValidCookie(t *testing.T) {
	engine, sessions := setupAuthTest(t)

	token, err := sessions.Create(1, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	rec := doRequest(engine, "/whoami", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"user_id":1`)
}

func TestSessionAuth_InvalidCookie(t *testing.T) {
	engine, _ := setupAuthTest(t)

	rec := doRequest(engine, "/whoami", "not-a-real-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestSessionAuth_RevokedCookie(t *testing.T) {
	engine, sessions := setupAuthTest(t)

	token, err := sessions.Create(1, "", "")
	require.NoError(t, err)
	_, err = sessions.Revoke(token)
	require.NoError(t, err)

	rec := doRequest(engine, "/whoami", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestRequireAuth(t *testing.T) {
	engine, sessions := setupAuthTest(t)

	rec := doRequest(engine, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(engine, "/private", "bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := sessions.Create(1, "", "")
	require.NoError(t, err)

	rec = doRequest(engine, "/private", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
