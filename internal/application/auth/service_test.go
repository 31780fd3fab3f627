package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// stubUserRepo backs the account service tests with a writable user set.
type stubUserRepo struct {
	byID   map[uint]*user.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uint]*user.User)}
}

func (r *stubUserRepo) Create(u *user.User) error {
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetByID(id uint) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmailOrUsername(login string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == login || u.Username == login {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (r *stubUserRepo) ExistsByEmail(email string) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByUsername(username string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(u *user.User) error {
	r.byID[u.ID] = u
	return nil
}

// plainHasher makes password comparisons transparent in tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if "hash:"+password != hash {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func newAuthService(t *testing.T) (*Service, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	sessions := NewSessionService(newFakeSessionRepo(), users, testTTL, logger.NewLogger())
	return NewService(users, sessions, plainHasher{}, logger.NewLogger()), users
}

func TestService_Register(t *testing.T) {
	svc, users := newAuthService(t)

	dto, err := svc.Register(RegisterCommand{
		Email:    "Josh@Example.com",
		Username: "josh",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "josh@example.com", dto.Email)
	assert.Equal(t, "josh", dto.Username)
	assert.NotZero(t, dto.ID)

	stored, err := users.GetByID(dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash:correct-horse", stored.PasswordHash)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterCommand{Email: "josh@example.com", Username: "josh", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterCommand{Email: "josh@example.com", Username: "other", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	_, err = svc.Register(RegisterCommand{Email: "other@example.com", Username: "josh", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestService_Login(t *testing.T) {
	svc, _ := newAuthService(t)

	registered, err := svc.Register(RegisterCommand{Email: "josh@example.com", Username: "josh", Password: "correct-horse"})
	require.NoError(t, err)

	byEmail, err := svc.Login(LoginCommand{EmailOrUsername: "josh@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byEmail.ID)

	byUsername, err := svc.Login(LoginCommand{EmailOrUsername: "josh", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byUsername.ID)
}

func TestService_Login_UniformFailures(t *testing.T) {
	svc, users := newAuthService(t)

	_, err := svc.Register(RegisterCommand{Email: "josh@example.com", Username: "josh", Password: "correct-horse"})
	require.NoError(t, err)

	inactive, err := svc.Register(RegisterCommand{Email: "old@example.com", Username: "oldacct", Password: "pw"})
	require.NoError(t, err)
	users.byID[inactive.ID].Active = false

	cases := []LoginCommand{
		{EmailOrUsername: "nobody@example.com", Password: "whatever"},
		{EmailOrUsername: "josh@example.com", Password: "wrong"},
		{EmailOrUsername: "old@example.com", Password: "pw"},
	}

	// Unknown account, bad password, and inactive account all present the
	// same unauthorized error.
	for _, cmd := range cases {
		_, err := svc.Login(cmd)
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "invalid credentials", appErr.Message)
	}
}

func TestService_Login_RecordsLastLogin(t *testing.T) {
	svc, users := newAuthService(t)

	dto, err := svc.Register(RegisterCommand{Email: "josh@example.com", Username: "josh", Password: "pw"})
	require.NoError(t, err)
	require.Nil(t, users.byID[dto.ID].LastLoginAt)

	_, err = svc.Login(LoginCommand{EmailOrUsername: "josh", Password: "pw"})
	require.NoError(t, err)
	assert.NotNil(t, users.byID[dto.ID].LastLoginAt)
}

func TestService_CurrentUser(t *testing.T) {
	svc, _ := newAuthService(t)

	dto, err := svc.Register(RegisterCommand{Email: "josh@example.com", Username: "josh", Password: "pw"})
	require.NoError(t, err)

	token, err := svc.sessions.Create(dto.ID, "", "")
	require.NoError(t, err)

	current, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, current.ID)

	_, err = svc.CurrentUser("bogus-token")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))

	_, err = svc.CurrentUser("")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestService_Logout(t *testing.T) {
	svc, _ := newAuthService(t)

	dto, err := svc.Register(RegisterCommand{Email: "josh@example.com", Username: "josh", Password: "pw"})
	require.NoError(t, err)

	token, err := svc.sessions.Create(dto.ID, "", "")
	require.NoError(t, err)

	revoked, err := svc.Logout(token)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.CurrentUser(token)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))

	revoked, err = svc.Logout(token)
	require.NoError(t, err)
	assert.False(t, revoked)
}
