package auth

import (
	"strings"

	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// PasswordHasher abstracts password hashing so the service never sees raw
// bcrypt details.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// UserDTO is the account representation returned to the HTTP layer.
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterCommand struct {
	Email    string
	Username string
	Password string
}

type LoginCommand struct {
	EmailOrUsername string
	Password        string
}

// Service implements registration, login, logout, and current-user lookup on
// top of the session service. Credential failures and inactive accounts are
// all reported as the same unauthorized error so clients cannot enumerate
// which condition occurred.
type Service struct {
	users    user.Repository
	sessions *SessionService
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewService(users user.Repository, sessions *SessionService, hasher PasswordHasher, log logger.Interface) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   log,
	}
}

func (s *Service) Register(cmd RegisterCommand) (*UserDTO, error) {
	email := user.NormalizeEmail(cmd.Email)
	username := strings.TrimSpace(cmd.Username)

	if exists, err := s.users.ExistsByEmail(email); err != nil {
		return nil, err
	} else if exists {
		return nil, errors.NewConflictError("email already in use")
	}

	if exists, err := s.users.ExistsByUsername(username); err != nil {
		return nil, err
	} else if exists {
		return nil, errors.NewConflictError("username already in use")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	newUser, err := user.NewUser(email, username, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.users.Create(newUser); err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", newUser.ID, "username", newUser.Username)
	return toUserDTO(newUser), nil
}

func (s *Service) Login(cmd LoginCommand) (*UserDTO, error) {
	login := strings.TrimSpace(cmd.EmailOrUsername)

	account, err := s.users.GetByEmailOrUsername(login)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !account.Active {
		// Presented identically to a bad password so account state cannot be probed.
		s.logger.Warnw("login attempt on inactive account", "user_id", account.ID)
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	if err := s.hasher.Verify(cmd.Password, account.PasswordHash); err != nil {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	account.RecordLogin()
	if err := s.users.Update(account); err != nil {
		// Last-login bookkeeping must not block a successful login.
		s.logger.Warnw("failed to record last login", "user_id", account.ID, "error", err)
	}

	return toUserDTO(account), nil
}

// CurrentUser resolves the session token to the account it belongs to.
// Any invalid token state reads as "no identity".
func (s *Service) CurrentUser(token string) (*UserDTO, error) {
	userID, ok, err := s.sessions.Validate(token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewUnauthorizedError("not authenticated")
	}

	account, err := s.users.GetByID(userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("not authenticated")
		}
		return nil, err
	}

	return toUserDTO(account), nil
}

// Logout revokes the session for the token. Revoking an unknown token is a
// successful no-op; the cookie is cleared either way.
func (s *Service) Logout(token string) (bool, error) {
	return s.sessions.Revoke(token)
}

// LogoutAll revokes every session owned by the user.
func (s *Service) LogoutAll(userID uint) error {
	return s.sessions.RevokeAll(userID)
}

func toUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
