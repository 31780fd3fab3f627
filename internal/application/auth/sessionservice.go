package auth

import (
	"strings"
	"time"

	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// tokenGenerationAttempts bounds the checked collision-avoidance loop in
// Create. A collision on a 256-bit token is astronomically unlikely; after
// the bounded attempts one final unchecked insert relies on the store's
// unique constraint as the backstop.
const tokenGenerationAttempts = 5

// SessionService owns the session lifecycle: creation after a successful
// authentication, cookie-token validation on each request, revocation on
// logout, and the periodic expiry sweep. It holds no in-process mutable
// state; concurrent calls coordinate only through the store's atomicity.
type SessionService struct {
	sessions user.SessionRepository
	users    user.Repository
	ttl      time.Duration
	logger   logger.Interface

	// now is injectable for deterministic expiry tests.
	now func() time.Time
}

func NewSessionService(
	sessions user.SessionRepository,
	users user.Repository,
	ttl time.Duration,
	log logger.Interface,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
		logger:   log,
		now:      time.Now,
	}
}

// Create issues a new session for the user and returns the opaque token.
// The user must exist; userAgent and ipAddress are stored for auditing only.
func (s *SessionService) Create(userID uint, userAgent, ipAddress string) (string, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.IsNotFoundError(err) {
			return "", errors.NewNotFoundError("user not found")
		}
		return "", err
	}

	now := s.now()

	for i := 0; i < tokenGenerationAttempts; i++ {
		token, err := user.GenerateToken()
		if err != nil {
			return "", err
		}

		exists, err := s.sessions.ExistsByToken(token)
		if err != nil {
			return "", err
		}
		if exists {
			s.logger.Warnw("session token collision, regenerating", "attempt", i+1)
			continue
		}

		session, err := user.NewSession(userID, token, userAgent, ipAddress, now, s.ttl)
		if err != nil {
			return "", err
		}

		if err := s.sessions.Create(session); err != nil {
			if errors.IsConflictError(err) {
				// Lost an insert race on the same token; retry with a new one.
				s.logger.Warnw("session insert conflict, regenerating", "attempt", i+1)
				continue
			}
			return "", err
		}
		return token, nil
	}

	// Final unchecked attempt; the store's unique constraint enforces
	// correctness if this token collides too.
	token, err := user.GenerateToken()
	if err != nil {
		return "", err
	}
	session, err := user.NewSession(userID, token, userAgent, ipAddress, now, s.ttl)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(session); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a session token to its owning user ID. A blank token
// resolves to no identity without touching the store. Expired-but-unpurged
// rows are logically invalid; Validate is read-only and never deletes them.
func (s *SessionService) Validate(token string) (uint, bool, error) {
	if strings.TrimSpace(token) == "" {
		return 0, false, nil
	}

	session, err := s.sessions.GetByToken(token)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return 0, false, nil
		}
		return 0, false, err
	}

	if session.IsExpiredAt(s.now()) {
		return 0, false, nil
	}

	return session.UserID, true, nil
}

// Revoke deletes the session for the given token and reports whether one
// existed. A missing token is a normal outcome, not an error; the boundary
// layer clears the client cookie regardless.
func (s *SessionService) Revoke(token string) (bool, error) {
	return s.sessions.DeleteByToken(token)
}

// RevokeAll deletes every session owned by the user ("log out everywhere").
func (s *SessionService) RevokeAll(userID uint) error {
	count, err := s.sessions.DeleteByUserID(userID)
	if err != nil {
		return err
	}
	s.logger.Infow("revoked all sessions", "user_id", userID, "count", count)
	return nil
}

// PurgeExpired deletes every session whose expiry is at or before now and
// returns the number removed. It is idempotent and safe to run concurrently
// with any other operation.
func (s *SessionService) PurgeExpired() (int64, error) {
	return s.sessions.DeleteExpiredBefore(s.now())
}
