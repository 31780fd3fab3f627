package user

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// tokenBytes is the amount of entropy in a session token. 32 bytes encode to
// a 43-character base64url string, well within the 255-character column.
const tokenBytes = 32

// Session represents one authenticated browser session. Sessions are immutable
// once created; revocation and expiry purging both delete the row, so a
// session is valid exactly when its row exists and ExpiresAt is in the future.
type Session struct {
	ID        uint
	Token     string
	UserID    uint
	UserAgent string
	IPAddress string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewSession builds a session for the given user. The token is supplied by
// the caller so the session service can run its collision-avoidance loop
// before constructing the entity. UserAgent and IPAddress are audit fields
// only; nothing reads them back for request handling.
func NewSession(userID uint, token, userAgent, ipAddress string, now time.Time, ttl time.Duration) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// IsExpiredAt reports whether the session is no longer valid at the given
// instant. Validity requires ExpiresAt to be strictly after now.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// GenerateToken creates a cryptographically secure opaque session token:
// 256 bits from crypto/rand encoded as URL-safe base64 without padding, so it
// can be embedded directly in a cookie value or a URL.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SessionRepository persists session records. Implementations must enforce
// token uniqueness atomically at the storage layer; that constraint is the
// backstop for the create-time collision retry loop.
type SessionRepository interface {
	Create(session *Session) error
	GetByToken(token string) (*Session, error)
	ExistsByToken(token string) (bool, error)
	// DeleteByToken removes a single session and reports whether a row was
	// actually deleted. A missing token is not an error.
	DeleteByToken(token string) (bool, error)
	// DeleteByUserID removes every session owned by the user and returns the
	// number of rows deleted.
	DeleteByUserID(userID uint) (int64, error)
	// DeleteExpiredBefore removes all sessions with ExpiresAt at or before the
	// cutoff and returns the number of rows deleted.
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}
