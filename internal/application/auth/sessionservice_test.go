package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// fakeSessionRepo is an in-memory SessionRepository keyed by token. It
// enforces token uniqueness the way the real store's unique index does.
type fakeSessionRepo struct {
	sessions map[string]*user.Session
	nextID   uint

	getCalls      int
	conflictsLeft int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*user.Session)}
}

func (r *fakeSessionRepo) Create(s *user.Session) error {
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return errors.NewConflictError("session token already exists")
	}
	if _, exists := r.sessions[s.Token]; exists {
		return errors.NewConflictError("session token already exists")
	}
	r.nextID++
	s.ID = r.nextID
	copied := *s
	r.sessions[s.Token] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByToken(token string) (*user.Session, error) {
	r.getCalls++
	s, ok := r.sessions[token]
	if !ok {
		return nil, errors.NewNotFoundError("session not found")
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) ExistsByToken(token string) (bool, error) {
	_, ok := r.sessions[token]
	return ok, nil
}

func (r *fakeSessionRepo) DeleteByToken(token string) (bool, error) {
	if _, ok := r.sessions[token]; !ok {
		return false, nil
	}
	delete(r.sessions, token)
	return true, nil
}

func (r *fakeSessionRepo) DeleteByUserID(userID uint) (int64, error) {
	var count int64
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	var count int64
	for token, s := range r.sessions {
		if !s.ExpiresAt.After(cutoff) {
			delete(r.sessions, token)
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func newFakeUserRepo(ids ...uint) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*user.User)}
	for _, id := range ids {
		r.users[id] = &user.User{ID: id, Active: true}
	}
	return r
}

func (r *fakeUserRepo) Create(u *user.User) error { return nil }

func (r *fakeUserRepo) GetByID(id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmailOrUsername(login string) (*user.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error)       { return false, nil }
func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) { return false, nil }
func (r *fakeUserRepo) Update(u *user.User) error                      { return nil }

const testTTL = 7 * 24 * time.Hour

func newTestService(sessions user.SessionRepository, users user.Repository) *SessionService {
	return NewSessionService(sessions, users, testTTL, logger.NewLogger())
}

func TestSessionService_CreateAndValidate(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(1))

	token, err := svc.Create(1, "Mozilla/5.0", "203.0.113.9")
	require.NoError(t, err)
	assert.Len(t, token, 43)

	userID, ok, err := svc.Validate(token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(1), userID)
}

func TestSessionService_Create_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), newFakeUserRepo())

	_, err := svc.Create(99, "", "")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSessionService_Create_DistinctTokens(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(1))

	first, err := svc.Create(1, "", "")
	require.NoError(t, err)
	second, err := svc.Create(1, "", "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, repo.sessions, 2)
}

func TestSessionService_Create_RetriesOnConflict(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.conflictsLeft = 3
	svc := newTestService(repo, newFakeUserRepo(1))

	token, err := svc.Create(1, "", "")
	require.NoError(t, err)

	_, ok, err := svc.Validate(token)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionService_Create_ConstraintBackstop(t *testing.T) {
	repo := newFakeSessionRepo()
	// More conflicts than the checked retry budget plus the final attempt.
	repo.conflictsLeft = 6
	svc := newTestService(repo, newFakeUserRepo(1))

	_, err := svc.Create(1, "", "")
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestSessionService_Validate_BlankToken(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(1))

	for _, token := range []string{"", "   ", "\t\n"} {
		userID, ok, err := svc.Validate(token)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, userID)
	}

	// Blank tokens never reach the store.
	assert.Zero(t, repo.getCalls)
}

func TestSessionService_Validate_UnknownToken(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), newFakeUserRepo(1))

	userID, ok, err := svc.Validate("nonexistent-token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, userID)
}

func TestSessionService_Validate_Expiry(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(7))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	token, err := svc.Create(7, "", "")
	require.NoError(t, err)

	// Still valid one second before expiry.
	svc.now = func() time.Time { return base.Add(testTTL - time.Second) }
	_, ok, err := svc.Validate(token)
	require.NoError(t, err)
	assert.True(t, ok)

	// Invalid at the exact expiry instant.
	svc.now = func() time.Time { return base.Add(testTTL) }
	_, ok, err = svc.Validate(token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Eight days out the session reads as absent.
	svc.now = func() time.Time { return base.Add(8 * 24 * time.Hour) }
	_, ok, err = svc.Validate(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionService_Revoke(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(1))

	token, err := svc.Create(1, "", "")
	require.NoError(t, err)

	revoked, err := svc.Revoke(token)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, ok, err := svc.Validate(token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Second revocation of the same token is a no-op, not an error.
	revoked, err = svc.Revoke(token)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionService_RevokeAll(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(1, 2))

	tokenA1, err := svc.Create(1, "", "")
	require.NoError(t, err)
	tokenA2, err := svc.Create(1, "", "")
	require.NoError(t, err)
	tokenB, err := svc.Create(2, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(1))

	for _, token := range []string{tokenA1, tokenA2} {
		_, ok, err := svc.Validate(token)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// The other user's session is untouched.
	userID, ok, err := svc.Validate(tokenB)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(2), userID)
}

func TestSessionService_PurgeExpired(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, newFakeUserRepo(1))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return base }
	expired1, err := svc.Create(1, "", "")
	require.NoError(t, err)
	expired2, err := svc.Create(1, "", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(testTTL) }
	live, err := svc.Create(1, "", "")
	require.NoError(t, err)

	// The first two sessions expire exactly at base+TTL; the cutoff is
	// inclusive so both are swept.
	count, err := svc.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, token := range []string{expired1, expired2} {
		_, exists := repo.sessions[token]
		assert.False(t, exists)
	}
	_, exists := repo.sessions[live]
	assert.True(t, exists)

	// A second sweep finds nothing.
	count, err = svc.PurgeExpired()
	require.NoError(t, err)
	assert.Zero(t, count)
}
