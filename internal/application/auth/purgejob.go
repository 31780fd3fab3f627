package auth

import "context"

// SessionPurgeJob adapts the session service's expiry sweep to the
// scheduler's BatchJob interface.
type SessionPurgeJob struct {
	sessions *SessionService
}

func NewSessionPurgeJob(sessions *SessionService) *SessionPurgeJob {
	return &SessionPurgeJob{sessions: sessions}
}

func (j *SessionPurgeJob) Execute(ctx context.Context) (int64, error) {
	return j.sessions.PurgeExpired()
}
