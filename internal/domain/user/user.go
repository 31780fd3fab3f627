package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User is the account aggregate for the portfolio backend. Roles are kept as
// plain strings since the site only distinguishes owner and visitor accounts.
type User struct {
	ID           uint
	Email        string
	Username     string
	PasswordHash string
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(email, username, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", err)
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, fmt.Errorf("username must be between 3 and 50 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now()
	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RecordLogin updates the last-login bookkeeping timestamp.
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// NormalizeEmail lowercases and trims an email address for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	Create(user *User) error
	GetByID(id uint) (*User, error)
	GetByEmailOrUsername(login string) (*User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	Update(user *User) error
}
