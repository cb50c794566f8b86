package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrIncorrectPassword  = errors.New("incorrect current password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrTokenExpired       = errors.New("token has expired")
)

const (
	// MaxLoginFailures is the number of consecutive failed login attempts
	// that triggers a lockout.
	MaxLoginFailures = 5

	// LockoutDuration is how long an account stays locked after the
	// failure threshold is hit. Expiry is lazy: the account unlocks on
	// the first attempt after this window, no background timer involved.
	LockoutDuration = 15 * time.Minute
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	IsVerified        bool
	VerificationToken *string

	ResetToken       *string
	ResetRequestedAt *time.Time

	FailedLoginAttempts int
	LockedUntil         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether the account is locked out as of now.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// AccountLockedError is returned on login attempts against a locked
// account. It carries the remaining wait so callers can tell the user
// how long to back off.
type AccountLockedError struct {
	RetryAfter time.Duration
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, try again in %d minute(s)", e.Minutes())
}

// Minutes returns the remaining wait rounded up to whole minutes, never
// less than 1.
func (e *AccountLockedError) Minutes() int {
	m := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if m < 1 {
		m = 1
	}
	return m
}
