package repository

import (
	"context"
	"time"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. A taken email yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// RecordLoginFailure bumps the failed-attempt counter in a single
	// atomic statement. When the counter reaches threshold the row is
	// locked for lockFor and the counter resets to zero. Returns the
	// counter and lockout expiry as they stand after the update.
	RecordLoginFailure(ctx context.Context, id string, threshold int, lockFor time.Duration) (int, *time.Time, error)

	// ResetLoginState zeroes the failed-attempt counter and clears any
	// lockout. Called on successful login.
	ResetLoginState(ctx context.Context, id string) error

	// ConsumeVerificationToken marks the matching user verified and
	// clears the token in one statement. No match yields domain.ErrTokenInvalid.
	ConsumeVerificationToken(ctx context.Context, verificationToken string) error

	SetResetToken(ctx context.Context, id, resetToken string) error

	// ConsumeResetToken swaps in the new password hash and clears the
	// token in one statement. No match yields domain.ErrTokenInvalid.
	ConsumeResetToken(ctx context.Context, resetToken, newPasswordHash string) error

	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error

	// PurgeExpiredResetTokens clears reset tokens requested before the
	// cutoff and reports how many rows were touched.
	PurgeExpiredResetTokens(ctx context.Context, cutoff time.Time) (int, error)
}
