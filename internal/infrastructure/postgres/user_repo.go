package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
)

const userColumns = `id, email, name, password_hash, is_verified, verification_token,
       reset_token, reset_requested_at, failed_login_attempts, locked_until,
       created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash, verification_token)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.VerificationToken)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// RecordLoginFailure is a single conditional UPDATE so two concurrent
// failed attempts cannot under-count: each statement sees the committed
// counter of the previous one. Hitting the threshold arms the lockout
// and resets the counter, so the post-lockout cycle starts from zero.
func (r *UserRepository) RecordLoginFailure(ctx context.Context, id string, threshold int, lockFor time.Duration) (int, *time.Time, error) {
	query := `
		UPDATE users
		SET failed_login_attempts = CASE WHEN failed_login_attempts + 1 >= $2
		                                 THEN 0
		                                 ELSE failed_login_attempts + 1 END,
		    locked_until          = CASE WHEN failed_login_attempts + 1 >= $2
		                                 THEN NOW() + make_interval(secs => $3)
		                                 ELSE locked_until END,
		    updated_at            = NOW()
		WHERE id = $1
		RETURNING failed_login_attempts, locked_until`

	var (
		attempts    int
		lockedUntil *time.Time
	)
	err := r.pool.QueryRow(ctx, query, id, threshold, lockFor.Seconds()).
		Scan(&attempts, &lockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, domain.ErrUserNotFound
		}
		return 0, nil, fmt.Errorf("record login failure: %w", err)
	}
	return attempts, lockedUntil, nil
}

func (r *UserRepository) ResetLoginState(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET failed_login_attempts = 0, locked_until = NULL, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reset login state: %w", err)
	}
	return nil
}

func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, verificationToken string) error {
	var id string
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET is_verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1
		RETURNING id`, verificationToken).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("consume verification token: %w", err)
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, resetToken string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_token = $2, reset_requested_at = NOW(), updated_at = NOW()
		WHERE id = $1`, id, resetToken)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, resetToken, newPasswordHash string) error {
	var id string
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_requested_at = NULL,
		    updated_at = NOW()
		WHERE reset_token = $1
		RETURNING id`, resetToken, newPasswordHash).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("consume reset token: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (r *UserRepository) PurgeExpiredResetTokens(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_token = NULL, reset_requested_at = NULL, updated_at = NOW()
		WHERE reset_token IS NOT NULL AND reset_requested_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge reset tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsVerified, &u.VerificationToken,
		&u.ResetToken, &u.ResetRequestedAt, &u.FailedLoginAttempts, &u.LockedUntil,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
