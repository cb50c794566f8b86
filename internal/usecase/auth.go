package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/email"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/metrics"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/repository"
)

// passwordHasher and tokenIssuer are the subsets of the crypto helpers
// the usecase needs. Defined here (point of use) so tests can inject fakes.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

type passwordPolicy func(password string) error

type tokenIssuer interface {
	Issue(subject string) (string, error)
}

type AuthUsecase struct {
	users      repository.UserRepository
	hasher     passwordHasher
	policy     passwordPolicy
	tokens     tokenIssuer
	email      email.Sender
	appBaseURL string
	logger     *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher passwordHasher,
	policy passwordPolicy,
	tokens tokenIssuer,
	emailSender email.Sender,
	appBaseURL string,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		hasher:     hasher,
		policy:     policy,
		tokens:     tokens,
		email:      emailSender,
		appBaseURL: appBaseURL,
		logger:     logger.With("component", "auth_usecase"),
	}
}

// Register creates an unverified user and emails the verification link.
// The email is best-effort: the account exists either way, and the
// verification mail can be re-triggered via password reset support flows.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, name, rawPassword string) (*domain.User, error) {
	if err := u.policy(rawPassword); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verificationToken, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Email:             emailAddr,
		Name:              name,
		PasswordHash:      hash,
		VerificationToken: &verificationToken,
	})
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.Inc()

	link := u.appBaseURL + "/verify/" + verificationToken
	body := fmt.Sprintf(
		`<p>Welcome to Mezan! Confirm your email address to activate your account:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	if err := u.email.Send(ctx, user.Email, "Verify your Mezan account", body); err != nil {
		u.logger.ErrorContext(ctx, "send verification email", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login runs the account-security state machine and returns a bearer
// token on success.
//
// While an account is locked the password is deliberately not checked,
// so neither timing nor response content reveals whether the password
// would have been correct. The email-verification gate runs only after
// the credentials check, so failure accounting applies the same way to
// unverified accounts.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, rawPassword string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeInvalidCredentials).Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	now := time.Now()
	if user.Locked(now) {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeLocked).Inc()
		return "", &domain.AccountLockedError{RetryAfter: user.LockedUntil.Sub(now)}
	}

	ok, err := u.hasher.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		_, lockedUntil, err := u.users.RecordLoginFailure(ctx, user.ID,
			domain.MaxLoginFailures, domain.LockoutDuration)
		if err != nil {
			return "", fmt.Errorf("record login failure: %w", err)
		}
		if lockedUntil != nil && lockedUntil.After(now) {
			metrics.AccountLockoutsTotal.Inc()
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeLocked).Inc()
			u.logger.WarnContext(ctx, "account locked after repeated failures", "user_id", user.ID)
			return "", &domain.AccountLockedError{RetryAfter: lockedUntil.Sub(now)}
		}
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeInvalidCredentials).Inc()
		return "", domain.ErrInvalidCredentials
	}

	if err := u.users.ResetLoginState(ctx, user.ID); err != nil {
		return "", fmt.Errorf("reset login state: %w", err)
	}

	if !user.IsVerified {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeUnverified).Inc()
		return "", domain.ErrEmailNotVerified
	}

	signed, err := u.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return signed, nil
}

// VerifyEmail consumes a verification token. Single-use: the token is
// cleared in the same statement that flips the verified flag.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, verificationToken string) error {
	if verificationToken == "" {
		return domain.ErrTokenInvalid
	}
	return u.users.ConsumeVerificationToken(ctx, verificationToken)
}

// RequestPasswordReset stores a reset token and emails the reset link.
// An unknown email returns nil so the caller's response cannot be used
// to enumerate accounts.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	resetToken, err := generateToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := u.users.SetResetToken(ctx, user.ID, resetToken); err != nil {
		return err
	}

	link := u.appBaseURL + "/reset-password/" + resetToken
	body := fmt.Sprintf(
		`<p>A password reset was requested for your Mezan account. The link below expires in 24 hours:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	if err := u.email.Send(ctx, user.Email, "Reset your Mezan password", body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password. The
// new password goes through the same policy as registration.
func (u *AuthUsecase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return domain.ErrTokenInvalid
	}
	if err := u.policy(newPassword); err != nil {
		return err
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return u.users.ConsumeResetToken(ctx, resetToken, hash)
}

// ChangePassword replaces the password of an authenticated user after
// re-checking the current one.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	ok, err := u.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.ErrIncorrectPassword
	}

	if err := u.policy(newPassword); err != nil {
		return err
	}
	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return u.users.UpdatePasswordHash(ctx, user.ID, hash)
}

// generateToken returns a URL-safe token with 32 bytes of entropy,
// matching secrets.token_urlsafe(32).
func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
