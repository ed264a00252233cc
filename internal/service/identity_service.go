package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/leafscan-service/internal/auth"
	"github.com/spec-kit/leafscan-service/internal/config"
	"github.com/spec-kit/leafscan-service/internal/domain"
	"github.com/spec-kit/leafscan-service/internal/events"
	"github.com/spec-kit/leafscan-service/internal/notify"
	"github.com/spec-kit/leafscan-service/internal/repository"
	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

// SendLimiter bounds how often codes can be requested per address. A nil
// limiter means unlimited.
type SendLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// IdentityService coordinates signup, verification, login and credential
// rotation. Each account moves Unregistered -> PendingVerification -> Active;
// resending a code keeps the account in PendingVerification.
type IdentityService struct {
	users      repository.UserRepository
	ledger     *OTPLedger
	mailer     notify.Mailer
	tokenMgr   *auth.TokenManager
	limiter    SendLimiter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	appName    string
	otpTTLMin  int
}

// IdentityDependencies encapsulates collaborator requirements.
type IdentityDependencies struct {
	UserRepo   repository.UserRepository
	Ledger     *OTPLedger
	Mailer     notify.Mailer
	Limiter    SendLimiter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:      deps.UserRepo,
		ledger:     deps.Ledger,
		mailer:     deps.Mailer,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		appName:    cfg.App.Name,
		otpTTLMin:  cfg.OTP.TTLMinutes,
	}
}

// Signup creates an inactive account and sends a verification code. If
// delivery fails the account and code already persist, so the caller can
// recover with a resend; that partial state is deliberate.
func (s *IdentityService) Signup(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	// Display-name forms ("Grower <g@x.com>") parse but are not a bare
	// address; only the latter may persist.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperrors.NewValidationError("invalid email address", nil)
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password is required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = domain.DefaultName(email)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Active:       false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: email})

	if err := s.sendCode(ctx, email, domain.OTPPurposeVerification); err != nil {
		return user, apperrors.NewDeliveryFailed(err)
	}
	return user, nil
}

// VerifyOtp activates the account on a valid code and issues a session.
func (s *IdentityService) VerifyOtp(ctx context.Context, email, code string) (*domain.User, string, time.Time, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("user", nil)
		}
		return nil, "", time.Time{}, err
	}

	ok, err := s.ledger.Verify(ctx, email, code, domain.OTPPurposeVerification)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !ok {
		return nil, "", time.Time{}, apperrors.NewInvalidOTP()
	}

	if err := s.users.Activate(ctx, user.ID); err != nil {
		return nil, "", time.Time{}, err
	}
	user.Active = true

	s.publish(ctx, events.EventUserVerified, user.ID, nil)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account. An absent user and a wrong password are
// indistinguishable to the caller. An unverified account gets a fresh code
// and a verification-required signal instead of a session.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthFailed()
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewAuthFailed()
	}

	if !user.Active {
		if err := s.sendCode(ctx, email, domain.OTPPurposeVerification); err != nil {
			s.logger.Warn("verification resend failed during login",
				zap.String("user_id", user.ID), zap.Error(err))
		}
		return nil, "", time.Time{}, apperrors.NewVerificationRequired()
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now

	s.publish(ctx, events.EventUserLoggedIn, user.ID, nil)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ResendOtp re-issues and delivers a verification code, superseding any
// prior unused code for the address.
func (s *IdentityService) ResendOtp(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if err := s.allowSend(ctx, email); err != nil {
		return err
	}

	if err := s.sendCode(ctx, email, domain.OTPPurposeVerification); err != nil {
		return apperrors.NewDeliveryFailed(err)
	}
	return nil
}

// ForgotPassword never reveals whether the address is registered: unknown
// addresses and delivery failures both produce the same success-shaped
// outcome, with failures only logged.
func (s *IdentityService) ForgotPassword(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	if err := s.allowSend(ctx, email); err != nil {
		return err
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	if err := s.sendCode(ctx, email, domain.OTPPurposePasswordReset); err != nil {
		s.logger.Warn("password reset delivery failed", zap.Error(err))
	}
	return nil
}

// ResetPassword replaces the hash after a valid reset code. No session is
// issued; the user logs in with the new password.
func (s *IdentityService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if newPassword == "" {
		return apperrors.NewValidationError("new password is required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	ok, err := s.ledger.Verify(ctx, email, code, domain.OTPPurposePasswordReset)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewInvalidOTP()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, user.ID, events.PasswordChangedPayload{Via: "reset"})
	return nil
}

// ChangePassword rotates the hash for an authenticated caller after
// re-checking the current password.
func (s *IdentityService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password is required", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewAuthFailed()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, userID, events.PasswordChangedPayload{Via: "change"})
	return nil
}

// Me returns the caller's account.
func (s *IdentityService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates mutable profile fields and returns the fresh record.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, name *string) (*domain.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// allowSend consults the send limiter before another code leaves for the
// address.
func (s *IdentityService) allowSend(ctx context.Context, email string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.NewRateLimited("too many code requests; try again later")
	}
	return nil
}

// sendCode issues a fresh code through the ledger and delivers it. The
// ledger write commits before the send starts; a send failure never rolls
// it back.
func (s *IdentityService) sendCode(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	code, err := s.ledger.Issue(ctx, email, purpose)
	if err != nil {
		return err
	}

	var subject, body string
	switch purpose {
	case domain.OTPPurposePasswordReset:
		subject, body = notify.PasswordResetEmail(s.appName, code, s.otpTTLMin)
	default:
		subject, body = notify.VerificationEmail(s.appName, code, s.otpTTLMin)
	}
	return s.mailer.Send(ctx, email, subject, body)
}

func (s *IdentityService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
