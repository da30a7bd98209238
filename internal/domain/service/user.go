package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unimeet/unimeet-api/internal/adapters/logger"
	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
	"github.com/unimeet/unimeet-api/internal/domain/dto"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"github.com/unimeet/unimeet-api/internal/domain/utils/mail"
	"github.com/unimeet/unimeet-api/internal/domain/utils/validator"
	"github.com/unimeet/unimeet-api/pkg/jwt"
)

type userStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
}

type tokenStorage interface {
	Set(ctx context.Context, token, email string, expiration time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Clear(ctx context.Context, token string) error
}

type codeStorage interface {
	Set(ctx context.Context, email, code string, expiration time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Clear(ctx context.Context, email string) error
}

type userMailer interface {
	Send(to, subject, htmlBody string) error
}

const (
	verificationTokenTTL = 15 * time.Minute
	resetCodeTTL         = 10 * time.Minute
	minPasswordLength    = 8
)

type UserService struct {
	userStorage  userStorage
	tokenStorage tokenStorage
	codeStorage  codeStorage
	mailer       userMailer
	jwtManager   *jwt.Manager
	logger       *logger.Logger

	allowedEmailDomain string
	clientBaseURL      string
}

func NewUserService(
	userStorage userStorage,
	tokenStorage tokenStorage,
	codeStorage codeStorage,
	mailer userMailer,
	jwtManager *jwt.Manager,
	allowedEmailDomain string,
	clientBaseURL string,
	logger *logger.Logger,
) *UserService {
	return &UserService{
		userStorage:        userStorage,
		tokenStorage:       tokenStorage,
		codeStorage:        codeStorage,
		mailer:             mailer,
		jwtManager:         jwtManager,
		logger:             logger,
		allowedEmailDomain: allowedEmailDomain,
		clientBaseURL:      clientBaseURL,
	}
}

// Login checks the credentials and issues a session token. Accounts that are
// deactivated, unconfirmed or still awaiting their first password are
// rejected with distinct errors so the client can route the user onwards.
func (s *UserService) Login(ctx context.Context, email, password string) (*dto.LoginResult, error) {
	email, err := validator.StudentEmail(email, s.allowedEmailDomain)
	if err != nil {
		return nil, err
	}

	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errorz.ErrUserInactive
	}
	if !user.EmailConfirmed {
		return nil, errorz.ErrEmailNotConfirmed
	}
	if user.RequiresPasswordReset || user.PasswordHash == "" {
		return nil, errorz.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorz.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID, string(user.Role), user.ManagedClubID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		UserID:        user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          string(user.Role),
		ManagedClubID: user.ManagedClubID,
		Token:         token,
	}, nil
}

// RequestVerification mails a one-time link that lets the student confirm
// their address and set a first password. Returns when the token expires.
func (s *UserService) RequestVerification(ctx context.Context, email, fullName string) (time.Time, error) {
	email, err := validator.StudentEmail(email, s.allowedEmailDomain)
	if err != nil {
		return time.Time{}, err
	}

	user, err := s.userStorage.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.EmailConfirmed && !user.RequiresPasswordReset {
			return time.Time{}, errorz.ErrEmailInUse
		}
		if fullName != "" && user.FullName != fullName {
			user.FullName = fullName
			if _, err := s.userStorage.Update(ctx, user); err != nil {
				return time.Time{}, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.userStorage.Create(ctx, &entity.User{
			Email:                     email,
			FullName:                  fullName,
			Role:                      entity.RoleMember,
			IsActive:                  true,
			RequiresPasswordReset:     true,
			EmailNotificationsEnabled: true,
			EventNotificationsEnabled: true,
		})
		if err != nil {
			return time.Time{}, err
		}
	default:
		return time.Time{}, err
	}

	token, err := randomHex(32)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.tokenStorage.Set(ctx, token, email, verificationTokenTTL); err != nil {
		return time.Time{}, err
	}

	expiresAt := time.Now().UTC().Add(verificationTokenTTL)
	link := fmt.Sprintf("%s/verify-email?token=%s", s.clientBaseURL, token)
	body, err := mail.VerificationBody(user.FullName, link, expiresAt)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.mailer.Send(email, "Confirm your email address", body); err != nil {
		return time.Time{}, err
	}

	s.logger.Infof("verification mail sent to %s", email)
	return expiresAt, nil
}

// VerifyEmail resolves a verification token to the account it was issued
// for. The token stays valid until the password is set.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	email, err := s.tokenStorage.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.getByEmail(ctx, email)
}

// SetPassword completes verification: stores the password, confirms the
// address and burns the token.
func (s *UserService) SetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", errorz.ErrValidation, minPasswordLength)
	}

	email, err := s.tokenStorage.Get(ctx, token)
	if err != nil {
		return err
	}
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.PasswordHash = string(hash)
	user.EmailConfirmed = true
	user.RequiresPasswordReset = false
	user.PasswordSetAt = &now
	if _, err := s.userStorage.Update(ctx, user); err != nil {
		return err
	}

	if err := s.tokenStorage.Clear(ctx, token); err != nil {
		s.logger.Warnf("clear verification token for %s: %v", email, err)
	}
	return nil
}

// RequestPasswordReset mails a short-lived numeric code. Unknown or
// ineligible addresses are answered identically to known ones, the caller
// cannot probe which emails exist.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email, err := validator.StudentEmail(email, s.allowedEmailDomain)
	if err != nil {
		return err
	}

	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !user.IsActive || !user.EmailConfirmed {
		return nil
	}

	code, err := randomDigits(6)
	if err != nil {
		return err
	}
	if err := s.codeStorage.Set(ctx, email, code, resetCodeTTL); err != nil {
		return err
	}

	body, err := mail.ResetCodeBody(user.FullName, code, resetCodeTTL)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(email, "Your password reset code", body); err != nil {
		return err
	}

	s.logger.Infof("password reset code sent to %s", email)
	return nil
}

// ResetPassword exchanges a valid reset code for a new password.
func (s *UserService) ResetPassword(ctx context.Context, email, code, password string) error {
	email, err := validator.StudentEmail(email, s.allowedEmailDomain)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", errorz.ErrValidation, minPasswordLength)
	}

	stored, err := s.codeStorage.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored != code {
		return errorz.ErrInvalidCode
	}

	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.PasswordHash = string(hash)
	user.RequiresPasswordReset = false
	user.PasswordSetAt = &now
	if _, err := s.userStorage.Update(ctx, user); err != nil {
		return err
	}

	if err := s.codeStorage.Clear(ctx, email); err != nil {
		s.logger.Warnf("clear reset code for %s: %v", email, err)
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetNotificationPreferences(ctx context.Context, userID uint) (*dto.NotificationPreferences, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationPreferences{
		EmailNotificationsEnabled: user.EmailNotificationsEnabled,
		EventNotificationsEnabled: user.EventNotificationsEnabled,
	}, nil
}

// UpdateNotificationPreferences changes only the flags that are present.
func (s *UserService) UpdateNotificationPreferences(ctx context.Context, userID uint, emailEnabled, eventEnabled *bool) (*dto.NotificationPreferences, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if emailEnabled != nil {
		user.EmailNotificationsEnabled = *emailEnabled
	}
	if eventEnabled != nil {
		user.EventNotificationsEnabled = *eventEnabled
	}
	if _, err := s.userStorage.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.NotificationPreferences{
		EmailNotificationsEnabled: user.EmailNotificationsEnabled,
		EventNotificationsEnabled: user.EventNotificationsEnabled,
	}, nil
}

// GetAll lists every account, admin only, ordered by email.
func (s *UserService) GetAll(ctx context.Context) ([]dto.User, error) {
	users, err := s.userStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.User, 0, len(users))
	for _, u := range users {
		result = append(result, dto.NewUserFromEntity(u))
	}
	return result, nil
}

// UpdateRole assigns a role; moving a user to manager binds them to a club,
// any other role clears the binding.
func (s *UserService) UpdateRole(ctx context.Context, userID uint, role entity.Role, managedClubID *uint) (*dto.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if role == entity.RoleManager {
		user.ManagedClubID = managedClubID
	} else {
		user.ManagedClubID = nil
	}

	if _, err := s.userStorage.Update(ctx, user); err != nil {
		return nil, err
	}

	u := dto.NewUserFromEntity(*user)
	return &u, nil
}

// ToggleActive flips the account's active flag. Inactive users cannot log
// in and are skipped when notifications are enqueued.
func (s *UserService) ToggleActive(ctx context.Context, userID uint) (*dto.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if _, err := s.userStorage.Update(ctx, user); err != nil {
		return nil, err
	}

	u := dto.NewUserFromEntity(*user)
	return &u, nil
}

func (s *UserService) getByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func randomHex(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
