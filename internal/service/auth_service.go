package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"supermanager/internal/auth"
	"supermanager/internal/model"
	"supermanager/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// authService implements AuthService. Passwords are stored only as
// bcrypt hashes; login compares against the hash and never against
// stored plaintext.
type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// Register validates the request and creates an unverified account.
// The verification code is logged instead of mailed; mail delivery is
// outside this service.
func (s *authService) Register(ctx context.Context, input *model.RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)

	if email == "" || input.Password == "" || input.ConfirmPassword == "" || name == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "all fields are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, model.NewDomainError(model.ErrCodeValidation, "invalid email address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, model.NewDomainError(model.ErrCodeValidation,
			fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	}
	if input.Password != input.ConfirmPassword {
		return nil, model.NewDomainError(model.ErrCodeValidation, "passwords do not match")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to check existing user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if existing != nil {
		return nil, model.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate verification code")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		Email:            email,
		Name:             name,
		PasswordHash:     string(hash),
		Verified:         false,
		VerificationCode: code,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, err
	}
	user.ID = id

	// No mail transport here; the code is surfaced through the log so
	// the demo verify flow can be completed.
	s.logger.Info().
		Int64("user_id", id).
		Str("email", email).
		Str("verification_code", code).
		Msg("user registered")

	return user, nil
}

// Login checks the credentials and returns a signed session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, creds *model.Credentials) (*model.AuthToken, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	if email == "" || creds.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil {
		s.logger.Debug().Str("email", email).Msg("login for unknown email")
		return nil, model.ErrInvalidCreds
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Debug().Str("email", email).Msg("wrong password")
		return nil, model.ErrInvalidCreds
	}

	if !user.Verified {
		return nil, model.ErrEmailNotVerified
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.tokenTTL, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to sign token")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", email).Msg("user logged in")
	return &model.AuthToken{Token: token, User: user}, nil
}

// VerifyEmail flips the verified flag when the code matches.
func (s *authService) VerifyEmail(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return fmt.Errorf("failed to verify email: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	if user.Verified {
		return nil
	}

	if code == "" || code != user.VerificationCode {
		return model.NewDomainError(model.ErrCodeValidation, "invalid verification code")
	}

	if err := s.userRepo.SetVerified(ctx, user.ID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to mark verified")
		return err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", email).Msg("email verified")
	return nil
}

// RequestPasswordReset acknowledges a reset request for a known email.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return fmt.Errorf("failed to request password reset: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", email).Msg("password reset requested")
	return nil
}

// generateVerificationCode produces a random six digit code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
