package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository"
)

var (
	ErrUserNotFound          = errors.New("we were unable to find a user associated with that email address")
	ErrTokenInvalidOrExpired = errors.New("we were unable to verify your email address, that link may have expired")
)

// VerificationService owns the email-verification token lifecycle:
// issued at registration or resend, consumed on a successful verify,
// or left to expire.
type VerificationService struct {
	userRepository  repository.UserRepository
	tokenRepository repository.TokenRepository
	emailService    *EmailService
	tokenExpiry     time.Duration
}

func NewVerificationService(
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	emailService *EmailService,
	tokenExpiry time.Duration,
) *VerificationService {
	return &VerificationService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		emailService:    emailService,
		tokenExpiry:     tokenExpiry,
	}
}

// NewToken builds an unsaved verification token for the user: 32 random
// bytes, hex-encoded, expiring after the configured TTL.
func (s *VerificationService) NewToken(userID string) (*model.Token, error) {
	value, err := generateTokenValue()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.Token{
		UserID:    userID,
		Token:     value,
		ExpiresAt: time.Now().Add(s.tokenExpiry),
		CreatedAt: time.Now(),
	}, nil
}

// Consume verifies the user's email address with a previously issued token.
//
// The user is looked up before the token on purpose: a user who re-opens an
// already-used link must see "already verified", not a misleading
// expired-token message. The returned bool reports whether the user was
// already verified (a repeatable no-op, not an error).
func (s *VerificationService) Consume(email, token string) (alreadyVerified bool, err error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Verified {
		return true, nil
	}

	err = s.tokenRepository.Consume(user.ID, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return false, ErrTokenInvalidOrExpired
		}
		return false, fmt.Errorf("failed to consume token: %w", err)
	}

	slog.Info("email verified", "user_id", user.ID, "email", user.Email)
	return false, nil
}

// Resend issues a brand-new token and mails the verification link. Prior
// outstanding tokens stay live until they expire, so a link from an earlier
// email still works.
func (s *VerificationService) Resend(email string) (alreadyVerified bool, err error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Verified {
		return true, nil
	}

	token, err := s.NewToken(user.ID)
	if err != nil {
		return false, err
	}

	err = s.tokenRepository.Create(token)
	if err != nil {
		return false, fmt.Errorf("failed to create token: %w", err)
	}

	err = s.emailService.SendVerificationEmail(user.Email, user.FirstName, token.Token)
	if err != nil {
		return false, fmt.Errorf("failed to send verification email: %w", err)
	}

	slog.Info("verification link resent", "user_id", user.ID, "email", user.Email)
	return false, nil
}

func generateTokenValue() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
