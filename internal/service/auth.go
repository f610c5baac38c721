package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken = errors.New("a user with this email already exists, please use a different email address")
	// One message for unknown email and wrong password, so responses don't
	// reveal which emails are registered.
	ErrInvalidCredentials = errors.New("the email or password that you provided does not match our records")
	ErrEmailNotVerified   = errors.New("you have not verified your email address, please check your email for a verification link")
)

// bcryptCost is the fixed work factor for password hashes.
const bcryptCost = 10

const sessionCookieName = "session_id"

// AuthService handles registration, credential checks, and the
// single-active-session cookie lifecycle.
type AuthService struct {
	userRepository repository.UserRepository
	verification   *VerificationService
	emailService   *EmailService
	adminEmails    []string
	isProduction   bool
}

func NewAuthService(
	userRepository repository.UserRepository,
	verification *VerificationService,
	emailService *EmailService,
	adminEmails []string,
	isProduction bool,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		verification:   verification,
		emailService:   emailService,
		adminEmails:    adminEmails,
		isProduction:   isProduction,
	}
}

// Register creates an unverified user together with its first verification
// token in one transaction, then dispatches the verification email.
func (s *AuthService) Register(firstName, lastName, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	_, err := s.userRepository.ByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	scopes := []string{model.ScopeUser}
	if s.isAdminEmail(email) {
		scopes = append(scopes, model.ScopeAdmin)
	}

	now := time.Now()
	user := &model.User{
		ID:           NewID(),
		SessionID:    NewID(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Verified:     false,
		Scope:        model.JoinScopes(scopes),
		CreatedAt:    now,
	}

	token, err := s.verification.NewToken(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.userRepository.Create(user, token)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.emailService.SendVerificationEmail(user.Email, user.FirstName, token.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "scope", user.Scope)
	return user, nil
}

// Login checks the credentials and rotates the stored session id. The
// previous session id stops authenticating the moment the new one is saved.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrEmailNotVerified
	}

	sessionID := NewID()
	err = s.userRepository.UpdateSessionID(user.ID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}
	user.SessionID = sessionID

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// BySession resolves the user whose stored session id exactly matches the
// cookie value. Scope always comes from this lookup, never from the client.
func (s *AuthService) BySession(sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, repository.ErrUserNotFound
	}
	return s.userRepository.BySessionID(sessionID)
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) SessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *AuthService) isAdminEmail(email string) bool {
	for _, admin := range s.adminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// NewID returns a time-qualified identifier, "<uuid>-<unix-millis>". Used for
// user ids, session ids, and page ids.
func NewID() string {
	return fmt.Sprintf("%s-%d", uuid.New(), time.Now().UnixMilli())
}
