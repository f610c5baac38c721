package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) All() ([]*model.User, error) {
	users, err := s.userRepository.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateScope replaces a user's role list. The stored scope always keeps the
// "user" role regardless of the input.
func (s *UserService) UpdateScope(userID string, scopes []string) (string, error) {
	scope := model.JoinScopes(scopes)

	err := s.userRepository.UpdateScope(userID, scope)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to update scope: %w", err)
	}

	slog.Info("user scope updated", "user_id", userID, "scope", scope)
	return scope, nil
}
