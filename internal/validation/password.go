package validation

import "errors"

const (
	passwordMinLen = 6
	passwordMaxLen = 200
)

func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > passwordMaxLen {
		return errors.New("password is too long (max 200 characters)")
	}
	return nil
}
