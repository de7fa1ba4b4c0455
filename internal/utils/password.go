package utils

import (
	"errors"
	"fmt"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password an account may register with.
const MinPasswordLength = 8

// HashPassword hashes a login password with bcrypt. Passwords bcrypt cannot
// hash faithfully are rejected with apperrors.ErrValidation.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, apperrors.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("password must be at most 72 bytes: %w", apperrors.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored hash. An
// empty hash never matches.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
