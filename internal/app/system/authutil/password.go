// internal/app/system/authutil/password.go
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Admin password rules.
const (
	MinPasswordLength = 10
	MaxPasswordLength = 72 // bcrypt ignores bytes past 72
	BcryptCost        = 12
)

var (
	ErrPasswordTooShort = errors.New("admin password must be at least 10 characters")
	ErrPasswordTooLong  = errors.New("admin password must be at most 72 bytes")
	ErrPasswordCommon   = errors.New("admin password is too common")
)

// commonPasswords are refused even when long enough.
var commonPasswords = map[string]bool{
	"1234567890":    true,
	"0123456789":    true,
	"password123":   true,
	"password1234":  true,
	"qwertyuiop":    true,
	"iloveyou123":   true,
	"welcome123":    true,
	"changeme123":   true,
	"administrator": true,
	"letmein1234":   true,
}

// ValidatePassword checks a password against the admin rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}
	return nil
}

// HashPassword hashes a password with bcrypt at BcryptCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
