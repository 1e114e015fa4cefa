package utils

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmail reports whether the sign-in identifier looks like an email
// address; anything else is treated as a phone number.
func IsEmail(identifier string) bool {
	return emailPattern.MatchString(identifier)
}

// NormalizePhone strips spaces and dashes from a phone number.
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(phone)
}
