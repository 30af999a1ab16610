package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// accessTokenBytes of randomness give a 128-character hex token.
const accessTokenBytes = 64

// HashPassword returns the bcrypt digest of plaintext.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", newValidationError("password", "required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", newValidationError("password", "max")
		}
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches digest.
func VerifyPassword(plaintext, digest string) bool {
	if plaintext == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// GenerateAccessToken returns a new opaque access token.
func GenerateAccessToken() (string, error) {
	var buf [accessTokenBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
