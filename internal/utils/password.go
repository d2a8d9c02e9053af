package utils

import (
	"errors" // Error inspection

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword hashes a plaintext password with bcrypt at the default cost
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err // Hashing failure is an internal error
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt digest.
// A wrong password returns (false, nil); any other failure (e.g. a corrupt
// digest) returns an error so callers can answer 500 instead of 401.
func CheckPassword(plain, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	if err == nil {
		return true, nil // Password matches
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil // Wrong password, not an internal error
	}
	return false, err // Anything else is an internal error
}
