package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ValidPIN reports whether a candidate PIN has the accepted shape:
// exactly four numeric digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// HashPIN hashes a plaintext PIN using bcrypt. The plaintext is never
// stored; accounts keep only the hash.
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", errors.New("pin is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN compares a plaintext candidate with the stored hash.
func VerifyPIN(hash, pin string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
