package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
)

// Hash hashes a secret using bcrypt
func Hash(secret string) (string, error) {
	return HashWithCost(secret, DefaultCost)
}

// HashWithCost hashes a secret using bcrypt at the given cost
func HashWithCost(secret string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a secret with a hash
func Verify(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// HashToken returns the hex SHA256 of a value (stored payload fingerprints)
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
