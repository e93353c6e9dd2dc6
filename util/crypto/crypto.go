// Package crypto provides password hashing and verification for user credentials.
package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/khoshimi/Pupupu/logger"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	iterations = 100_000
	keyLength  = 64
)

// HashPassword derives a PBKDF2-HMAC-SHA512 key from the password with a
// fresh random salt and returns it encoded as "salt:hash" (hex).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash), nil
}

// CheckPassword verifies a password against a stored "salt:hash" credential.
// The comparison is constant-time.
//
// Stored values without a ':' separator are legacy plaintext rows from before
// hashing was introduced; they are compared directly and flagged in the log so
// they can be migrated.
func CheckPassword(stored, password string) bool {
	if stored == "" {
		return false
	}
	if !strings.Contains(stored, ":") {
		logger.Warning("legacy plaintext credential encountered, run `pupupu migrate` to audit")
		return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
	}

	saltHex, hashHex, _ := strings.Cut(stored, ":")
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	storedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha512.New)
	return subtle.ConstantTimeCompare(hash, storedHash) == 1
}

// IsLegacy reports whether a stored credential is a pre-hashing plaintext row.
func IsLegacy(stored string) bool {
	return stored != "" && !strings.Contains(stored, ":")
}
