// Package cryptox implements the credential hashing used by the auth
// service.
//
// Digests are plain sha256 hex, unsalted and single-round, so hashing the
// same password always produces the same stored value. That is a weak
// baseline kept for compatibility with already-persisted rows; callers go
// through this package only, so the scheme can be swapped in one place.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// temporaryPasswordDigits is the width of codes delivered by email.
const temporaryPasswordDigits = 5

// HashPassword returns the hex-encoded sha256 digest of plaintext.
func HashPassword(plaintext string) string {
	digest := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:])
}

// VerifyPassword reports whether plaintext hashes to digest.
// The comparison is constant-time.
func VerifyPassword(plaintext, digest string) bool {
	candidate := HashPassword(plaintext)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// GenerateTemporaryPassword returns a zero-padded 5-digit numeric code and
// its digest. The code is sent to the user by email; only the digest is
// persisted.
func GenerateTemporaryPassword() (plaintext, digest string, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", "", fmt.Errorf("rand error: %w", err)
	}
	plaintext = fmt.Sprintf("%05d", n.Int64())
	return plaintext, HashPassword(plaintext), nil
}
