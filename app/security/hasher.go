package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 10000
	keyLength  = 64
)

// Hash derives a fresh salt and a pbkdf2-sha512 digest for storage. The salt
// is hex-encoded and that encoded form is what feeds the derivation, so the
// stored pair verifies against records written by earlier snapshots.
func Hash(password string) (salt, hash string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return salt, hex.EncodeToString(key), nil
}

// Verify recomputes the digest for the candidate password and compares it to
// the stored hex digest in constant time.
func Verify(password, salt, hash string) bool {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	computed := hex.EncodeToString(key)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
