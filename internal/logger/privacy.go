package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MinHashSaltLength is the shortest LOG_HASH_SALT accepted.
const MinHashSaltLength = 32

var (
	// ErrHashSaltMissing is returned when LOG_HASH_SALT is unset.
	ErrHashSaltMissing = errors.New("LOG_HASH_SALT is required")
	// ErrHashSaltTooShort is returned when LOG_HASH_SALT is shorter than MinHashSaltLength.
	ErrHashSaltTooShort = fmt.Errorf("LOG_HASH_SALT must be at least %d characters", MinHashSaltLength)
)

var hashSalt string

// InitHashSalt loads the salt used to pseudonymise IDs in log lines.
func InitHashSalt() error {
	salt := os.Getenv("LOG_HASH_SALT")
	switch {
	case salt == "":
		return ErrHashSaltMissing
	case len(salt) < MinHashSaltLength:
		return ErrHashSaltTooShort
	}
	hashSalt = salt
	return nil
}

// InitHashSaltForTesting sets the salt directly.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

func hashID(id int64) string {
	data := fmt.Sprintf("%d:%s", id, hashSalt)
	hash := sha256.Sum256([]byte(data))
	// First 8 characters are enough to correlate log lines.
	return hex.EncodeToString(hash[:])[:8]
}

// HashUserID creates a privacy-preserving hash of a user ID.
func HashUserID(userID int64) string {
	return hashID(userID)
}

// HashChatID creates a privacy-preserving hash of a chat ID.
func HashChatID(chatID int64) string {
	return hashID(chatID)
}

// SanitizeDescription redacts a transaction description, keeping only its shape.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(strings.Fields(desc)), len(desc))
}

// SanitizeText is a general-purpose sanitizer for any user-provided text.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}
	if len(text) <= 10 {
		return fmt.Sprintf("<%d chars>", len(text))
	}
	r := []rune(text)
	return fmt.Sprintf("%s...<%d chars>", string(r[:min(3, len(r))]), len(text))
}
