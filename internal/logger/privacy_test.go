package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize hash salt for all tests in this package.
	InitHashSaltForTesting("test-salt-for-unit-tests-minimum-32-chars")
	os.Exit(m.Run())
}

func TestHashUserID(t *testing.T) {
	t.Run("produces consistent hash for same user ID", func(t *testing.T) {
		require.Equal(t, HashUserID(12345), HashUserID(12345))
	})

	t.Run("produces different hashes for different user IDs", func(t *testing.T) {
		require.NotEqual(t, HashUserID(12345), HashUserID(67890))
	})

	t.Run("produces 8 character hash", func(t *testing.T) {
		require.Len(t, HashUserID(12345), 8)
	})

	t.Run("changes hash when salt changes", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		hash1 := HashUserID(12345)
		hashSalt = "different-salt"
		require.NotEqual(t, hash1, HashUserID(12345))
	})
}

func TestHashChatID(t *testing.T) {
	require.Equal(t, HashChatID(-100123), HashChatID(-100123))
	require.NotEqual(t, HashChatID(1), HashChatID(2))
	require.Len(t, HashChatID(1), 8)
}

func TestSanitizeDescription(t *testing.T) {
	require.Equal(t, "<empty>", SanitizeDescription(""))

	result := SanitizeDescription("dinner at the bosphorus")
	require.Contains(t, result, "4 words")
	require.Contains(t, result, "23 chars")
	require.NotContains(t, result, "bosphorus")
}

func TestSanitizeText(t *testing.T) {
	t.Run("redacts empty text", func(t *testing.T) {
		require.Equal(t, "<empty>", SanitizeText(""))
	})

	t.Run("shows length for short text", func(t *testing.T) {
		require.Equal(t, "<5 chars>", SanitizeText("short"))
	})

	t.Run("shows prefix for longer text", func(t *testing.T) {
		result := SanitizeText("this is a long text")
		require.Equal(t, "thi...<19 chars>", result)
	})

	t.Run("keeps multibyte prefix intact", func(t *testing.T) {
		result := SanitizeText("çğüşöı market alışverişi")
		require.Contains(t, result, "çğü...")
	})
}

func TestInitHashSalt(t *testing.T) {
	t.Run("fails when LOG_HASH_SALT is missing", func(t *testing.T) {
		t.Setenv("LOG_HASH_SALT", "")
		require.ErrorIs(t, InitHashSalt(), ErrHashSaltMissing)
	})

	t.Run("fails when LOG_HASH_SALT is too short", func(t *testing.T) {
		t.Setenv("LOG_HASH_SALT", "short")
		require.ErrorIs(t, InitHashSalt(), ErrHashSaltTooShort)
	})

	t.Run("succeeds with valid LOG_HASH_SALT", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		validSalt := "this-is-a-valid-salt-with-at-least-32-characters"
		t.Setenv("LOG_HASH_SALT", validSalt)

		require.NoError(t, InitHashSalt())
		require.Equal(t, validSalt, hashSalt)
	})
}
