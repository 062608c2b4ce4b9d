package mocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandUpdate(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		update := CommandUpdate(10, 20, "/summary")
		require.Equal(t, "/summary", update.Message.Text)
		require.Equal(t, int64(10), update.Message.Chat.ID)
		require.Equal(t, int64(20), update.Message.From.ID)
		require.Equal(t, "testuser", update.Message.From.Username)
	})

	t.Run("custom sender keeps id", func(t *testing.T) {
		update := CommandUpdate(1, 2, "/start", FromUser("deniz", "Deniz", "K"))
		require.Equal(t, int64(2), update.Message.From.ID)
		require.Equal(t, "deniz", update.Message.From.Username)
		require.Equal(t, "Deniz", update.Message.From.FirstName)
		require.Equal(t, "K", update.Message.From.LastName)
	})

	t.Run("options apply in order", func(t *testing.T) {
		update := CommandUpdate(1, 2, "/start", WithoutSender(), FromUser("x", "y", "z"))
		require.Nil(t, update.Message.From)
	})
}
