package mocks

import (
	"github.com/go-telegram/bot/models"
)

// UpdateOption adjusts an Update built by CommandUpdate.
type UpdateOption func(*models.Message)

// FromUser replaces the default sender's profile, keeping its ID.
func FromUser(username, firstName, lastName string) UpdateOption {
	return func(m *models.Message) {
		if m.From == nil {
			return
		}
		m.From.Username = username
		m.From.FirstName = firstName
		m.From.LastName = lastName
	}
}

// WithoutSender drops the sender, as Telegram does for channel posts.
func WithoutSender() UpdateOption {
	return func(m *models.Message) { m.From = nil }
}

// CommandUpdate returns a private-chat text message from userID. The default
// sender is "Test User" (@testuser).
func CommandUpdate(chatID, userID int64, text string, opts ...UpdateOption) *models.Update {
	msg := &models.Message{
		ID:   1,
		Chat: models.Chat{ID: chatID, Type: "private"},
		From: &models.User{ID: userID, FirstName: "Test", LastName: "User", Username: "testuser"},
		Text: text,
	}
	for _, opt := range opts {
		opt(msg)
	}
	return &models.Update{Message: msg}
}
