// Package mocks provides in-memory fakes for exercising bot handlers without
// Telegram or Postgres.
package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramAPI is the subset of *bot.Bot the handlers call. It lives here so the
// bot package and its fakes share one definition without an import cycle.
type TelegramAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
}

// SentMessage is one recorded text reply.
type SentMessage struct {
	ChatID    int64
	Text      string
	ParseMode models.ParseMode
}

// SentPhoto is one recorded chart upload.
type SentPhoto struct {
	ChatID   int64
	Filename string
	Caption  string
	Data     []byte
}

var _ TelegramAPI = (*MockBot)(nil)

// MockBot records everything a handler sends.
type MockBot struct {
	mu sync.Mutex

	SentMessages []SentMessage
	SentPhotos   []SentPhoto

	// SendMessageError and SendPhotoError, when set, fail every call.
	SendMessageError error
	SendPhotoError   error

	nextID int
}

// NewMockBot returns an empty recorder.
func NewMockBot() *MockBot {
	return &MockBot{nextID: 1}
}

func (m *MockBot) reply(chatID int64) *models.Message {
	msg := &models.Message{ID: m.nextID, Chat: models.Chat{ID: chatID}}
	m.nextID++
	return msg
}

// SendMessage records a text reply.
func (m *MockBot) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendMessageError != nil {
		return nil, m.SendMessageError
	}
	chatID := toChatID(params.ChatID)
	m.SentMessages = append(m.SentMessages, SentMessage{ChatID: chatID, Text: params.Text, ParseMode: params.ParseMode})

	msg := m.reply(chatID)
	msg.Text = params.Text
	return msg, nil
}

// SendPhoto records an uploaded image. Only *models.InputFileUpload payloads
// carry bytes; anything else is recorded with empty Data.
func (m *MockBot) SendPhoto(_ context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendPhotoError != nil {
		return nil, m.SendPhotoError
	}
	photo := SentPhoto{ChatID: toChatID(params.ChatID), Caption: params.Caption}
	if upload, ok := params.Photo.(*models.InputFileUpload); ok {
		photo.Filename = upload.Filename
		if upload.Data != nil {
			photo.Data, _ = io.ReadAll(upload.Data)
		}
	}
	m.SentPhotos = append(m.SentPhotos, photo)

	msg := m.reply(photo.ChatID)
	msg.Caption = params.Caption
	msg.Photo = []models.PhotoSize{{FileID: "photo-" + photo.Filename}}
	return msg, nil
}

// MessagesTo returns the texts sent to chatID in order.
func (m *MockBot) MessagesTo(chatID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, msg := range m.SentMessages {
		if msg.ChatID == chatID {
			out = append(out, msg.Text)
		}
	}
	return out
}

// LastSentMessage returns the latest text reply, or nil.
func (m *MockBot) LastSentMessage() *SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return nil
	}
	return &m.SentMessages[len(m.SentMessages)-1]
}

// LastSentPhoto returns the latest upload, or nil.
func (m *MockBot) LastSentPhoto() *SentPhoto {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentPhotos) == 0 {
		return nil
	}
	return &m.SentPhotos[len(m.SentPhotos)-1]
}

func (m *MockBot) SentMessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentMessages)
}

func (m *MockBot) SentPhotoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentPhotos)
}

// Reset forgets recorded traffic and injected errors.
func (m *MockBot) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = nil
	m.SentPhotos = nil
	m.SendMessageError = nil
	m.SendPhotoError = nil
}

// toChatID accepts the int and int64 forms handlers pass as ChatID.
func toChatID(chatID any) int64 {
	switch v := chatID.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
