package bot

import (
	"github.com/go-telegram/bot"
	"gitlab.com/yelinaung/household-finance/internal/bot/mocks"
)

// TelegramAPI is what handlers send through; see mocks.TelegramAPI.
type TelegramAPI = mocks.TelegramAPI

var _ TelegramAPI = (*bot.Bot)(nil)
