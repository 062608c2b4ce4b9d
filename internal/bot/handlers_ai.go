package bot

import (
	"context"
	"time"

	"github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/household-finance/internal/gemini"
	"gitlab.com/yelinaung/household-finance/internal/logger"
)

// aiTimeout bounds the whole /ai request including snapshot loading.
const aiTimeout = 45 * time.Second

// handleAICore asks the summarizer for a written report on the user's finances.
func (b *Bot) handleAICore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	from := update.Message.From

	if b.summarizer == nil {
		sendHTML(ctx, tg, chatID, "🤖 AI reports are not configured.")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	s, view, err := b.deriveView(ctx, from.ID, 0, 0)
	if err != nil {
		sendFailure(ctx, tg, chatID, "load your data", err)
		return
	}

	sendHTML(ctx, tg, chatID, "🤖 Analyzing your finances...")

	userName := s.Profile.UserName
	if userName == "" {
		userName = from.FirstName
	}
	report, err := b.summarizer.Summarize(ctx, gemini.BuildFinancialData(view, s), gemini.SanitizeForPrompt(userName, 50), b.cfg.Currency)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(from.ID)).Msg("AI summary failed")
		sendHTML(ctx, tg, chatID, "❌ Could not generate the report right now. Please try again later.")
		return
	}

	for _, chunk := range splitMessage(escapeHTML(report), maxMessageLength) {
		sendHTML(ctx, tg, chatID, chunk)
	}
}
