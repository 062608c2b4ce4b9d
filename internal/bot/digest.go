package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/logger"
)

const (
	// DigestCheckInterval is how often the digest loop checks whether to send digests.
	DigestCheckInterval = 30 * time.Minute
	// DigestTimeout is the maximum time a single digest check can take.
	DigestTimeout = 2 * time.Minute
)

// startDailyDigestLoop periodically sends each registered user their
// high-severity insights once a day at the configured hour.
func (b *Bot) startDailyDigestLoop(ctx context.Context) {
	if !b.cfg.DailyDigestEnabled {
		logger.Log.Info().Msg("Daily digest is disabled")
		return
	}

	logger.Log.Info().
		Int("hour", b.cfg.DigestHour).
		Str("timezone", b.loc.String()).
		Msg("Daily digest loop started")

	sent := make(map[int64]string)
	ticker := time.NewTicker(DigestCheckInterval)
	defer ticker.Stop()

	select {
	case <-ctx.Done():
		logger.Log.Info().Msg("Daily digest loop stopped")
		return
	default:
	}

	// Run one check immediately so digests aren't skipped when the process
	// starts during the configured hour.
	b.checkAndSendDigests(ctx, sent, b.now().In(b.loc))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("Daily digest loop stopped")
			return
		case <-ticker.C:
			b.checkAndSendDigests(ctx, sent, b.now().In(b.loc))
		}
	}
}

// checkAndSendDigests sends the digest to every whitelisted user not yet
// served today. The sent map tracks who already got today's digest.
func (b *Bot) checkAndSendDigests(ctx context.Context, sent map[int64]string, now time.Time) {
	if now.Hour() != b.cfg.DigestHour {
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, DigestTimeout)
	defer cancel()

	todayStr := now.Format("2006-01-02")

	// Prune entries from previous days so the map doesn't grow unbounded.
	for uid, dateStr := range sent {
		if dateStr != todayStr {
			delete(sent, uid)
		}
	}

	userIDs, err := b.stores.Users.ListUserIDs(checkCtx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to fetch users for daily digest")
		return
	}

	for _, userID := range userIDs {
		if sent[userID] == todayStr {
			continue
		}

		user, err := b.stores.Users.GetUserByID(checkCtx, userID)
		if err != nil {
			logger.Log.Warn().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to load user for digest")
			continue
		}
		if !b.cfg.IsUserWhitelisted(user.ID, user.Username) {
			continue
		}

		_, view, err := b.deriveViewAt(checkCtx, userID, now, 0, 0)
		if err != nil {
			logger.Log.Warn().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to derive digest")
			continue
		}

		text, ok := b.digestText(user.FirstName, view)
		if !ok {
			sent[userID] = todayStr
			continue
		}

		_, err = b.messageSender.SendMessage(checkCtx, &bot.SendMessageParams{
			ChatID:    userID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			logger.Log.Warn().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to send daily digest")
			continue
		}

		sent[userID] = todayStr
		b.metrics.RecordDigest(checkCtx)
		logger.Log.Debug().Str("user_hash", logger.HashUserID(userID)).Msg("Sent daily digest")
	}
}

// digestText renders the high-severity insights. ok is false when there is
// nothing urgent to report.
func (b *Bot) digestText(firstName string, view finance.DerivedView) (string, bool) {
	var urgent []finance.Insight
	for _, in := range view.Insights {
		if in.Severity == finance.SeverityHigh {
			urgent = append(urgent, in)
		}
	}
	if len(urgent) == 0 {
		return "", false
	}

	if firstName == "" {
		firstName = "there"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "☀️ Good morning, %s! Here is what needs your attention today.\n\n", escapeHTML(firstName))
	sb.WriteString(renderInsights(urgent, b.cfg.Currency))
	fmt.Fprintf(&sb, "\n\n🎯 Daily limit: %s", b.money(view.DailyLimit))
	return sb.String(), true
}
