// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/household-finance/internal/config"
	"gitlab.com/yelinaung/household-finance/internal/database"
	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/logger"
	appmodels "gitlab.com/yelinaung/household-finance/internal/models"
	"gitlab.com/yelinaung/household-finance/internal/snapshot"
	"gitlab.com/yelinaung/household-finance/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot        *bot.Bot
	cfg        *config.Config
	stores     Stores
	loader     *snapshot.Loader
	engine     *finance.Engine
	summarizer Summarizer
	metrics    *telemetry.Metrics
	loc        *time.Location
	now        func() time.Time

	// messageSender sends messages outside of an update, e.g. the daily digest.
	messageSender TelegramAPI
}

// New creates a new Bot instance backed by the Postgres repositories.
// summarizer may be nil when no Gemini key is configured.
func New(cfg *config.Config, db database.PGXDB, summarizer Summarizer, metrics *telemetry.Metrics) (*Bot, error) {
	b := newBot(cfg, RepositoryStores(db), summarizer, metrics)

	opts := []bot.Option{
		bot.WithMiddlewares(b.whitelistMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.messageSender = telegramBot
	b.registerHandlers()

	return b, nil
}

// newBot wires the bot without a Telegram connection.
func newBot(cfg *config.Config, stores Stores, summarizer Summarizer, metrics *telemetry.Metrics) *Bot {
	return &Bot{
		cfg:    cfg,
		stores: stores,
		loader: &snapshot.Loader{
			Expenses: stores.Expenses,
			Incomes:  stores.Incomes,
			Profiles: stores.Profiles,
			Goals:    stores.Goals,
		},
		engine:     finance.NewEngine(cfg.Thresholds()),
		summarizer: summarizer,
		metrics:    metrics,
		loc:        cfg.Location(),
		now:        time.Now,
	}
}

// Start begins polling for updates and runs the daily digest loop.
func (b *Bot) Start(ctx context.Context) {
	go b.startDailyDigestLoop(ctx)

	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command handlers.
func (b *Bot) registerHandlers() {
	commands := []struct {
		name    string
		handler func(context.Context, TelegramAPI, *models.Update)
	}{
		{"/start", b.handleStartCore},
		{"/help", b.handleHelpCore},
		{"/expense", b.handleExpenseCore},
		{"/income", b.handleIncomeCore},
		{"/list", b.handleListCore},
		{"/delete", b.handleDeleteCore},
		{"/summary", b.handleSummaryCore},
		{"/insights", b.handleInsightsCore},
		{"/forecast", b.handleForecastCore},
		{"/weekly", b.handleWeeklyCore},
		{"/trend", b.handleTrendCore},
		{"/chart", b.handleChartCore},
		{"/heatmap", b.handleHeatmapCore},
		{"/compare", b.handleCompareCore},
		{"/salary", b.handleSalaryCore},
		{"/budget", b.handleBudgetCore},
		{"/recurring", b.handleRecurringCore},
		{"/goal", b.handleGoalCore},
		{"/ai", b.handleAICore},
	}
	for _, c := range commands {
		b.bot.RegisterHandler(bot.HandlerTypeMessageText, c.name, bot.MatchTypePrefix, b.command(c.name, c.handler))
	}
}

// command adapts a testable handler core to the library handler signature.
func (b *Bot) command(name string, core func(context.Context, TelegramAPI, *models.Update)) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
		b.metrics.RecordCommand(ctx, name)
		core(ctx, tgBot, update)
	}
}

// whitelistMiddleware checks if the user is whitelisted before processing.
func (b *Bot) whitelistMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
		if !b.authorize(ctx, tgBot, update) {
			return
		}
		next(ctx, tgBot, update)
	}
}

// authorize rejects non-whitelisted senders and registers the rest.
func (b *Bot) authorize(ctx context.Context, tg TelegramAPI, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}
	from := update.Message.From

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(from.ID)).
		Str("chat_hash", logger.HashChatID(update.Message.Chat.ID)).
		Str("text", logger.SanitizeText(update.Message.Text)).
		Msg("User input")

	if !b.cfg.IsUserWhitelisted(from.ID, from.Username) {
		logger.Log.Warn().
			Str("user_hash", logger.HashUserID(from.ID)).
			Msg("Blocked non-whitelisted user")
		_, _ = tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "⛔ Sorry, you are not authorized to use this bot.",
		})
		return false
	}

	if err := b.ensureUserRegistered(ctx, from); err != nil {
		logger.Log.Error().
			Str("user_hash", logger.HashUserID(from.ID)).
			Err(err).
			Msg("Failed to register user")
	}
	return true
}

// ensureUserRegistered creates or updates the user record.
func (b *Bot) ensureUserRegistered(ctx context.Context, from *models.User) error {
	user := &appmodels.User{
		ID:        from.ID,
		Username:  from.Username,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}
	if err := b.stores.Users.UpsertUser(ctx, user); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// defaultHandler answers messages no command matched.
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	b.defaultHandlerCore(ctx, tgBot, update)
}

func (b *Bot) defaultHandlerCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      "I didn't understand that. Use /help to see available commands, or log an expense like <code>/expense 120 Food</code>",
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to send default response")
	}
}

// deriveView loads a snapshot for userID and derives the dashboard. A zero
// year selects the current month.
func (b *Bot) deriveView(ctx context.Context, userID int64, year int, month time.Month) (finance.Snapshot, finance.DerivedView, error) {
	return b.deriveViewAt(ctx, userID, b.now().In(b.loc), year, month)
}

func (b *Bot) deriveViewAt(ctx context.Context, userID int64, now time.Time, year int, month time.Month) (finance.Snapshot, finance.DerivedView, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "finance.derive")
	defer span.End()

	s, err := b.loader.Load(ctx, userID, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot load failed")
		return finance.Snapshot{}, finance.DerivedView{}, err
	}
	s.SelectedYear, s.SelectedMonth = year, month

	start := time.Now()
	view := b.engine.Derive(s)
	b.metrics.RecordDerive(ctx, time.Since(start))

	span.SetAttributes(
		attribute.Int("finance.expenses", len(s.Expenses)),
		attribute.Int("finance.incomes", len(s.Incomes)),
		attribute.Int("finance.insights", len(view.Insights)),
	)
	return s, view, nil
}
