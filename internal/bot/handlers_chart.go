package bot

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/logger"
)

// handleTrendCore sends the six-month income vs expense chart.
func (b *Bot) handleTrendCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	_, view, err := b.deriveView(ctx, userID, 0, 0)
	if err != nil {
		sendFailure(ctx, tg, chatID, "generate chart", err)
		return
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, p := range view.Trend {
		income = income.Add(p.Income)
		expense = expense.Add(p.Expense)
	}
	if income.IsZero() && expense.IsZero() {
		sendHTML(ctx, tg, chatID, "📈 No entries in the last six months.")
		return
	}

	png, err := GenerateTrendChart(view.Trend)
	if err != nil {
		sendFailure(ctx, tg, chatID, "generate chart", err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Int("months", len(view.Trend)).
		Msg("Trend chart generated")

	caption := fmt.Sprintf("📈 <b>Income vs Expense</b>\n\nIncome: %s\nExpense: %s\nNet: %s",
		b.money(income), b.money(expense), b.money(income.Sub(expense)))
	b.sendChart(ctx, tg, chatID, "trend", png, caption)
}

// handleChartCore sends a category breakdown pie chart of the selected month.
func (b *Bot) handleChartCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	year, month, ok := monthArg(ctx, tg, update, "/chart")
	if !ok {
		return
	}
	_, view, err := b.deriveView(ctx, userID, year, month)
	if err != nil {
		sendFailure(ctx, tg, chatID, "generate chart", err)
		return
	}

	period := monthLabel(view.Month.Year, view.Month.Month)
	png, err := GenerateCategoryChart(view.Month.CategoryTotals, period)
	if isNoChartData(err) {
		sendHTML(ctx, tg, chatID, fmt.Sprintf("📊 No expenses found for %s.", period))
		return
	}
	if err != nil {
		sendFailure(ctx, tg, chatID, "generate chart", err)
		return
	}

	caption := fmt.Sprintf("📊 <b>Expense Breakdown - %s</b>\n\nTotal: %s\nCount: %d expenses",
		period, b.money(view.Month.TotalExpense), len(view.Month.Expenses))
	b.sendChart(ctx, tg, chatID, "chart", png, caption)
}
