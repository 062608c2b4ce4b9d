package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/logger"
)

// monthArg reads an optional MM.yyyy argument. A zero year selects the
// current month. ok is false when a usage reply was already sent.
func monthArg(ctx context.Context, tg TelegramAPI, update *models.Update, command string) (int, time.Month, bool) {
	args := extractCommandArgs(update.Message.Text, command)
	if args == "" {
		return 0, 0, true
	}
	year, month, err := parseMonthArg(args)
	if err != nil {
		sendHTML(ctx, tg, update.Message.Chat.ID,
			fmt.Sprintf("❌ Invalid month. Usage: <code>%s [mm.yyyy]</code>", command))
		return 0, 0, false
	}
	return year, month, true
}

// handleSummaryCore shows balances, the salary cycle and the month's figures.
func (b *Bot) handleSummaryCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	year, month, ok := monthArg(ctx, tg, update, "/summary")
	if !ok {
		return
	}
	s, view, err := b.deriveView(ctx, update.Message.From.ID, year, month)
	if err != nil {
		sendFailure(ctx, tg, chatID, "build summary", err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>Summary</b>\n\n")
	fmt.Fprintf(&sb, "💰 Income: %s\n", b.money(view.Totals.TotalIncome))
	fmt.Fprintf(&sb, "💸 Expense: %s\n", b.money(view.Totals.TotalExpense))
	fmt.Fprintf(&sb, "🧮 Balance: <b>%s</b>\n", b.money(view.Totals.NetBalance))

	fmt.Fprintf(&sb, "\n⏳ <b>%s</b>: %d days\n", escapeHTML(view.Cycle.TitleText), view.Cycle.DaysLeft)
	fmt.Fprintf(&sb, "%s %.0f%%\n", progressBar(view.Cycle.Progress), view.Cycle.Progress)
	fmt.Fprintf(&sb, "🎯 Daily limit: %s\n", b.money(view.DailyLimit))
	next := view.NextSalary.NextIncome
	fmt.Fprintf(&sb, "📅 Next payday: %s (%s", escapeHTML(next.Source), next.Date.Format("02.01.2006"))
	if next.Amount.IsPositive() {
		fmt.Fprintf(&sb, ", %s", b.money(next.Amount))
	}
	sb.WriteString(")\n")

	mv := view.Month
	fmt.Fprintf(&sb, "\n🗓️ <b>%s</b>\n", monthLabel(mv.Year, mv.Month))
	fmt.Fprintf(&sb, "Income: %s\nExpense: %s\nNet: %s\n",
		b.money(mv.TotalIncome), b.money(mv.TotalExpense), b.money(mv.Balance))

	if low, ok := lowestBalance(view.CumulativeBalance); ok {
		fmt.Fprintf(&sb, "Lowest running balance: %s on day %d\n", b.money(low.Balance), low.Day)
	}

	b.writeBudgetAndGoal(&sb, s, view)

	sendHTML(ctx, tg, chatID, sb.String())
}

// writeBudgetAndGoal appends the budget depletion and main goal sections.
func (b *Bot) writeBudgetAndGoal(sb *strings.Builder, s finance.Snapshot, view finance.DerivedView) {
	if budget := s.Profile.Budget(); budget.IsPositive() {
		bd := view.BudgetDepletion
		status := "✅ on track"
		if !bd.IsOnTrack {
			status = "⚠️ over pace"
		}
		fmt.Fprintf(sb, "\n💼 <b>Budget</b> %s: %.0f%% used, %s\n", b.money(budget), bd.PercentUsed, status)
		fmt.Fprintf(sb, "Safe daily spend: %s (now %s)\n",
			b.moneyFloat(bd.SafeSpendingRate), b.moneyFloat(bd.CurrentSpendingRate))
		if bd.DepletionDate != nil && !bd.IsOnTrack {
			fmt.Fprintf(sb, "Runs out around %s\n", bd.DepletionDate.Format("02.01.2006"))
		}
	}

	if gp := view.GoalPrediction; gp != nil {
		if goal := finance.MainGoal(s.Goals); goal != nil {
			fmt.Fprintf(sb, "\n🏁 <b>%s</b>: %s / %s\n", escapeHTML(goal.Title), b.money(goal.Current), b.money(goal.Target))
			sb.WriteString(goalPredictionLine(gp) + "\n")
		}
	}
}

// lowestBalance returns the low point of a running balance series.
func lowestBalance(points []finance.BalancePoint) (finance.BalancePoint, bool) {
	if len(points) == 0 {
		return finance.BalancePoint{}, false
	}
	low := points[0]
	for _, p := range points[1:] {
		if p.Balance.LessThan(low.Balance) {
			low = p
		}
	}
	return low, true
}

func goalPredictionLine(gp *finance.GoalPrediction) string {
	switch {
	case gp.IsCompleted:
		return "🎉 Goal reached!"
	case !gp.IsPossible:
		return "Not reachable at this month's savings rate."
	default:
		return fmt.Sprintf("About %d months to go, around %s.",
			gp.MonthsRemaining, gp.CompletionDate.Format("January 2006"))
	}
}

// handleInsightsCore lists the rule-based insights.
func (b *Bot) handleInsightsCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	_, view, err := b.deriveView(ctx, update.Message.From.ID, 0, 0)
	if err != nil {
		sendFailure(ctx, tg, chatID, "build insights", err)
		return
	}
	if len(view.Insights) == 0 {
		sendHTML(ctx, tg, chatID, "💡 Nothing to report right now. Keep logging!")
		return
	}
	sendHTML(ctx, tg, chatID, "💡 <b>Insights</b>\n\n"+renderInsights(view.Insights, b.cfg.Currency))
}

// handleForecastCore shows next month's expense forecast and the net projection.
func (b *Bot) handleForecastCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	s, view, err := b.deriveView(ctx, update.Message.From.ID, 0, 0)
	if err != nil {
		sendFailure(ctx, tg, chatID, "build forecast", err)
		return
	}

	months := 0
	for _, p := range view.Trend {
		if p.Expense.IsPositive() {
			months++
		}
	}
	fc := view.ExpenseForecast
	if months < 2 || fc.Confidence == 0 {
		sendHTML(ctx, tg, chatID, "🔮 Not enough history yet. Forecasts need at least two months of data.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🔮 <b>Forecast</b>\n\n")
	fmt.Fprintf(&sb, "Next month's expense: <b>%s</b>\n", b.moneyFloat(fc.Predicted))
	fmt.Fprintf(&sb, "Range: %s - %s (%.0f%% confidence)\n",
		b.moneyFloat(fc.Min), b.moneyFloat(fc.Max), fc.Confidence*100)

	if len(view.IncomeProjection) > 0 {
		sb.WriteString("\n<b>Projected net</b>\n")
		for _, p := range view.IncomeProjection {
			icon := "🟢"
			if p.Net < 0 {
				icon = "🔴"
			}
			fmt.Fprintf(&sb, "%s %s: %s\n", icon, p.Month.Format("Jan 2006"), b.moneyFloat(p.Net))
		}
	}

	if len(view.CategoryBudget) > 0 {
		sb.WriteString("\n<b>This month by category</b>\n")
		for _, c := range view.CategoryBudget {
			pct := 0.0
			if c.Budget.IsPositive() {
				pct = c.Spent.Div(c.Budget).Mul(decimal.NewFromInt(100)).InexactFloat64()
			}
			fmt.Fprintf(&sb, "%s %s %s\n", progressBar(pct), escapeHTML(c.Category), b.money(c.Spent))
		}
	}

	b.writeBudgetAndGoal(&sb, s, view)

	sendHTML(ctx, tg, chatID, sb.String())
}

// handleWeeklyCore shows the month's weekly budget performance with a chart.
func (b *Bot) handleWeeklyCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	year, month, ok := monthArg(ctx, tg, update, "/weekly")
	if !ok {
		return
	}
	_, view, err := b.deriveView(ctx, update.Message.From.ID, year, month)
	if err != nil {
		sendFailure(ctx, tg, chatID, "build weekly report", err)
		return
	}

	wb := view.WeeklyBudget
	var sb strings.Builder
	fmt.Fprintf(&sb, "📆 <b>Weekly budget - %s</b>\n\n", monthLabel(view.Month.Year, view.Month.Month))
	for i, label := range wb.Labels {
		mark := ""
		if wb.Budget.IsPositive() && wb.Spent[i].GreaterThan(wb.Budget) {
			mark = " ⚠️"
		}
		fmt.Fprintf(&sb, "%s: %s%s\n", label, b.money(wb.Spent[i]), mark)
	}
	if wb.Budget.IsPositive() {
		fmt.Fprintf(&sb, "Weekly budget: %s\n", b.money(wb.Budget))
	} else {
		sb.WriteString("No monthly budget set. Use <code>/budget &lt;amount&gt;</code>.\n")
	}

	sb.WriteString("\n<b>Last four weeks</b>\n")
	for _, w := range view.Weekly {
		fmt.Fprintf(&sb, "%s (%s - %s): %s\n", w.Label,
			w.Start.Format("02.01"), w.End.AddDate(0, 0, -1).Format("02.01"), b.money(w.Amount))
	}

	sendHTML(ctx, tg, chatID, sb.String())

	png, err := GenerateWeeklyChart(wb, view.Month.Year, view.Month.Month)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to generate weekly chart")
		return
	}
	b.sendChart(ctx, tg, chatID, "weekly", png, "📆 Spent vs budget per week")
}

// handleHeatmapCore lists the selected month's spend per day.
func (b *Bot) handleHeatmapCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	year, month, ok := monthArg(ctx, tg, update, "/heatmap")
	if !ok {
		return
	}
	_, view, err := b.deriveView(ctx, update.Message.From.ID, year, month)
	if err != nil {
		sendFailure(ctx, tg, chatID, "build heatmap", err)
		return
	}

	title := monthLabel(view.Month.Year, view.Month.Month)
	if len(view.Heatmap) == 0 {
		sendHTML(ctx, tg, chatID, fmt.Sprintf("🌡️ No expenses in %s.", title))
		return
	}

	peak := decimal.Zero
	for _, p := range view.Heatmap {
		peak = decimal.Max(peak, p.Amount)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🌡️ <b>Daily spend - %s</b>\n\n", title)
	for _, p := range view.Heatmap {
		pct := 0.0
		if peak.IsPositive() {
			pct = p.Amount.Div(peak).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		day := strings.TrimPrefix(p.DateKey[len(p.DateKey)-2:], "0")
		fmt.Fprintf(&sb, "<code>%s %2s</code> %s %s\n",
			time.Weekday(p.Weekday).String()[:3], day, heatCell(pct), b.money(p.Amount))
	}

	for _, chunk := range splitMessage(sb.String(), maxMessageLength) {
		sendHTML(ctx, tg, chatID, chunk)
	}
}

func heatCell(pct float64) string {
	switch {
	case pct >= 75:
		return "🟥"
	case pct >= 50:
		return "🟧"
	case pct >= 25:
		return "🟨"
	default:
		return "🟩"
	}
}

// handleCompareCore compares a month with the same month of the previous year.
func (b *Bot) handleCompareCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	year, month, ok := monthArg(ctx, tg, update, "/compare")
	if !ok {
		return
	}
	_, view, err := b.deriveView(ctx, update.Message.From.ID, year, month)
	if err != nil {
		sendFailure(ctx, tg, chatID, "build comparison", err)
		return
	}

	yc := view.YearComparison
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚖️ <b>%s: %d vs %d</b>\n\n", yc.Month, yc.ThisYear.Year, yc.LastYear.Year)
	fmt.Fprintf(&sb, "Expense: %s vs %s%s\n",
		b.money(yc.ThisYear.Expense), b.money(yc.LastYear.Expense), changeSuffix(yc.ThisYear.Expense, yc.LastYear.Expense))
	fmt.Fprintf(&sb, "Income: %s vs %s%s\n",
		b.money(yc.ThisYear.Income), b.money(yc.LastYear.Income), changeSuffix(yc.ThisYear.Income, yc.LastYear.Income))
	fmt.Fprintf(&sb, "Net: %s vs %s\n", b.money(yc.ThisYear.Net), b.money(yc.LastYear.Net))

	sendHTML(ctx, tg, chatID, sb.String())
}

// changeSuffix renders the relative change from last to current.
func changeSuffix(current, last decimal.Decimal) string {
	if !last.IsPositive() {
		return ""
	}
	change := current.Sub(last).Div(last).Mul(decimal.NewFromInt(100)).Round(0)
	sign := ""
	if change.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf(" (%s%s%%)", sign, change.String())
}

// sendChart uploads a rendered PNG chart.
func (b *Bot) sendChart(ctx context.Context, tg TelegramAPI, chatID int64, kind string, png []byte, caption string) {
	_, err := tg.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: chartFilename(kind, b.now().In(b.loc)), Data: bytes.NewReader(png)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().Err(err).Str("chart", kind).Msg("Failed to send chart")
		sendHTML(ctx, tg, chatID, "❌ Failed to send chart. Please try again.")
	}
}

// isNoChartData reports whether err means there was nothing to plot.
func isNoChartData(err error) bool {
	return errors.Is(err, ErrNoChartData)
}
