package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/logger"
	appmodels "gitlab.com/yelinaung/household-finance/internal/models"
	"gitlab.com/yelinaung/household-finance/internal/repository"
)

// defaultListDates is how many ledger days /list shows without an argument.
const defaultListDates = 5

// maxListDates caps the /list argument.
const maxListDates = 31

// sendHTML sends an HTML message and logs delivery failures.
func sendHTML(ctx context.Context, tg TelegramAPI, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().Err(err).Str("chat_hash", logger.HashChatID(chatID)).Msg("Failed to send message")
	}
}

// sendFailure reports an unexpected store or engine error to the user.
func sendFailure(ctx context.Context, tg TelegramAPI, chatID int64, action string, err error) {
	logger.Log.Error().Err(err).Str("action", action).Msg("Command failed")
	sendHTML(ctx, tg, chatID, fmt.Sprintf("❌ Failed to %s. Please try again.", action))
}

// handleStartCore greets the user.
func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil {
		return
	}

	firstName := ""
	if update.Message.From != nil {
		firstName = update.Message.From.FirstName
	}

	text := fmt.Sprintf(`👋 Welcome%s!

I keep track of your household money: what comes in, what goes out, and where it is heading.

<b>Quick Start:</b>
• Log an expense: <code>/expense 120 Food</code>
• Log an income: <code>/income 15000 Salary</code>
• See where you stand: <code>/summary</code>

Use /help to see all available commands.`,
		formatGreeting(firstName))

	sendHTML(ctx, tg, update.Message.Chat.ID, text)
}

// handleHelpCore lists the commands.
func (b *Bot) handleHelpCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := `📚 <b>Available Commands</b>

<b>Ledger:</b>
• <code>/expense &lt;amount&gt; &lt;category&gt; [dd.mm.yyyy] [description]</code> - Log an expense
• <code>/income &lt;amount&gt; &lt;source&gt; [dd.mm.yyyy] [description]</code> - Log an income
• <code>/list [days]</code> - Show recent entries grouped by date
• <code>/delete expense|income &lt;id&gt;</code> - Delete an entry

<b>Dashboard:</b>
• <code>/summary [mm.yyyy]</code> - Balance, salary cycle and daily limit
• <code>/insights</code> - Alerts about your spending
• <code>/forecast</code> - Next month's expense and the months after
• <code>/weekly [mm.yyyy]</code> - Weekly budget performance
• <code>/trend</code> - Income vs expense over six months
• <code>/chart [mm.yyyy]</code> - Category breakdown
• <code>/heatmap [mm.yyyy]</code> - Spend per day
• <code>/compare [mm.yyyy]</code> - Compare with the same month last year

<b>Planning:</b>
• <code>/salary 1|2 &lt;day&gt; &lt;amount&gt; [label]</code> - Set a payday
• <code>/budget &lt;amount&gt;|clear</code> - Set the monthly budget
• <code>/recurring add &lt;day&gt; &lt;amount&gt; &lt;name&gt; [category]</code>
• <code>/recurring list</code> / <code>/recurring delete &lt;n&gt;</code>
• <code>/goal add &lt;target&gt; &lt;title&gt;</code>
• <code>/goal list</code> / <code>/goal deposit &lt;n&gt; &lt;amount&gt;</code>
• <code>/goal main &lt;n&gt;</code> / <code>/goal delete &lt;n&gt;</code>

<b>AI:</b>
• <code>/ai</code> - Written financial report`

	sendHTML(ctx, tg, update.Message.Chat.ID, text)
}

// transactionUsage returns the usage line for /expense or /income.
func transactionUsage(command, label string) string {
	return fmt.Sprintf("Usage: <code>%s &lt;amount&gt; &lt;%s&gt; [dd.mm.yyyy] [description]</code>", command, label)
}

// parseTransactionReply maps a parser error to a user-facing message.
func parseTransactionReply(err error, command, label string) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "❌ Invalid amount. Use a positive number like <code>120</code> or <code>45.50</code>.\n\n" + transactionUsage(command, label)
	case errors.Is(err, ErrInvalidDate):
		return "❌ Invalid date. Use the <code>dd.mm.yyyy</code> format.\n\n" + transactionUsage(command, label)
	default:
		return "❌ " + transactionUsage(command, label)
	}
}

// handleExpenseCore records an expense.
func (b *Bot) handleExpenseCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	args := extractCommandArgs(update.Message.Text, "/expense")
	parsed, err := ParseTransactionArgs(args, b.now().In(b.loc))
	if err != nil {
		sendHTML(ctx, tg, chatID, parseTransactionReply(err, "/expense", "category"))
		return
	}

	expense := &appmodels.Expense{
		UserID:      userID,
		Date:        parsed.Date,
		Amount:      parsed.Amount,
		Category:    parsed.Label,
		Description: parsed.Description,
	}
	if err := b.stores.Expenses.Create(ctx, expense); err != nil {
		sendFailure(ctx, tg, chatID, "save expense", err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Int64("expense_id", expense.ID).
		Str("amount", expense.Amount.String()).
		Str("description", logger.SanitizeDescription(expense.Description)).
		Msg("Expense added")

	sendHTML(ctx, tg, chatID, fmt.Sprintf("✅ <b>Expense #%d saved</b>\n💸 %s\n🏷️ %s\n📅 %s%s",
		expense.ID, b.money(expense.Amount), escapeHTML(expense.Category), expense.Date,
		descriptionLine(expense.Description)))
}

// handleIncomeCore records an income.
func (b *Bot) handleIncomeCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	args := extractCommandArgs(update.Message.Text, "/income")
	parsed, err := ParseTransactionArgs(args, b.now().In(b.loc))
	if err != nil {
		sendHTML(ctx, tg, chatID, parseTransactionReply(err, "/income", "source"))
		return
	}

	income := &appmodels.Income{
		UserID:      userID,
		Date:        parsed.Date,
		Amount:      parsed.Amount,
		Source:      parsed.Label,
		Description: parsed.Description,
	}
	if err := b.stores.Incomes.Create(ctx, income); err != nil {
		sendFailure(ctx, tg, chatID, "save income", err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Int64("income_id", income.ID).
		Str("amount", income.Amount.String()).
		Msg("Income added")

	sendHTML(ctx, tg, chatID, fmt.Sprintf("✅ <b>Income #%d saved</b>\n💰 %s\n🏦 %s\n📅 %s%s",
		income.ID, b.money(income.Amount), escapeHTML(income.Source), income.Date,
		descriptionLine(income.Description)))
}

func descriptionLine(desc string) string {
	if desc == "" {
		return ""
	}
	return "\n📝 " + escapeHTML(desc)
}

// handleListCore shows recent ledger entries grouped by date, newest first.
func (b *Bot) handleListCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	limit := defaultListDates
	if args := extractCommandArgs(update.Message.Text, "/list"); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 || n > maxListDates {
			sendHTML(ctx, tg, chatID, fmt.Sprintf("❌ Usage: <code>/list [1-%d]</code>", maxListDates))
			return
		}
		limit = n
	}

	expenses, err := b.stores.Expenses.ListByUser(ctx, userID)
	if err != nil {
		sendFailure(ctx, tg, chatID, "load expenses", err)
		return
	}
	incomes, err := b.stores.Incomes.ListByUser(ctx, userID)
	if err != nil {
		sendFailure(ctx, tg, chatID, "load incomes", err)
		return
	}

	if len(expenses) == 0 && len(incomes) == 0 {
		sendHTML(ctx, tg, chatID, "📭 No entries yet. Log one with <code>/expense 120 Food</code>.")
		return
	}

	expenseGroups := finance.GroupExpensesByDate(expenses, b.loc)
	incomeGroups := finance.GroupIncomesByDate(incomes, b.loc)
	dates := mergeDatesDesc(expenseGroups.SortedDates, incomeGroups.SortedDates, b.loc)
	if len(dates) > limit {
		dates = dates[:limit]
	}

	var sb strings.Builder
	sb.WriteString("📒 <b>Recent Entries</b>\n")
	for _, date := range dates {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n", date)
		for _, in := range incomeGroups.Groups[date] {
			fmt.Fprintf(&sb, "  ➕ <code>#%d</code> %s %s%s\n",
				in.ID, b.money(in.Amount), escapeHTML(in.Source), inlineDescription(in.Description))
		}
		for _, e := range expenseGroups.Groups[date] {
			fmt.Fprintf(&sb, "  ➖ <code>#%d</code> %s %s%s\n",
				e.ID, b.money(e.Amount), escapeHTML(e.Category), inlineDescription(e.Description))
		}
	}

	for _, chunk := range splitMessage(sb.String(), maxMessageLength) {
		sendHTML(ctx, tg, chatID, chunk)
	}
}

func inlineDescription(desc string) string {
	if desc == "" {
		return ""
	}
	return " - " + escapeHTML(desc)
}

// handleDeleteCore removes an expense or income by ID.
func (b *Bot) handleDeleteCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	const usage = "❌ Usage: <code>/delete expense|income &lt;id&gt;</code>"

	fields := strings.Fields(extractCommandArgs(update.Message.Text, "/delete"))
	if len(fields) != 2 {
		sendHTML(ctx, tg, chatID, usage)
		return
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "#"), 10, 64)
	if err != nil || id <= 0 {
		sendHTML(ctx, tg, chatID, usage)
		return
	}

	kind := strings.ToLower(fields[0])
	switch kind {
	case "expense":
		err = b.stores.Expenses.Delete(ctx, userID, id)
	case "income":
		err = b.stores.Incomes.Delete(ctx, userID, id)
	default:
		sendHTML(ctx, tg, chatID, usage)
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		sendHTML(ctx, tg, chatID, fmt.Sprintf("❌ %s #%d not found.", capitalize(kind), id))
		return
	}
	if err != nil {
		sendFailure(ctx, tg, chatID, "delete "+kind, err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Str("kind", kind).
		Int64("id", id).
		Msg("Entry deleted")

	sendHTML(ctx, tg, chatID, fmt.Sprintf("🗑️ %s #%d deleted.", capitalize(kind), id))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
