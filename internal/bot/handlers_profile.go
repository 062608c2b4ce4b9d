package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	appmodels "gitlab.com/yelinaung/household-finance/internal/models"
	"gitlab.com/yelinaung/household-finance/internal/repository"
)

// handleSalaryCore shows or sets the two payday rules.
func (b *Bot) handleSalaryCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	const usage = "Usage: <code>/salary 1|2 &lt;day&gt; &lt;amount&gt; [label]</code>"

	fields := strings.Fields(extractCommandArgs(update.Message.Text, "/salary"))
	if len(fields) == 0 {
		profile, err := b.stores.Profiles.GetProfile(ctx, userID)
		if err != nil {
			sendFailure(ctx, tg, chatID, "load profile", err)
			return
		}
		sendHTML(ctx, tg, chatID, fmt.Sprintf("💼 <b>Paydays</b>\n1️⃣ %s\n2️⃣ %s\n\n%s",
			b.paydayLine(profile.Salary1), b.paydayLine(profile.Salary2), usage))
		return
	}
	if len(fields) < 3 {
		sendHTML(ctx, tg, chatID, "❌ "+usage)
		return
	}

	var slot int
	switch fields[0] {
	case "1":
		slot = repository.SalarySlot1
	case "2":
		slot = repository.SalarySlot2
	default:
		sendHTML(ctx, tg, chatID, "❌ Payday must be 1 or 2.\n\n"+usage)
		return
	}
	day, err := parseDay(fields[1])
	if err != nil {
		sendHTML(ctx, tg, chatID, "❌ Day must be between 1 and 31.")
		return
	}
	amount, err := parseAmount(fields[2])
	if err != nil {
		sendHTML(ctx, tg, chatID, "❌ Invalid amount.\n\n"+usage)
		return
	}
	label := "Salary"
	if slot == repository.SalarySlot2 {
		label = "Advance"
	}
	if len(fields) > 3 {
		label = truncateRunes(strings.Join(fields[3:], " "), appmodels.MaxCategoryNameLength)
	}

	rule := appmodels.PaydayRule{Day: day, Amount: amount, Label: label}
	if err := b.stores.Profiles.SetSalary(ctx, userID, slot, rule); err != nil {
		sendFailure(ctx, tg, chatID, "save payday", err)
		return
	}

	text := fmt.Sprintf("✅ Payday %d set: %s", slot, b.paydayLine(rule))
	if profile, err := b.stores.Profiles.GetProfile(ctx, userID); err == nil && profile.Salary1.Day >= profile.Salary2.Day {
		text += "\n\n⚠️ Payday 1 should fall before payday 2 in the month, otherwise cycle progress stays at zero."
	}
	sendHTML(ctx, tg, chatID, text)
}

func (b *Bot) paydayLine(r appmodels.PaydayRule) string {
	return fmt.Sprintf("%s on day %d (%s)", escapeHTML(r.Label), r.Day, b.money(r.Amount))
}

// handleBudgetCore shows, sets or clears the monthly budget.
func (b *Bot) handleBudgetCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	const usage = "Usage: <code>/budget &lt;amount&gt;</code> or <code>/budget clear</code>"

	args := extractCommandArgs(update.Message.Text, "/budget")
	switch strings.ToLower(args) {
	case "":
		profile, err := b.stores.Profiles.GetProfile(ctx, userID)
		if err != nil {
			sendFailure(ctx, tg, chatID, "load profile", err)
			return
		}
		if profile.MonthlyBudget == nil {
			sendHTML(ctx, tg, chatID, "💼 No monthly budget set.\n\n"+usage)
			return
		}
		sendHTML(ctx, tg, chatID, fmt.Sprintf("💼 Monthly budget: %s\n\n%s", b.money(*profile.MonthlyBudget), usage))
		return
	case "clear":
		if err := b.stores.Profiles.SetMonthlyBudget(ctx, userID, nil); err != nil {
			sendFailure(ctx, tg, chatID, "clear budget", err)
			return
		}
		sendHTML(ctx, tg, chatID, "✅ Monthly budget cleared.")
		return
	}

	amount, err := parseAmount(args)
	if err != nil {
		sendHTML(ctx, tg, chatID, "❌ Invalid amount.\n\n"+usage)
		return
	}
	if err := b.stores.Profiles.SetMonthlyBudget(ctx, userID, &amount); err != nil {
		sendFailure(ctx, tg, chatID, "save budget", err)
		return
	}
	sendHTML(ctx, tg, chatID, fmt.Sprintf("✅ Monthly budget set to %s.", b.money(amount)))
}

// handleRecurringCore manages recurring monthly payments.
func (b *Bot) handleRecurringCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	const usage = "Usage:\n<code>/recurring add &lt;day&gt; &lt;amount&gt; &lt;name&gt; [category]</code>\n" +
		"<code>/recurring list</code>\n<code>/recurring delete &lt;n&gt;</code>"

	fields := strings.Fields(extractCommandArgs(update.Message.Text, "/recurring"))
	sub := "list"
	if len(fields) > 0 {
		sub = strings.ToLower(fields[0])
		fields = fields[1:]
	}

	switch sub {
	case "list":
		profile, err := b.stores.Profiles.GetProfile(ctx, userID)
		if err != nil {
			sendFailure(ctx, tg, chatID, "load recurring payments", err)
			return
		}
		if len(profile.RecurringPayments) == 0 {
			sendHTML(ctx, tg, chatID, "🔁 No recurring payments.\n\n"+usage)
			return
		}
		var sb strings.Builder
		sb.WriteString("🔁 <b>Recurring payments</b>\n\n")
		for i, p := range profile.RecurringPayments {
			fmt.Fprintf(&sb, "%d. %s - %s on day %d", i+1, escapeHTML(p.Name), b.money(p.Amount), p.Day)
			if p.Category != "" {
				fmt.Fprintf(&sb, " [%s]", escapeHTML(p.Category))
			}
			sb.WriteString("\n")
		}
		sendHTML(ctx, tg, chatID, sb.String())

	case "add":
		if len(fields) < 3 {
			sendHTML(ctx, tg, chatID, "❌ "+usage)
			return
		}
		day, err := parseDay(fields[0])
		if err != nil {
			sendHTML(ctx, tg, chatID, "❌ Day must be between 1 and 31.")
			return
		}
		amount, err := parseAmount(fields[1])
		if err != nil {
			sendHTML(ctx, tg, chatID, "❌ Invalid amount.\n\n"+usage)
			return
		}
		p := &appmodels.RecurringPayment{
			Day:    day,
			Amount: amount,
			Name:   truncateRunes(fields[2], appmodels.MaxCategoryNameLength),
		}
		if len(fields) > 3 {
			p.Category = truncateRunes(strings.Join(fields[3:], " "), appmodels.MaxCategoryNameLength)
		}
		if err := b.stores.Profiles.AddRecurring(ctx, userID, p); err != nil {
			sendFailure(ctx, tg, chatID, "save recurring payment", err)
			return
		}
		sendHTML(ctx, tg, chatID, fmt.Sprintf("✅ Recurring payment added: %s - %s on day %d",
			escapeHTML(p.Name), b.money(p.Amount), p.Day))

	case "delete":
		if len(fields) != 1 {
			sendHTML(ctx, tg, chatID, "❌ "+usage)
			return
		}
		profile, err := b.stores.Profiles.GetProfile(ctx, userID)
		if err != nil {
			sendFailure(ctx, tg, chatID, "load recurring payments", err)
			return
		}
		idx, err := parseIndex(fields[0], len(profile.RecurringPayments))
		if err != nil {
			sendHTML(ctx, tg, chatID, "❌ No such recurring payment. See <code>/recurring list</code>.")
			return
		}
		p := profile.RecurringPayments[idx]
		err = b.stores.Profiles.DeleteRecurring(ctx, userID, p.ID)
		if errors.Is(err, repository.ErrNotFound) {
			sendHTML(ctx, tg, chatID, "❌ No such recurring payment. See <code>/recurring list</code>.")
			return
		}
		if err != nil {
			sendFailure(ctx, tg, chatID, "delete recurring payment", err)
			return
		}
		sendHTML(ctx, tg, chatID, fmt.Sprintf("🗑️ Recurring payment %s deleted.", escapeHTML(p.Name)))

	default:
		sendHTML(ctx, tg, chatID, "❌ "+usage)
	}
}
