package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/logger"
	appmodels "gitlab.com/yelinaung/household-finance/internal/models"
	"gitlab.com/yelinaung/household-finance/internal/repository"
)

const goalUsage = "Usage:\n<code>/goal add &lt;target&gt; &lt;title&gt;</code>\n<code>/goal list</code>\n" +
	"<code>/goal deposit &lt;n&gt; &lt;amount&gt;</code>\n<code>/goal main &lt;n&gt;</code>\n<code>/goal delete &lt;n&gt;</code>"

// handleGoalCore manages savings goals.
func (b *Bot) handleGoalCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	fields := strings.Fields(extractCommandArgs(update.Message.Text, "/goal"))
	sub := "list"
	if len(fields) > 0 {
		sub = strings.ToLower(fields[0])
		fields = fields[1:]
	}

	if sub == "add" {
		b.addGoal(ctx, tg, chatID, userID, fields)
		return
	}

	goals, err := b.stores.Goals.ListGoals(ctx, userID)
	if err != nil {
		sendFailure(ctx, tg, chatID, "load goals", err)
		return
	}

	switch sub {
	case "list":
		sendHTML(ctx, tg, chatID, b.renderGoals(goals))

	case "deposit":
		if len(fields) != 2 {
			sendHTML(ctx, tg, chatID, "❌ "+goalUsage)
			return
		}
		goal, ok := pickGoal(ctx, tg, chatID, goals, fields[0])
		if !ok {
			return
		}
		amount, err := parseAmount(fields[1])
		if err != nil {
			sendHTML(ctx, tg, chatID, "❌ Invalid amount.\n\n"+goalUsage)
			return
		}
		wasCompleted := goal.IsCompleted()
		updated, err := b.stores.Goals.Deposit(ctx, userID, goal.ID, amount)
		if err != nil {
			b.goalStoreFailure(ctx, tg, chatID, "deposit to goal", err)
			return
		}
		text := fmt.Sprintf("✅ Added %s to <b>%s</b>: %s / %s",
			b.money(amount), escapeHTML(updated.Title), b.money(updated.Current), b.money(updated.Target))
		if !wasCompleted && updated.IsCompleted() {
			text += "\n\n🎉 Goal reached!"
		}
		sendHTML(ctx, tg, chatID, text)

	case "main":
		if len(fields) != 1 {
			sendHTML(ctx, tg, chatID, "❌ "+goalUsage)
			return
		}
		goal, ok := pickGoal(ctx, tg, chatID, goals, fields[0])
		if !ok {
			return
		}
		if err := b.stores.Goals.SetMain(ctx, userID, goal.ID); err != nil {
			b.goalStoreFailure(ctx, tg, chatID, "set main goal", err)
			return
		}
		sendHTML(ctx, tg, chatID, fmt.Sprintf("⭐ <b>%s</b> is now your main goal.", escapeHTML(goal.Title)))

	case "delete":
		if len(fields) != 1 {
			sendHTML(ctx, tg, chatID, "❌ "+goalUsage)
			return
		}
		goal, ok := pickGoal(ctx, tg, chatID, goals, fields[0])
		if !ok {
			return
		}
		if err := b.stores.Goals.DeleteGoal(ctx, userID, goal.ID); err != nil {
			b.goalStoreFailure(ctx, tg, chatID, "delete goal", err)
			return
		}
		sendHTML(ctx, tg, chatID, fmt.Sprintf("🗑️ Goal <b>%s</b> deleted.", escapeHTML(goal.Title)))

	default:
		sendHTML(ctx, tg, chatID, "❌ "+goalUsage)
	}
}

func (b *Bot) addGoal(ctx context.Context, tg TelegramAPI, chatID, userID int64, fields []string) {
	if len(fields) < 2 {
		sendHTML(ctx, tg, chatID, "❌ "+goalUsage)
		return
	}
	target, err := parseAmount(fields[0])
	if err != nil {
		sendHTML(ctx, tg, chatID, "❌ Invalid target amount.\n\n"+goalUsage)
		return
	}
	goal := &appmodels.Goal{
		UserID:  userID,
		Title:   truncateRunes(strings.Join(fields[1:], " "), appmodels.MaxCategoryNameLength),
		Target:  target,
		Current: decimal.Zero,
	}
	if err := b.stores.Goals.CreateGoal(ctx, goal); err != nil {
		sendFailure(ctx, tg, chatID, "save goal", err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Str("goal_id", goal.ID).
		Msg("Goal created")

	sendHTML(ctx, tg, chatID, fmt.Sprintf("🏁 Goal <b>%s</b> created with a target of %s.",
		escapeHTML(goal.Title), b.money(goal.Target)))
}

func (b *Bot) renderGoals(goals []appmodels.Goal) string {
	if len(goals) == 0 {
		return "🏁 No goals yet.\n\n" + goalUsage
	}
	var sb strings.Builder
	sb.WriteString("🏁 <b>Goals</b>\n\n")
	for i, g := range goals {
		pct := 0.0
		if g.Target.IsPositive() {
			pct = g.Current.Div(g.Target).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		star := ""
		if g.IsMain {
			star = " ⭐"
		}
		fmt.Fprintf(&sb, "%d. <b>%s</b>%s\n%s %.0f%% (%s / %s)\n",
			i+1, escapeHTML(g.Title), star, progressBar(pct), pct, b.money(g.Current), b.money(g.Target))
	}
	return sb.String()
}

// pickGoal resolves a 1-based list position. ok is false when a reply was sent.
func pickGoal(ctx context.Context, tg TelegramAPI, chatID int64, goals []appmodels.Goal, arg string) (appmodels.Goal, bool) {
	idx, err := parseIndex(arg, len(goals))
	if err != nil {
		sendHTML(ctx, tg, chatID, "❌ No such goal. See <code>/goal list</code>.")
		return appmodels.Goal{}, false
	}
	return goals[idx], true
}

func (b *Bot) goalStoreFailure(ctx context.Context, tg TelegramAPI, chatID int64, action string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		sendHTML(ctx, tg, chatID, "❌ No such goal. See <code>/goal list</code>.")
		return
	}
	sendFailure(ctx, tg, chatID, action, err)
}
