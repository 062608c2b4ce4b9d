package bot

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/finance"
)

// maxMessageLength stays under Telegram's 4096 character limit.
const maxMessageLength = 4000

// escapeHTML escapes user text for ParseModeHTML messages.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// formatGreeting returns a greeting suffix with the user's name.
func formatGreeting(firstName string) string {
	if firstName == "" {
		return ""
	}
	return ", " + escapeHTML(firstName)
}

// money renders an amount in the configured display currency.
func (b *Bot) money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + b.cfg.Currency
}

// moneyFloat renders a float amount in the configured display currency.
func (b *Bot) moneyFloat(f float64) string {
	return b.money(decimal.NewFromFloat(f))
}

// progressBar draws a ten-cell bar for a percentage.
func progressBar(percent float64) string {
	filled := int(percent / 10)
	filled = max(0, min(filled, 10))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// splitMessage cuts text into chunks Telegram accepts, preferring line breaks.
func splitMessage(text string, limit int) []string {
	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// mergeDatesDesc unions two newest-first ledger date lists, newest first.
func mergeDatesDesc(a, b []string, loc *time.Location) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, d := range append(slices.Clone(a), b...) {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(x, y string) int {
		tx, okx := finance.ParseDate(x, loc)
		ty, oky := finance.ParseDate(y, loc)
		switch {
		case okx && oky:
			return ty.Compare(tx)
		case okx:
			return -1
		case oky:
			return 1
		}
		return 0
	})
	return out
}

// monthLabel renders "March 2024".
func monthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}
