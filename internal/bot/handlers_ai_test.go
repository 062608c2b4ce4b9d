package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/household-finance/internal/bot/mocks"
	"gitlab.com/yelinaung/household-finance/internal/gemini"
)

type fakeSummarizer struct {
	report   string
	err      error
	data     gemini.FinancialData
	userName string
	currency string
}

func (f *fakeSummarizer) Summarize(_ context.Context, data gemini.FinancialData, userName, currency string) (string, error) {
	f.data = data
	f.userName = userName
	f.currency = currency
	return f.report, f.err
}

func TestHandleAICore(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		b, _, tg := setupTestBot(t)

		b.handleAICore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/ai"))

		require.Contains(t, tg.LastSentMessage().Text, "not configured")
	})

	t.Run("sends escaped report", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "10.03.2026", 250, "Food")
		fake := &fakeSummarizer{report: "Spending on <Food> is fine."}
		b.summarizer = fake

		b.handleAICore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/ai"))

		require.Equal(t, 2, tg.SentMessageCount())
		require.Equal(t, "Spending on &lt;Food&gt; is fine.", tg.LastSentMessage().Text)
		require.Equal(t, "Test", fake.userName)
		require.Equal(t, "TRY", fake.currency)
		require.Len(t, fake.data.Expenses, 1)
	})

	t.Run("splits long report", func(t *testing.T) {
		b, _, tg := setupTestBot(t)
		b.summarizer = &fakeSummarizer{report: strings.Repeat("line of analysis\n", 600)}

		b.handleAICore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/ai"))

		require.Greater(t, tg.SentMessageCount(), 2)
		for _, msg := range tg.SentMessages {
			require.LessOrEqual(t, len([]rune(msg.Text)), maxMessageLength)
		}
	})

	t.Run("reports summarizer failure", func(t *testing.T) {
		b, _, tg := setupTestBot(t)
		b.summarizer = &fakeSummarizer{err: errors.New("quota exceeded")}

		b.handleAICore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/ai"))

		require.Contains(t, tg.LastSentMessage().Text, "Could not generate the report")
	})
}
