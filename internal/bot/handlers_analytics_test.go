package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/household-finance/internal/bot/mocks"
	appmodels "gitlab.com/yelinaung/household-finance/internal/models"
)

var pngMagic = []byte("\x89PNG")

func TestHandleSummaryCore(t *testing.T) {
	ctx := context.Background()

	t.Run("shows balances and cycle", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addIncome(t, store, "01.03.2026", 10000, "Salary")
		addExpense(t, store, "05.03.2026", 2500, "Rent")

		b.handleSummaryCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/summary"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "Balance: <b>7500.00 TRY</b>")
		require.Contains(t, text, "Days until Advance</b>: 5 days")
		require.Contains(t, text, "March 2026")
		require.Contains(t, text, "Lowest running balance: 7500.00 TRY on day 5")
		require.NotContains(t, text, "Budget")
	})

	t.Run("includes budget and main goal", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addIncome(t, store, "01.03.2026", 10000, "Salary")
		addExpense(t, store, "05.03.2026", 2500, "Rent")
		budget := decimal.NewFromInt(3000)
		require.NoError(t, store.Profiles.SetMonthlyBudget(ctx, testUserID, &budget))
		require.NoError(t, store.Goals.CreateGoal(ctx, &appmodels.Goal{
			UserID: testUserID,
			Title:  "Holiday",
			Target: decimal.NewFromInt(10000),
		}))

		b.handleSummaryCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/summary"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "Budget</b> 3000.00 TRY")
		require.Contains(t, text, "Holiday")
		require.Contains(t, text, "About 2 months to go")
	})

	t.Run("selects requested month", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "10.02.2026", 700, "Food")

		b.handleSummaryCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/summary 02.2026"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "February 2026")
		require.Contains(t, text, "Expense: 700.00 TRY")
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		b, _, tg := setupTestBot(t)

		b.handleSummaryCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/summary 13.2026"))

		require.Contains(t, tg.LastSentMessage().Text, "Invalid month")
	})

	t.Run("reports load failure", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		store.Goals.Err = errors.New("db down")

		b.handleSummaryCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/summary"))

		require.Contains(t, tg.LastSentMessage().Text, "Failed to build summary")
	})
}

func TestHandleInsightsCore(t *testing.T) {
	ctx := context.Background()

	t.Run("announces approaching payday", func(t *testing.T) {
		b, _, tg := setupTestBot(t)

		b.handleInsightsCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/insights"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "Payday approaching")
		require.Contains(t, text, "Advance arrives in 5 days.")
	})

	t.Run("warns about negative balance", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "10.03.2026", 500, "Food")

		b.handleInsightsCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/insights"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "Critical balance")
		require.Contains(t, text, "-500.00 TRY")
	})
}

func TestHandleForecastCore(t *testing.T) {
	ctx := context.Background()

	t.Run("needs two months of history", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "10.03.2026", 500, "Food")

		b.handleForecastCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/forecast"))

		require.Contains(t, tg.LastSentMessage().Text, "Not enough history")
	})

	t.Run("predicts next month", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "10.01.2026", 1000, "Food")
		addExpense(t, store, "10.02.2026", 2000, "Food")
		addExpense(t, store, "10.03.2026", 3000, "Food")

		b.handleForecastCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/forecast"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "Next month's expense")
		require.Contains(t, text, "85% confidence")
		require.Contains(t, text, "Projected net")
		require.Contains(t, text, "This month by category")
		require.NotContains(t, text, "Budget</b>")
	})

	t.Run("includes budget depletion", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		budget := decimal.NewFromInt(3000)
		require.NoError(t, store.Profiles.SetMonthlyBudget(ctx, testUserID, &budget))
		addExpense(t, store, "10.02.2026", 2000, "Food")
		addExpense(t, store, "10.03.2026", 3000, "Food")

		b.handleForecastCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/forecast"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "Budget</b> 3000.00 TRY: 100% used, ⚠️ over pace")
	})
}

func TestHandleWeeklyCore(t *testing.T) {
	b, store, tg := setupTestBot(t)
	ctx := context.Background()
	budget := decimal.NewFromInt(4000)
	require.NoError(t, store.Profiles.SetMonthlyBudget(ctx, testUserID, &budget))
	addExpense(t, store, "02.03.2026", 500, "Food")
	addExpense(t, store, "09.03.2026", 1200, "Bills")

	b.handleWeeklyCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/weekly"))

	require.Equal(t, 1, tg.SentMessageCount())
	text := tg.LastSentMessage().Text
	require.Contains(t, text, "Week 1: 500.00 TRY")
	require.Contains(t, text, "Week 2: 1200.00 TRY ⚠️")
	require.Contains(t, text, "Weekly budget: 1000.00 TRY")
	require.Contains(t, text, "Last four weeks")

	require.Equal(t, 1, tg.SentPhotoCount())
	photo := tg.LastSentPhoto()
	require.Equal(t, "weekly_2026-03-15.png", photo.Filename)
	require.True(t, len(photo.Data) > 4)
	require.Equal(t, pngMagic, photo.Data[:4])
}

func TestHandleHeatmapCore(t *testing.T) {
	ctx := context.Background()

	t.Run("no expenses", func(t *testing.T) {
		b, _, tg := setupTestBot(t)

		b.handleHeatmapCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/heatmap"))

		require.Contains(t, tg.LastSentMessage().Text, "No expenses in March 2026")
	})

	t.Run("lists days with weekday", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "01.03.2026", 100, "Food")
		addExpense(t, store, "03.03.2026", 400, "Food")
		addExpense(t, store, "03.02.2026", 999, "Food")

		b.handleHeatmapCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/heatmap"))

		text := tg.LastSentMessage().Text
		require.Contains(t, text, "<code>Sun  1</code> 🟨 100.00 TRY")
		require.Contains(t, text, "<code>Tue  3</code> 🟥 400.00 TRY")
		require.NotContains(t, text, "999")
	})
}

func TestHandleCompareCore(t *testing.T) {
	b, store, tg := setupTestBot(t)
	addExpense(t, store, "10.03.2025", 100, "Food")
	addExpense(t, store, "10.03.2026", 150, "Food")

	b.handleCompareCore(context.Background(), tg, mocks.CommandUpdate(testChatID, testUserID, "/compare"))

	text := tg.LastSentMessage().Text
	require.Contains(t, text, "March: 2026 vs 2025")
	require.Contains(t, text, "Expense: 150.00 TRY vs 100.00 TRY (+50%)")
}

func TestHandleTrendCore(t *testing.T) {
	ctx := context.Background()

	t.Run("no entries", func(t *testing.T) {
		b, _, tg := setupTestBot(t)

		b.handleTrendCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/trend"))

		require.Contains(t, tg.LastSentMessage().Text, "No entries")
		require.Equal(t, 0, tg.SentPhotoCount())
	})

	t.Run("sends chart", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addIncome(t, store, "05.02.2026", 20000, "Salary")
		addExpense(t, store, "10.02.2026", 8000, "Rent")
		addExpense(t, store, "10.03.2026", 9000, "Rent")

		b.handleTrendCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/trend"))

		require.Equal(t, 1, tg.SentPhotoCount())
		photo := tg.LastSentPhoto()
		require.Equal(t, "trend_2026-03-15.png", photo.Filename)
		require.Contains(t, photo.Caption, "Net: 3000.00 TRY")
		require.Equal(t, pngMagic, photo.Data[:4])
	})
}

func TestHandleChartCore(t *testing.T) {
	ctx := context.Background()

	t.Run("no expenses in month", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "10.02.2026", 100, "Food")

		b.handleChartCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/chart"))

		require.Contains(t, tg.LastSentMessage().Text, "No expenses found for March 2026")
	})

	t.Run("sends pie chart", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "02.03.2026", 200, "Food")
		addExpense(t, store, "04.03.2026", 100, "Transport")

		b.handleChartCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/chart"))

		require.Equal(t, 1, tg.SentPhotoCount())
		photo := tg.LastSentPhoto()
		require.Contains(t, photo.Caption, "Total: 300.00 TRY")
		require.Contains(t, photo.Caption, "Count: 2 expenses")
		require.Equal(t, pngMagic, photo.Data[:4])
	})

	t.Run("reports failed upload", func(t *testing.T) {
		b, store, tg := setupTestBot(t)
		addExpense(t, store, "02.03.2026", 200, "Food")
		tg.SendPhotoError = errors.New("upload failed")

		b.handleChartCore(ctx, tg, mocks.CommandUpdate(testChatID, testUserID, "/chart"))

		require.Contains(t, tg.LastSentMessage().Text, "Failed to send chart")
	})
}
