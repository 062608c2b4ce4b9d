package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/household-finance/internal/models"
	"pgregory.net/rapid"
)

func expense(date string, amount int64, category string) models.Expense {
	return models.Expense{Date: date, Amount: decimal.NewFromInt(amount), Category: category}
}

func income(date string, amount int64, source string) models.Income {
	return models.Income{Date: date, Amount: decimal.NewFromInt(amount), Source: source}
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func TestCalculateTotals(t *testing.T) {
	t.Parallel()

	t.Run("single income and expense", func(t *testing.T) {
		t.Parallel()

		totals := CalculateTotals(
			[]models.Income{income("01.01.2024", 1000, "Salary")},
			[]models.Expense{expense("01.01.2024", 100, "Food")},
		)
		requireDecimal(t, 1000, totals.TotalIncome)
		requireDecimal(t, 100, totals.TotalExpense)
		requireDecimal(t, 900, totals.NetBalance)
	})

	t.Run("empty ledger", func(t *testing.T) {
		t.Parallel()

		totals := CalculateTotals(nil, nil)
		require.True(t, totals.TotalIncome.IsZero())
		require.True(t, totals.TotalExpense.IsZero())
		require.True(t, totals.NetBalance.IsZero())
	})

	t.Run("malformed dates still count", func(t *testing.T) {
		t.Parallel()

		totals := CalculateTotals(nil, []models.Expense{expense("bogus", 40, "Food")})
		requireDecimal(t, -40, totals.NetBalance)
	})
}

func TestGroupExpensesByDate(t *testing.T) {
	t.Parallel()

	expenses := []models.Expense{
		expense("01.01.2024", 10, "Food"),
		expense("bad", 5, "Misc"),
		expense("15.01.2024", 20, "Food"),
		expense("01.01.2024", 30, "Bills"),
		expense("02.12.2023", 7, "Gifts"),
	}

	groups := GroupExpensesByDate(expenses, time.UTC)
	require.Equal(t, []string{"15.01.2024", "01.01.2024", "02.12.2023", "bad"}, groups.SortedDates)
	require.Len(t, groups.Groups["01.01.2024"], 2)
	require.Equal(t, "Bills", groups.Groups["01.01.2024"][1].Category)
}

func TestGroupIncomesByDate(t *testing.T) {
	t.Parallel()

	groups := GroupIncomesByDate([]models.Income{
		income("05.02.2024", 100, "Salary"),
		income("20.02.2024", 50, "Advance"),
	}, time.UTC)
	require.Equal(t, []string{"20.02.2024", "05.02.2024"}, groups.SortedDates)
}

func TestCategoryTotals(t *testing.T) {
	t.Parallel()

	cats := CategoryTotals([]models.Expense{
		expense("01.01.2024", 10, "Food"),
		expense("02.01.2024", 25, "Bills"),
		expense("03.01.2024", 5, "Food"),
	})
	require.Len(t, cats, 2)
	require.Equal(t, "Food", cats[0].Category)
	requireDecimal(t, 15, cats[0].Amount)
	require.Equal(t, "Bills", cats[1].Category)
	requireDecimal(t, 25, cats[1].Amount)
}

func TestGetChartData(t *testing.T) {
	t.Parallel()

	data := GetChartData([]models.Expense{
		expense("01.01.2024", 10, "Food"),
		expense("01.01.2024", 15, "Bills"),
		expense("02.01.2024", 5, "Food"),
	})
	requireDecimal(t, 15, data.CategoryMap["Food"])
	requireDecimal(t, 15, data.CategoryMap["Bills"])
	requireDecimal(t, 25, data.DateMap["01.01.2024"])
	requireDecimal(t, 5, data.DateMap["02.01.2024"])
}

func TestFilterByMonth(t *testing.T) {
	t.Parallel()

	expenses := []models.Expense{
		expense("31.01.2024", 10, "Food"),
		expense("01.02.2024", 20, "Food"),
		expense("15.02.2023", 30, "Food"),
		expense("xx.02.2024", 40, "Food"),
	}
	got := FilterExpensesByMonth(expenses, 2024, time.February, time.UTC)
	require.Len(t, got, 1)
	requireDecimal(t, 20, got[0].Amount)

	incomes := []models.Income{income("10.02.2024", 100, "Salary"), income("10.03.2024", 100, "Salary")}
	require.Len(t, FilterIncomesByMonth(incomes, 2024, time.March, time.UTC), 1)
}

func TestTrendSeries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	series := TrendSeries(
		[]models.Income{income("05.01.2024", 1000, "Salary"), income("05.03.2024", 1200, "Salary")},
		[]models.Expense{expense("20.12.2023", 300, "Gifts"), expense("02.03.2024", 100, "Food")},
		now, 6,
	)

	require.Len(t, series, 6)
	require.Equal(t, 2023, series[0].Year)
	require.Equal(t, time.October, series[0].Month)
	require.Equal(t, time.March, series[5].Month)

	requireDecimal(t, 300, series[2].Expense)
	requireDecimal(t, 1000, series[3].Income)
	requireDecimal(t, 0, series[4].Income)
	requireDecimal(t, 1100, series[5].Net())
}

func TestCategoryTrendSeries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	trend := CategoryTrendSeries([]models.Expense{
		expense("10.01.2024", 50, "Food"),
		expense("11.03.2024", 20, "Food"),
		expense("01.04.2024", 70, "Rent"),
		expense("01.01.2020", 5, "Old"),
	}, now, 4)

	require.Len(t, trend.RawDates, 4)
	require.Equal(t, time.January, trend.RawDates[0].Month())
	require.Len(t, trend.Datasets, 3)

	food := trend.Datasets[0]
	require.Equal(t, "Food", food.Label)
	require.Len(t, food.Data, 4)
	requireDecimal(t, 50, food.Data[0])
	requireDecimal(t, 0, food.Data[1])
	requireDecimal(t, 20, food.Data[2])

	old := trend.Datasets[2]
	require.Equal(t, "Old", old.Label)
	for _, v := range old.Data {
		require.True(t, v.IsZero())
	}
}

func TestWeeklyBreakdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 29, 10, 0, 0, 0, time.UTC)
	weeks := WeeklyBreakdown([]models.Expense{
		expense("29.03.2024", 1, "Food"),  // today at midnight, newest window
		expense("22.03.2024", 2, "Food"),  // older than now-7d, second window
		expense("02.03.2024", 4, "Food"),  // oldest window
		expense("29.02.2024", 8, "Food"),  // before every window
		expense("30.03.2024", 16, "Food"), // future
	}, now, 4)

	require.Len(t, weeks, 4)
	require.Equal(t, "1. Week", weeks[0].Label)
	require.Equal(t, "4. Week", weeks[3].Label)
	require.True(t, weeks[0].Start.Before(weeks[3].Start))

	requireDecimal(t, 4, weeks[0].Amount)
	requireDecimal(t, 0, weeks[1].Amount)
	requireDecimal(t, 2, weeks[2].Amount)
	requireDecimal(t, 1, weeks[3].Amount)
}

func TestWeeklyBreakdownWindowSum(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		now := time.Date(2024, time.June, 15, rapid.IntRange(0, 23).Draw(t, "hour"), 0, 0, 0, time.UTC)
		weeksCount := rapid.IntRange(0, 8).Draw(t, "weeks")
		n := rapid.IntRange(0, 30).Draw(t, "n")

		expenses := make([]models.Expense, n)
		for i := range expenses {
			d := now.AddDate(0, 0, -rapid.IntRange(-10, 70).Draw(t, "offset"))
			expenses[i] = models.Expense{
				Date:   models.FormatDate(d),
				Amount: decimal.NewFromInt(int64(rapid.IntRange(1, 1000).Draw(t, "amount"))),
			}
		}

		weeks := WeeklyBreakdown(expenses, now, weeksCount)
		if len(weeks) != weeksCount {
			t.Fatalf("got %d weeks, want %d", len(weeks), weeksCount)
		}

		sum := decimal.Zero
		for _, w := range weeks {
			sum = sum.Add(w.Amount)
		}

		from := now.AddDate(0, 0, -weeksCount*7)
		want := decimal.Zero
		for _, e := range expenses {
			d, ok := ParseDate(e.Date, time.UTC)
			if ok && !d.Before(from) && d.Before(now) {
				want = want.Add(e.Amount)
			}
		}
		if !sum.Equal(want) {
			t.Fatalf("weekly sum %s, want %s", sum, want)
		}
	})
}

func TestCategoryVsBudget(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	got := CategoryVsBudget([]models.Expense{
		expense("01.05.2024", 100, "Food"),
		expense("02.05.2024", 300, "Rent"),
		expense("03.05.2024", 100, "Fun"),
		expense("01.04.2024", 900, "Food"),
	}, now, decimal.NewFromInt(5000))

	require.Len(t, got, 3)
	require.Equal(t, "Rent", got[0].Category)
	require.Equal(t, "Food", got[1].Category)
	require.Equal(t, "Fun", got[2].Category)
	for _, c := range got {
		requireDecimal(t, 5000, c.Budget)
	}
}

func TestCompareWithLastYear(t *testing.T) {
	t.Parallel()

	cmp := CompareWithLastYear(
		[]models.Expense{expense("10.03.2023", 200, "Food"), expense("10.03.2024", 150, "Food")},
		[]models.Income{income("05.03.2024", 1000, "Salary")},
		2024, time.March, time.UTC,
	)
	require.Equal(t, 2023, cmp.LastYear.Year)
	requireDecimal(t, 200, cmp.LastYear.Expense)
	requireDecimal(t, -200, cmp.LastYear.Net)
	requireDecimal(t, 850, cmp.ThisYear.Net)
}

func TestCumulativeBalance(t *testing.T) {
	t.Parallel()

	points := CumulativeBalance(
		[]models.Expense{expense("03.01.2024", 50, "Food"), expense("01.01.2024", 30, "Food"), expense("??", 99, "Food")},
		[]models.Income{income("01.01.2024", 100, "Salary")},
		time.UTC,
	)
	require.Len(t, points, 3)
	requireDecimal(t, -30, points[0].Balance)
	requireDecimal(t, 70, points[1].Balance)
	requireDecimal(t, 20, points[2].Balance)
	require.Equal(t, 3, points[2].Day)
}

func TestWeeklyBudgetPerformance(t *testing.T) {
	t.Parallel()

	wb := WeeklyBudgetPerformance([]models.Expense{
		expense("01.06.2024", 10, "Food"),
		expense("07.06.2024", 10, "Food"),
		expense("08.06.2024", 5, "Food"),
		expense("21.06.2024", 3, "Food"),
		expense("30.06.2024", 1, "Food"),
	}, decimal.NewFromInt(400), time.UTC)

	requireDecimal(t, 100, wb.Budget)
	requireDecimal(t, 20, wb.Spent[0])
	requireDecimal(t, 5, wb.Spent[1])
	requireDecimal(t, 3, wb.Spent[2])
	requireDecimal(t, 1, wb.Spent[3])
}
