package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// Default window sizes of the dashboard series.
const (
	DefaultTrendMonths         = 6
	DefaultCategoryTrendMonths = 4
	DefaultWeeks               = 4
)

// Totals is the all-time ledger balance.
type Totals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

// CalculateTotals sums every income and expense.
func CalculateTotals(incomes []models.Income, expenses []models.Expense) Totals {
	income := sumIncomes(incomes)
	expense := sumExpenses(expenses)
	return Totals{
		TotalIncome:  income,
		TotalExpense: expense,
		NetBalance:   income.Sub(expense),
	}
}

func sumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func sumIncomes(incomes []models.Income) decimal.Decimal {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Amount)
	}
	return total
}

// DateGroups maps ledger dates to the records logged on that date.
type DateGroups[T any] struct {
	Groups map[string][]T `json:"groups"`
	// SortedDates is newest first; unparseable dates go last in input order.
	SortedDates []string `json:"sortedDates"`
}

func groupByDate[T any](items []T, dateOf func(T) string, loc *time.Location) DateGroups[T] {
	groups := make(map[string][]T)
	var keys []string
	for _, item := range items {
		key := dateOf(item)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], item)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, okA := ParseDate(keys[i], loc)
		b, okB := ParseDate(keys[j], loc)
		switch {
		case okA && okB:
			return a.After(b)
		case okA:
			return true
		default:
			return false
		}
	})

	return DateGroups[T]{Groups: groups, SortedDates: keys}
}

// GroupExpensesByDate groups expenses by their ledger date, newest date first.
func GroupExpensesByDate(expenses []models.Expense, loc *time.Location) DateGroups[models.Expense] {
	return groupByDate(expenses, func(e models.Expense) string { return e.Date }, loc)
}

// GroupIncomesByDate groups incomes by their ledger date, newest date first.
func GroupIncomesByDate(incomes []models.Income, loc *time.Location) DateGroups[models.Income] {
	return groupByDate(incomes, func(i models.Income) string { return i.Date }, loc)
}

// CategoryAmount is the spend of one category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryTotals sums expenses per category in order of first appearance.
func CategoryTotals(expenses []models.Expense) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryAmount{Category: e.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// ChartData holds the category and date sums used by the dashboard charts.
type ChartData struct {
	CategoryMap map[string]decimal.Decimal `json:"categoryMap"`
	DateMap     map[string]decimal.Decimal `json:"dateMap"`
}

// GetChartData sums expense amounts by category and by date.
func GetChartData(expenses []models.Expense) ChartData {
	data := ChartData{
		CategoryMap: make(map[string]decimal.Decimal),
		DateMap:     make(map[string]decimal.Decimal),
	}
	for _, e := range expenses {
		data.CategoryMap[e.Category] = data.CategoryMap[e.Category].Add(e.Amount)
		data.DateMap[e.Date] = data.DateMap[e.Date].Add(e.Amount)
	}
	return data
}

// FilterExpensesByMonth keeps expenses dated in the given month.
func FilterExpensesByMonth(expenses []models.Expense, year int, month time.Month, loc *time.Location) []models.Expense {
	var out []models.Expense
	for _, e := range expenses {
		if inMonth(e.Date, year, month, loc) {
			out = append(out, e)
		}
	}
	return out
}

// FilterIncomesByMonth keeps incomes dated in the given month.
func FilterIncomesByMonth(incomes []models.Income, year int, month time.Month, loc *time.Location) []models.Income {
	var out []models.Income
	for _, i := range incomes {
		if inMonth(i.Date, year, month, loc) {
			out = append(out, i)
		}
	}
	return out
}

// MonthlyPoint is the income and expense of one calendar month.
type MonthlyPoint struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	RawDate time.Time       `json:"rawDate"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net returns income minus expense.
func (p MonthlyPoint) Net() decimal.Decimal {
	return p.Income.Sub(p.Expense)
}

// MonthlySeries returns count months ending at anchor's month, oldest first.
func MonthlySeries(incomes []models.Income, expenses []models.Expense, anchor time.Time, count int) []MonthlyPoint {
	loc := anchor.Location()
	out := make([]MonthlyPoint, 0, max(count, 0))
	for i := count - 1; i >= 0; i-- {
		d := monthStart(anchor, -i)
		out = append(out, MonthlyPoint{
			Year:    d.Year(),
			Month:   d.Month(),
			RawDate: d,
			Income:  sumIncomes(FilterIncomesByMonth(incomes, d.Year(), d.Month(), loc)),
			Expense: sumExpenses(FilterExpensesByMonth(expenses, d.Year(), d.Month(), loc)),
		})
	}
	return out
}

// TrendSeries returns the last months months of income and expense relative to now.
func TrendSeries(incomes []models.Income, expenses []models.Expense, now time.Time, months int) []MonthlyPoint {
	return MonthlySeries(incomes, expenses, now, months)
}

// CategorySeries is one category's monthly spend.
type CategorySeries struct {
	Label string            `json:"label"`
	Data  []decimal.Decimal `json:"data"`
}

// CategoryTrend is per-category monthly spend over a window of months.
type CategoryTrend struct {
	RawDates []time.Time      `json:"rawDates"`
	Datasets []CategorySeries `json:"datasets"`
}

// CategoryTrendSeries walks the last months months and sums each category seen
// anywhere in expenses, zero-filling months where it has no spend.
func CategoryTrendSeries(expenses []models.Expense, now time.Time, months int) CategoryTrend {
	loc := now.Location()
	cats := CategoryTotals(expenses)

	trend := CategoryTrend{Datasets: make([]CategorySeries, len(cats))}
	for i, c := range cats {
		trend.Datasets[i] = CategorySeries{Label: c.Category}
	}

	for i := months - 1; i >= 0; i-- {
		d := monthStart(now, -i)
		trend.RawDates = append(trend.RawDates, d)

		monthly := make(map[string]decimal.Decimal)
		for _, e := range FilterExpensesByMonth(expenses, d.Year(), d.Month(), loc) {
			monthly[e.Category] = monthly[e.Category].Add(e.Amount)
		}
		for j := range trend.Datasets {
			trend.Datasets[j].Data = append(trend.Datasets[j].Data, monthly[trend.Datasets[j].Label])
		}
	}
	return trend
}

// WeekAmount is the spend of one trailing seven-day window.
type WeekAmount struct {
	Label  string          `json:"label"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Amount decimal.Decimal `json:"amount"`
}

// WeeklyBreakdown sums expenses in weeks trailing windows [now-(i+1)*7d, now-i*7d).
// These are rolling windows, not calendar weeks. The result is oldest first and the
// oldest window is labelled "1. Week".
func WeeklyBreakdown(expenses []models.Expense, now time.Time, weeks int) []WeekAmount {
	loc := now.Location()
	out := make([]WeekAmount, 0, max(weeks, 0))
	for i := 0; i < weeks; i++ {
		start := now.AddDate(0, 0, -(i+1)*7)
		end := now.AddDate(0, 0, -i*7)

		total := decimal.Zero
		for _, e := range expenses {
			d, ok := ParseDate(e.Date, loc)
			if ok && !d.Before(start) && d.Before(end) {
				total = total.Add(e.Amount)
			}
		}

		week := WeekAmount{
			Label:  fmt.Sprintf("%d. Week", weeks-i),
			Start:  start,
			End:    end,
			Amount: total,
		}
		out = append([]WeekAmount{week}, out...)
	}
	return out
}

// CategoryBudget pairs a category's current-month spend with its budget.
type CategoryBudget struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Budget   decimal.Decimal `json:"budget"`
}

// CategoryVsBudget returns the current month's category spend, highest first,
// each against the same placeholder budget.
func CategoryVsBudget(expenses []models.Expense, now time.Time, placeholder decimal.Decimal) []CategoryBudget {
	current := FilterExpensesByMonth(expenses, now.Year(), now.Month(), now.Location())
	cats := CategoryTotals(current)

	out := make([]CategoryBudget, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryBudget{Category: c.Category, Spent: c.Amount, Budget: placeholder})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spent.GreaterThan(out[j].Spent)
	})
	return out
}

// PeriodTotals is income, expense and net for one month of one year.
type PeriodTotals struct {
	Year    int             `json:"year"`
	Expense decimal.Decimal `json:"expense"`
	Income  decimal.Decimal `json:"income"`
	Net     decimal.Decimal `json:"net"`
}

// YearComparison compares a month with the same month of the previous year.
type YearComparison struct {
	Month    time.Month   `json:"month"`
	LastYear PeriodTotals `json:"lastYear"`
	ThisYear PeriodTotals `json:"thisYear"`
}

// CompareWithLastYear totals the given month in year and year-1.
func CompareWithLastYear(expenses []models.Expense, incomes []models.Income, year int, month time.Month, loc *time.Location) YearComparison {
	totals := func(y int) PeriodTotals {
		exp := sumExpenses(FilterExpensesByMonth(expenses, y, month, loc))
		inc := sumIncomes(FilterIncomesByMonth(incomes, y, month, loc))
		return PeriodTotals{Year: y, Expense: exp, Income: inc, Net: inc.Sub(exp)}
	}
	return YearComparison{Month: month, LastYear: totals(year - 1), ThisYear: totals(year)}
}

// BalancePoint is the running balance after one transaction.
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Day     int             `json:"day"`
	Balance decimal.Decimal `json:"balance"`
}

// CumulativeBalance replays expenses and incomes in date order and records the
// running balance after each one. Same-day order is expenses first, then incomes.
func CumulativeBalance(expenses []models.Expense, incomes []models.Income, loc *time.Location) []BalancePoint {
	type movement struct {
		date   time.Time
		amount decimal.Decimal
	}

	moves := make([]movement, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		if d, ok := ParseDate(e.Date, loc); ok {
			moves = append(moves, movement{date: d, amount: e.Amount.Neg()})
		}
	}
	for _, i := range incomes {
		if d, ok := ParseDate(i.Date, loc); ok {
			moves = append(moves, movement{date: d, amount: i.Amount})
		}
	}
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].date.Before(moves[j].date) })

	balance := decimal.Zero
	out := make([]BalancePoint, 0, len(moves))
	for _, m := range moves {
		balance = balance.Add(m.amount)
		out = append(out, BalancePoint{Date: m.date, Day: m.date.Day(), Balance: balance})
	}
	return out
}

// WeeklyBudget is a month's spend split into day-of-month quarters.
type WeeklyBudget struct {
	Labels []string           `json:"labels"`
	Spent  [4]decimal.Decimal `json:"spent"`
	// Budget is the monthly budget divided by four.
	Budget decimal.Decimal `json:"budget"`
}

// WeeklyBudgetPerformance buckets a month's expenses by day of month
// (1-7, 8-14, 15-21, 22+) and pairs each bucket with a quarter of the budget.
func WeeklyBudgetPerformance(monthExpenses []models.Expense, monthlyBudget decimal.Decimal, loc *time.Location) WeeklyBudget {
	wb := WeeklyBudget{
		Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4"},
		Budget: monthlyBudget.Div(decimal.NewFromInt(4)),
	}
	for i := range wb.Spent {
		wb.Spent[i] = decimal.Zero
	}
	for _, e := range monthExpenses {
		d, ok := ParseDate(e.Date, loc)
		if !ok {
			continue
		}
		idx := min((d.Day()-1)/7, 3)
		wb.Spent[idx] = wb.Spent[idx].Add(e.Amount)
	}
	return wb
}
