package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// Snapshot is an immutable view of one user's data at instant Now.
type Snapshot struct {
	Expenses []models.Expense
	Incomes  []models.Income
	Profile  models.UserProfile
	Goals    []models.Goal
	Now      time.Time
	// SelectedYear and SelectedMonth anchor the monthly dashboard. Zero values
	// select Now's month.
	SelectedYear  int
	SelectedMonth time.Month
}

func (s Snapshot) selected() (int, time.Month) {
	if s.SelectedYear == 0 || s.SelectedMonth == 0 {
		return s.Now.Year(), s.Now.Month()
	}
	return s.SelectedYear, s.SelectedMonth
}

// MonthView is the dashboard restricted to the selected month.
type MonthView struct {
	Year           int                        `json:"year"`
	Month          time.Month                 `json:"month"`
	Expenses       []models.Expense           `json:"-"`
	Incomes        []models.Income            `json:"-"`
	TotalExpense   decimal.Decimal            `json:"totalExpense"`
	TotalIncome    decimal.Decimal            `json:"totalIncome"`
	Balance        decimal.Decimal            `json:"balance"`
	CategoryTotals []CategoryAmount           `json:"categoryTotals"`
	ExpenseGroups  DateGroups[models.Expense] `json:"-"`
	IncomeGroups   DateGroups[models.Income]  `json:"-"`
}

// DerivedView is everything the dashboard shows, computed from one Snapshot.
type DerivedView struct {
	Totals         Totals                     `json:"totals"`
	Cycle          SalaryCycle                `json:"cycle"`
	NextSalary     NextSalaryInfo             `json:"nextSalary"`
	DailyLimit     decimal.Decimal            `json:"dailyLimit"`
	Insights       []Insight                  `json:"insights"`
	Chart          ChartData                  `json:"chart"`
	CategoryTotals []CategoryAmount           `json:"categoryTotals"`
	ExpenseGroups  DateGroups[models.Expense] `json:"-"`
	Trend          []MonthlyPoint             `json:"trend"`
	CategoryTrend  CategoryTrend              `json:"categoryTrend"`
	Weekly         []WeekAmount               `json:"weekly"`
	CategoryBudget []CategoryBudget           `json:"categoryBudget"`

	Month             MonthView       `json:"month"`
	WeeklyBudget      WeeklyBudget    `json:"weeklyBudget"`
	CumulativeBalance []BalancePoint  `json:"cumulativeBalance"`
	YearComparison    YearComparison  `json:"yearComparison"`
	ExpenseForecast   ForecastResult  `json:"expenseForecast"`
	BudgetDepletion   BudgetDepletion `json:"budgetDepletion"`
	GoalPrediction    *GoalPrediction `json:"goalPrediction"`
	IncomeProjection  []Projection    `json:"incomeProjection"`
	Heatmap           []HeatmapPoint  `json:"heatmap"`
}

// Engine derives dashboard views with a fixed set of thresholds.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an Engine.
func NewEngine(th Thresholds) *Engine {
	return &Engine{thresholds: th}
}

// Thresholds returns the heuristics the engine was built with.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Derive recomputes the whole dashboard from s. It never mutates s.
func (e *Engine) Derive(s Snapshot) DerivedView {
	now := s.Now
	loc := now.Location()
	th := e.thresholds

	var v DerivedView
	v.Totals = CalculateTotals(s.Incomes, s.Expenses)
	v.Cycle = CalculateGoalProgress(s.Profile, now)
	v.NextSalary = CalculateNextSalaryInfo(s.Profile, now)
	v.DailyLimit = CalculateDailyLimit(v.Totals.NetBalance, v.NextSalary.TargetDate, now)
	v.Chart = GetChartData(s.Expenses)
	v.CategoryTotals = CategoryTotals(s.Expenses)
	v.ExpenseGroups = GroupExpensesByDate(s.Expenses, loc)
	v.Insights = GenerateInsights(InsightInput{
		Expenses:       s.Expenses,
		TotalExpense:   v.Totals.TotalExpense,
		NetBalance:     v.Totals.NetBalance,
		CategoryTotals: v.CategoryTotals,
		DailyLimit:     v.DailyLimit,
		Profile:        s.Profile,
		Now:            now,
	}, th)
	v.Trend = TrendSeries(s.Incomes, s.Expenses, now, DefaultTrendMonths)
	v.CategoryTrend = CategoryTrendSeries(s.Expenses, now, DefaultCategoryTrendMonths)
	v.Weekly = WeeklyBreakdown(s.Expenses, now, DefaultWeeks)
	v.CategoryBudget = CategoryVsBudget(s.Expenses, now, th.CategoryBudgetPlaceholder)

	year, month := s.selected()
	v.Month = buildMonthView(s, year, month)
	v.WeeklyBudget = WeeklyBudgetPerformance(v.Month.Expenses, s.Profile.Budget(), loc)
	v.CumulativeBalance = CumulativeBalance(v.Month.Expenses, v.Month.Incomes, loc)
	v.YearComparison = CompareWithLastYear(s.Expenses, s.Incomes, year, month, loc)
	v.Heatmap = CalculateDailyHeatmap(s.Expenses, month, year, loc)

	anchor := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	history := MonthlySeries(s.Incomes, s.Expenses, anchor, th.ForecastHistoryMonths)
	monthlyExpenses := make([]float64, len(history))
	for i, h := range history {
		monthlyExpenses[i] = h.Expense.InexactFloat64()
	}
	v.ExpenseForecast = PredictNextMonthExpense(monthlyExpenses, th)
	v.IncomeProjection = ProjectNetIncome(history, th.ProjectionMonths, now)

	v.BudgetDepletion = CalculateBudgetDepletion(
		v.Month.TotalExpense.InexactFloat64(),
		s.Profile.Budget().InexactFloat64(),
		now.Day(),
		DaysInMonth(year, month, loc),
		now,
	)

	if goal := MainGoal(s.Goals); goal != nil {
		p := PredictGoalCompletion(goal, v.Month.Balance.InexactFloat64(), now)
		v.GoalPrediction = &p
	}

	return v
}

func buildMonthView(s Snapshot, year int, month time.Month) MonthView {
	loc := s.Now.Location()
	expenses := FilterExpensesByMonth(s.Expenses, year, month, loc)
	incomes := FilterIncomesByMonth(s.Incomes, year, month, loc)
	totalExpense := sumExpenses(expenses)
	totalIncome := sumIncomes(incomes)
	return MonthView{
		Year:           year,
		Month:          month,
		Expenses:       expenses,
		Incomes:        incomes,
		TotalExpense:   totalExpense,
		TotalIncome:    totalIncome,
		Balance:        totalIncome.Sub(totalExpense),
		CategoryTotals: CategoryTotals(expenses),
		ExpenseGroups:  GroupExpensesByDate(expenses, loc),
		IncomeGroups:   GroupIncomesByDate(incomes, loc),
	}
}
