package finance

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// MonthsUnreachable is reported as MonthsRemaining when a goal cannot be reached.
const MonthsUnreachable = -1

// ForecastResult is a point prediction with a fixed heuristic band.
type ForecastResult struct {
	Predicted  float64 `json:"predicted"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Confidence float64 `json:"confidence"`
}

// PredictNextMonthExpense extrapolates monthly expense totals one month ahead.
// Fewer than two months yield an all-zero result.
func PredictNextMonthExpense(monthlyTotals []float64, th Thresholds) ForecastResult {
	if len(monthlyTotals) < 2 {
		return ForecastResult{}
	}

	reg := LinearRegression(monthlyTotals)
	predicted := math.Max(0, reg.Predict(float64(len(monthlyTotals))))
	band := predicted * th.ForecastBandRatio

	return ForecastResult{
		Predicted:  predicted,
		Min:        math.Max(0, predicted-band),
		Max:        predicted + band,
		Confidence: th.ForecastConfidence,
	}
}

// Projection is one projected future month.
type Projection struct {
	Month   time.Time `json:"month"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
	Net     float64   `json:"net"`
}

// ProjectNetIncome fits income and expense separately over history and projects
// months future months, clamping each projected side at zero.
func ProjectNetIncome(history []MonthlyPoint, months int, now time.Time) []Projection {
	out := make([]Projection, 0, max(months, 0))
	if len(history) < 2 {
		for i := 0; i < months; i++ {
			out = append(out, Projection{Month: now.AddDate(0, i+1, 0)})
		}
		return out
	}

	incomes := make([]float64, len(history))
	expenses := make([]float64, len(history))
	for i, h := range history {
		incomes[i] = h.Income.InexactFloat64()
		expenses[i] = h.Expense.InexactFloat64()
	}
	incomeReg := LinearRegression(incomes)
	expenseReg := LinearRegression(expenses)

	for i := 0; i < months; i++ {
		x := float64(len(history) + i)
		inc := math.Max(0, incomeReg.Predict(x))
		exp := math.Max(0, expenseReg.Predict(x))
		out = append(out, Projection{
			Month:   now.AddDate(0, i+1, 0),
			Income:  inc,
			Expense: exp,
			Net:     inc - exp,
		})
	}
	return out
}

// GoalPrediction estimates when a savings goal completes.
type GoalPrediction struct {
	GoalID                string     `json:"goalId"`
	CompletionDate        *time.Time `json:"completionDate"`
	MonthsRemaining       int        `json:"monthsRemaining"`
	RequiredMonthlySaving float64    `json:"requiredMonthlySaving"`
	IsPossible            bool       `json:"isPossible"`
	IsCompleted           bool       `json:"isCompleted"`
}

// PredictGoalCompletion estimates completion of goal at monthlySavings per month.
func PredictGoalCompletion(goal *models.Goal, monthlySavings float64, now time.Time) GoalPrediction {
	if goal == nil || monthlySavings <= 0 {
		p := GoalPrediction{MonthsRemaining: MonthsUnreachable}
		if goal != nil {
			p.GoalID = goal.ID
		}
		return p
	}

	remaining := goal.Target.Sub(goal.Current).InexactFloat64()
	if remaining <= 0 {
		done := now
		return GoalPrediction{
			GoalID:         goal.ID,
			CompletionDate: &done,
			IsPossible:     true,
			IsCompleted:    true,
		}
	}

	months := int(math.Ceil(remaining / monthlySavings))
	completion := now.AddDate(0, months, 0)
	return GoalPrediction{
		GoalID:                goal.ID,
		CompletionDate:        &completion,
		MonthsRemaining:       months,
		RequiredMonthlySaving: remaining / float64(months),
		IsPossible:            true,
	}
}

// MainGoal returns the goal flagged as main, else the first goal, else nil.
func MainGoal(goals []models.Goal) *models.Goal {
	for i := range goals {
		if goals[i].IsMain {
			return &goals[i]
		}
	}
	if len(goals) > 0 {
		return &goals[0]
	}
	return nil
}

// HeatmapPoint is one day's spend tagged with its weekday (0 = Sunday).
type HeatmapPoint struct {
	DateKey string          `json:"dateKey"`
	Weekday int             `json:"weekday"`
	Amount  decimal.Decimal `json:"amount"`
}

// CalculateDailyHeatmap sums a month's expenses per calendar day, oldest day first.
func CalculateDailyHeatmap(expenses []models.Expense, month time.Month, year int, loc *time.Location) []HeatmapPoint {
	totals := make(map[string]decimal.Decimal)
	weekdays := make(map[string]time.Weekday)
	for _, e := range expenses {
		d, ok := ParseDate(e.Date, loc)
		if !ok || d.Month() != month || d.Year() != year {
			continue
		}
		key := d.Format(time.DateOnly)
		totals[key] = totals[key].Add(e.Amount)
		weekdays[key] = d.Weekday()
	}

	out := make([]HeatmapPoint, 0, len(totals))
	for key, amount := range totals {
		out = append(out, HeatmapPoint{DateKey: key, Weekday: int(weekdays[key]), Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateKey < out[j].DateKey })
	return out
}
