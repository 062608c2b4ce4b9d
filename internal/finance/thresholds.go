package finance

import "github.com/shopspring/decimal"

// Thresholds are the tunable heuristics of the insight and forecast rules.
type Thresholds struct {
	// HighSpendingRatio flags average daily spend above DailyLimit*ratio.
	HighSpendingRatio float64
	// BudgetControlRatio praises average daily spend below DailyLimit*ratio.
	BudgetControlRatio float64
	// CategorySharePercent flags a top category above this share of total spend.
	CategorySharePercent float64
	// SalaryApproachingDays is the upper bound of the payday countdown insight.
	SalaryApproachingDays int
	// UpcomingPaymentDays is the look-ahead for recurring payment reminders.
	UpcomingPaymentDays int
	// ForecastBandRatio is the half-width of the forecast band relative to the prediction.
	ForecastBandRatio float64
	// ForecastConfidence is the constant confidence reported with a forecast.
	ForecastConfidence float64
	// ForecastHistoryMonths is how many months feed the expense forecast and projection.
	ForecastHistoryMonths int
	// ProjectionMonths is how many future months the income projection covers.
	ProjectionMonths int
	// CategoryBudgetPlaceholder is the per-category budget shown against spend.
	CategoryBudgetPlaceholder decimal.Decimal
}

// DefaultThresholds returns the stock heuristics.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighSpendingRatio:         1.1,
		BudgetControlRatio:        0.85,
		CategorySharePercent:      35,
		SalaryApproachingDays:     7,
		UpcomingPaymentDays:       5,
		ForecastBandRatio:         0.15,
		ForecastConfidence:        0.85,
		ForecastHistoryMonths:     6,
		ProjectionMonths:          6,
		CategoryBudgetPlaceholder: decimal.NewFromInt(5000),
	}
}
