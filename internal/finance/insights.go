package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// Severity ranks an insight for display.
type Severity string

// Insight severities.
const (
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityPositive Severity = "positive"
)

// InsightKind identifies the rule that produced an insight.
type InsightKind string

// Insight kinds in evaluation order.
const (
	InsightCriticalBalance    InsightKind = "critical-balance"
	InsightHighSpending       InsightKind = "high-spending"
	InsightBudgetControl      InsightKind = "budget-control"
	InsightCategoryWarning    InsightKind = "category-warning"
	InsightPaymentApproaching InsightKind = "payment-approaching"
	InsightUpcomingPayment    InsightKind = "upcoming-payment"
)

// Insight is a localizable observation. The renderer resolves TitleKey and
// TextKey and interpolates Params.
type Insight struct {
	Kind     InsightKind    `json:"kind"`
	TitleKey string         `json:"titleKey"`
	TextKey  string         `json:"textKey"`
	Params   map[string]any `json:"params"`
	Severity Severity       `json:"severity"`
	Icon     string         `json:"icon"`
}

// InsightInput is everything the rules look at.
type InsightInput struct {
	Expenses       []models.Expense
	TotalExpense   decimal.Decimal
	NetBalance     decimal.Decimal
	CategoryTotals []CategoryAmount
	DailyLimit     decimal.Decimal
	Profile        models.UserProfile
	Now            time.Time
}

func newInsight(kind InsightKind, key string, sev Severity, icon string, params map[string]any) Insight {
	return Insight{
		Kind:     kind,
		TitleKey: "dashboard.insights." + key + "Title",
		TextKey:  "dashboard.insights." + key + "Text",
		Params:   params,
		Severity: sev,
		Icon:     icon,
	}
}

// GenerateInsights evaluates the rules in fixed order. Each rule adds at most one
// insight, except upcoming payments which add one per qualifying payment.
func GenerateInsights(in InsightInput, th Thresholds) []Insight {
	insights := []Insight{}

	spendingDays := make(map[string]struct{})
	for _, e := range in.Expenses {
		spendingDays[e.Date] = struct{}{}
	}
	avgDailySpend := in.TotalExpense.Div(decimal.NewFromInt(int64(max(len(spendingDays), 1))))

	if in.NetBalance.IsNegative() {
		insights = append(insights, newInsight(InsightCriticalBalance, "criticalBalance", SeverityHigh, "⚠️",
			map[string]any{"balance": in.NetBalance.StringFixed(2)}))
	} else {
		high := in.DailyLimit.Mul(decimal.NewFromFloat(th.HighSpendingRatio))
		low := in.DailyLimit.Mul(decimal.NewFromFloat(th.BudgetControlRatio))
		switch {
		case avgDailySpend.GreaterThan(high):
			insights = append(insights, newInsight(InsightHighSpending, "highSpending", SeverityHigh, "🔥",
				map[string]any{"avg": avgDailySpend.StringFixed(2), "target": in.DailyLimit.StringFixed(2)}))
		case avgDailySpend.LessThan(low):
			insights = append(insights, newInsight(InsightBudgetControl, "budgetControl", SeverityPositive, "🛡️",
				map[string]any{"avg": avgDailySpend.StringFixed(2)}))
		}
	}

	if top, ok := topCategory(in.CategoryTotals); ok && in.TotalExpense.IsPositive() {
		perc := top.Amount.Div(in.TotalExpense).Mul(decimal.NewFromInt(100)).Round(0)
		if perc.GreaterThan(decimal.NewFromFloat(th.CategorySharePercent)) {
			insights = append(insights, newInsight(InsightCategoryWarning, "categoryWarning", SeverityMedium, "📊",
				map[string]any{
					"category": top.Category,
					"percent":  perc.IntPart(),
					"amount":   top.Amount.StringFixed(2),
				}))
		}
	}

	next := CalculateNextSalaryInfo(in.Profile, in.Now)
	if daysLeft := ceilDays(next.TargetDate.Sub(in.Now)); daysLeft > 0 && daysLeft <= th.SalaryApproachingDays {
		source := next.NextIncome.Source
		if source == "" {
			source = "Income"
		}
		insights = append(insights, newInsight(InsightPaymentApproaching, "paymentApproaching", SeverityPositive, "⏳",
			map[string]any{"source": source, "days": daysLeft}))
	}

	for _, p := range in.Profile.RecurringPayments {
		daysUntil := DaysUntilPayment(p.Day, in.Now)
		if daysUntil >= 0 && daysUntil <= th.UpcomingPaymentDays {
			insights = append(insights, newInsight(InsightUpcomingPayment, "upcomingPayment", SeverityHigh, "🔔",
				map[string]any{"name": p.Name, "days": daysUntil}))
		}
	}

	return insights
}

// DaysUntilPayment counts days to the next occurrence of a recurring payment day.
// The payment rolls to next month only once its day has passed, so a payment
// due today reports 0.
func DaysUntilPayment(payDay int, now time.Time) int {
	y, m, d := now.Date()
	if d > payDay {
		m++
	}
	target := time.Date(y, m, payDay, 0, 0, 0, 0, now.Location())
	return ceilDays(target.Sub(now))
}

// topCategory returns the highest-spend category; ties keep the earlier one.
func topCategory(cats []CategoryAmount) (CategoryAmount, bool) {
	var top CategoryAmount
	found := false
	for _, c := range cats {
		if c.Amount.GreaterThan(decimal.Zero) && (!found || c.Amount.GreaterThan(top.Amount)) {
			top = c
			found = true
		}
	}
	return top, found
}
