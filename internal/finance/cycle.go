package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// SalaryCycle is the position of now inside the interval between two paydays.
type SalaryCycle struct {
	TitleText   string    `json:"titleText"`
	TargetLabel string    `json:"targetLabel"`
	StartDate   time.Time `json:"startDate"`
	TargetDate  time.Time `json:"targetDate"`
	Progress    float64   `json:"progress"`
	DaysLeft    int       `json:"daysLeft"`
	// TargetsSalary2 is true while waiting for the second payday of the month.
	TargetsSalary2 bool `json:"targetsSalary2"`
}

// ComputeCycle locates now between the paydays s1 and s2 (days of month).
// Between s1 and s2 the cycle runs to s2 of this month; otherwise it runs to the
// next s1. The calculation assumes s1 < s2.
func ComputeCycle(now time.Time, s1, s2 int) SalaryCycle {
	y, m, d := now.Date()
	loc := now.Location()

	var c SalaryCycle
	switch {
	case d >= s1 && d < s2:
		c.StartDate = time.Date(y, m, s1, 0, 0, 0, 0, loc)
		c.TargetDate = time.Date(y, m, s2, 0, 0, 0, 0, loc)
		c.TargetsSalary2 = true
	case d >= s2:
		c.StartDate = time.Date(y, m, s2, 0, 0, 0, 0, loc)
		c.TargetDate = time.Date(y, m+1, s1, 0, 0, 0, 0, loc)
	default:
		c.StartDate = time.Date(y, m-1, s2, 0, 0, 0, 0, loc)
		c.TargetDate = time.Date(y, m, s1, 0, 0, 0, 0, loc)
	}

	// A zero or negative span only happens when s1 >= s2; report no progress.
	if span := c.TargetDate.Sub(c.StartDate); span > 0 {
		p := float64(now.Sub(c.StartDate)) / float64(span) * 100
		c.Progress = min(max(p, 0), 100)
	}
	c.DaysLeft = ceilDays(c.TargetDate.Sub(now))
	return c
}

// CalculateGoalProgress is ComputeCycle over the profile's paydays, titled with
// the label of the payday being waited for.
func CalculateGoalProgress(profile models.UserProfile, now time.Time) SalaryCycle {
	c := ComputeCycle(now, profile.Salary1.Day, profile.Salary2.Day)
	c.TargetLabel = profile.Salary1.Label
	if c.TargetsSalary2 {
		c.TargetLabel = profile.Salary2.Label
	}
	c.TitleText = "Days until " + c.TargetLabel
	return c
}

// NextIncome is the payday expected next.
type NextIncome struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source"`
}

// NextSalaryInfo describes the next payday.
type NextSalaryInfo struct {
	TargetDate time.Time  `json:"targetDate"`
	NextIncome NextIncome `json:"nextIncome"`
}

// nextOccurrence returns payday day in now's month, or next month once the day
// has been reached.
func nextOccurrence(now time.Time, payday int) time.Time {
	y, m, d := now.Date()
	if d >= payday {
		m++
	}
	return time.Date(y, m, payday, 0, 0, 0, 0, now.Location())
}

// CalculateNextSalaryInfo picks the earlier of the two paydays' next occurrences.
// On equal dates salary2 wins.
func CalculateNextSalaryInfo(profile models.UserProfile, now time.Time) NextSalaryInfo {
	c1 := nextOccurrence(now, profile.Salary1.Day)
	c2 := nextOccurrence(now, profile.Salary2.Day)

	rule, target := profile.Salary2, c2
	if c1.Before(c2) {
		rule, target = profile.Salary1, c1
	}
	return NextSalaryInfo{
		TargetDate: target,
		NextIncome: NextIncome{Date: target, Amount: rule.Amount, Source: rule.Label},
	}
}

// CalculateDailyLimit spreads a positive net balance over the days left until target.
func CalculateDailyLimit(netBalance decimal.Decimal, target, now time.Time) decimal.Decimal {
	daysRemaining := ceilDays(max(0, target.Sub(now)))
	if daysRemaining > 0 && netBalance.IsPositive() {
		return netBalance.Div(decimal.NewFromInt(int64(daysRemaining)))
	}
	return decimal.Zero
}
