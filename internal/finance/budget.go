package finance

import (
	"math"
	"time"
)

// BudgetDepletion projects when the monthly budget runs out at the current pace.
type BudgetDepletion struct {
	DaysLeft int `json:"daysLeft"`
	// DepletionDate is nil only before the first day of spending is counted.
	DepletionDate       *time.Time `json:"depletionDate"`
	SafeSpendingRate    float64    `json:"safeSpendingRate"`
	CurrentSpendingRate float64    `json:"currentSpendingRate"`
	IsOnTrack           bool       `json:"isOnTrack"`
	PercentUsed         float64    `json:"percentUsed"`
}

// CalculateBudgetDepletion compares spent so far against budget on day currentDay
// of a month of daysInMonth days.
func CalculateBudgetDepletion(spent, budget float64, currentDay, daysInMonth int, now time.Time) BudgetDepletion {
	remaining := budget - spent
	daysRemaining := daysInMonth - currentDay

	if currentDay == 0 {
		safe := 0.0
		if daysInMonth > 0 {
			safe = budget / float64(daysInMonth)
		}
		return BudgetDepletion{
			DaysLeft:         daysInMonth,
			SafeSpendingRate: safe,
			IsOnTrack:        true,
		}
	}

	dailyAverage := spent / float64(currentDay)

	daysUntil := 0
	if remaining > 0 && dailyAverage > 0 {
		daysUntil = int(math.Floor(remaining / dailyAverage))
	}

	depletion := now
	if daysUntil > 0 {
		depletion = now.AddDate(0, 0, daysUntil)
	}

	res := BudgetDepletion{
		DaysLeft:            daysUntil,
		DepletionDate:       &depletion,
		SafeSpendingRate:    math.Max(0, remaining/float64(max(daysRemaining, 1))),
		CurrentSpendingRate: dailyAverage,
		IsOnTrack:           true,
	}
	if budget > 0 {
		if daysInMonth > 0 {
			res.IsOnTrack = dailyAverage <= budget/float64(daysInMonth)
		}
		res.PercentUsed = spent / budget * 100
	}
	return res
}
