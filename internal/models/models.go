// Package models defines the domain entities for the household finance tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of every transaction date (dd.MM.yyyy).
const DateLayout = "02.01.2006"

// DefaultCurrency is the display currency when none is configured.
const DefaultCurrency = "TRY"

// MaxCategoryNameLength is the maximum allowed length for category and source names.
const MaxCategoryNameLength = 50

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 200

// Default payday rules applied to users who have not configured their schedule.
const (
	DefaultSalary1Day = 5
	DefaultSalary2Day = 20
)

// User represents a Telegram user.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expense is a single outgoing ledger entry.
type Expense struct {
	ID          int64
	UserID      int64
	Date        string
	Amount      decimal.Decimal
	Category    string
	Description string
	CreatedAt   time.Time
}

// Income is a single incoming ledger entry.
type Income struct {
	ID          int64
	UserID      int64
	Date        string
	Amount      decimal.Decimal
	Source      string
	Description string
	CreatedAt   time.Time
}

// PaydayRule describes one of the two monthly salary payments.
type PaydayRule struct {
	Day    int
	Amount decimal.Decimal
	Label  string
}

// RecurringPayment is a fixed monthly obligation declared by the user.
type RecurringPayment struct {
	ID       string
	Day      int
	Amount   decimal.Decimal
	Name     string
	Category string
}

// UserProfile holds the salary schedule and budgeting preferences of a user.
type UserProfile struct {
	UserID            int64
	UserName          string
	Salary1           PaydayRule
	Salary2           PaydayRule
	RecurringPayments []RecurringPayment
	// MonthlyBudget is nil when the user has not set a budget.
	MonthlyBudget *decimal.Decimal
}

// Budget returns the monthly budget, or zero when none is set.
func (p UserProfile) Budget() decimal.Decimal {
	if p.MonthlyBudget == nil {
		return decimal.Zero
	}
	return *p.MonthlyBudget
}

// DefaultProfile returns the profile used before the user configures anything.
func DefaultProfile(userID int64, userName string) UserProfile {
	return UserProfile{
		UserID:   userID,
		UserName: userName,
		Salary1:  PaydayRule{Day: DefaultSalary1Day, Amount: decimal.Zero, Label: "Salary"},
		Salary2:  PaydayRule{Day: DefaultSalary2Day, Amount: decimal.Zero, Label: "Advance"},
	}
}

// Goal is a savings target tracked independently of the ledger.
type Goal struct {
	ID        string
	UserID    int64
	Title     string
	Target    decimal.Decimal
	Current   decimal.Decimal
	IsMain    bool
	CreatedAt time.Time
}

// IsCompleted reports whether the saved amount has reached the target.
func (g Goal) IsCompleted() bool {
	return g.Current.GreaterThanOrEqual(g.Target)
}

// FormatDate renders t in the ledger date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
