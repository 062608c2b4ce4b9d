// Package snapshot assembles the immutable per-user input of the analytics engine.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/models"
	"golang.org/x/sync/errgroup"
)

// ExpenseStore lists a user's expenses.
type ExpenseStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Expense, error)
}

// IncomeStore lists a user's incomes.
type IncomeStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Income, error)
}

// ProfileStore reads a user's profile.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID int64) (models.UserProfile, error)
}

// GoalStore lists a user's savings goals.
type GoalStore interface {
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
}

// Loader reads the four inputs of a snapshot.
type Loader struct {
	Expenses ExpenseStore
	Incomes  IncomeStore
	Profiles ProfileStore
	Goals    GoalStore
}

// Load fetches everything the engine needs for userID concurrently. The first
// failing store cancels the others.
func (l *Loader) Load(ctx context.Context, userID int64, now time.Time) (finance.Snapshot, error) {
	var (
		expenses []models.Expense
		incomes  []models.Income
		profile  models.UserProfile
		goals    []models.Goal
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = l.Expenses.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		incomes, err = l.Incomes.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load incomes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profile, err = l.Profiles.GetProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = l.Goals.ListGoals(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return finance.Snapshot{}, err
	}

	return finance.Snapshot{
		Expenses: expenses,
		Incomes:  incomes,
		Profile:  profile,
		Goals:    goals,
		Now:      now,
	}, nil
}
