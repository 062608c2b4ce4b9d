package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

type fakeExpenses struct {
	rows []models.Expense
	err  error
}

func (f fakeExpenses) ListByUser(_ context.Context, userID int64) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.err
}

type fakeIncomes struct {
	rows []models.Income
}

func (f fakeIncomes) ListByUser(_ context.Context, userID int64) ([]models.Income, error) {
	var out []models.Income
	for _, i := range f.rows {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeProfiles struct{}

func (fakeProfiles) GetProfile(_ context.Context, userID int64) (models.UserProfile, error) {
	return models.DefaultProfile(userID, "Ali"), nil
}

type fakeGoals struct {
	goals []models.Goal
}

func (f fakeGoals) ListGoals(_ context.Context, _ int64) ([]models.Goal, error) {
	return f.goals, nil
}

// blockingGoals waits until its context is cancelled.
type blockingGoals struct{}

func (blockingGoals) ListGoals(ctx context.Context, _ int64) ([]models.Goal, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestLoad(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	l := &Loader{
		Expenses: fakeExpenses{rows: []models.Expense{
			{UserID: 1, Date: "01.03.2024", Amount: decimal.NewFromInt(10), Category: "Food"},
			{UserID: 2, Date: "02.03.2024", Amount: decimal.NewFromInt(99), Category: "Food"},
		}},
		Incomes: fakeIncomes{rows: []models.Income{
			{UserID: 1, Date: "05.03.2024", Amount: decimal.NewFromInt(500), Source: "Salary"},
		}},
		Profiles: fakeProfiles{},
		Goals:    fakeGoals{goals: []models.Goal{{ID: "g", UserID: 1, Title: "Car", Target: decimal.NewFromInt(1000)}}},
	}

	s, err := l.Load(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, s.Expenses, 1)
	require.Len(t, s.Incomes, 1)
	require.Len(t, s.Goals, 1)
	require.Equal(t, int64(1), s.Profile.UserID)
	require.Equal(t, "Ali", s.Profile.UserName)
	require.True(t, s.Now.Equal(now))
}

func TestLoadPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	l := &Loader{
		Expenses: fakeExpenses{err: boom},
		Incomes:  fakeIncomes{},
		Profiles: fakeProfiles{},
		Goals:    blockingGoals{},
	}

	_, err := l.Load(context.Background(), 1, time.Now())
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "failed to load expenses")
}
