package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/household-finance/internal/models"
	"pgregory.net/rapid"
)

func profileWithPaydays(s1, s2 int) models.UserProfile {
	p := models.DefaultProfile(1, "tester")
	p.Salary1.Day = s1
	p.Salary1.Amount = decimal.NewFromInt(3000)
	p.Salary2.Day = s2
	p.Salary2.Amount = decimal.NewFromInt(1000)
	return p
}

func TestComputeCycle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		now          time.Time
		s1, s2       int
		wantStart    time.Time
		wantTarget   time.Time
		wantProgress float64
		wantDaysLeft int
		wantSalary2  bool
	}{
		{
			name:         "between paydays",
			now:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			s1:           1,
			s2:           15,
			wantStart:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantTarget:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			wantProgress: 9.0 / 14.0 * 100,
			wantDaysLeft: 5,
			wantSalary2:  true,
		},
		{
			name:         "after second payday",
			now:          time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC),
			s1:           5,
			s2:           20,
			wantStart:    time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
			wantTarget:   time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
			wantProgress: 5.0 / 16.0 * 100,
			wantDaysLeft: 11,
		},
		{
			name:         "before first payday",
			now:          time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			s1:           5,
			s2:           20,
			wantStart:    time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			wantTarget:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			wantProgress: 11.0 / 14.0 * 100,
			wantDaysLeft: 3,
		},
		{
			name:         "year rollover",
			now:          time.Date(2023, time.December, 28, 12, 0, 0, 0, time.UTC),
			s1:           1,
			s2:           15,
			wantStart:    time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			wantTarget:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantProgress: 13.5 / 17.0 * 100,
			wantDaysLeft: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := ComputeCycle(tt.now, tt.s1, tt.s2)
			require.True(t, tt.wantStart.Equal(c.StartDate), "start %v", c.StartDate)
			require.True(t, tt.wantTarget.Equal(c.TargetDate), "target %v", c.TargetDate)
			require.InDelta(t, tt.wantProgress, c.Progress, 1e-9)
			require.Equal(t, tt.wantDaysLeft, c.DaysLeft)
			require.Equal(t, tt.wantSalary2, c.TargetsSalary2)
		})
	}
}

func TestComputeCycleScenarioRounded(t *testing.T) {
	t.Parallel()

	c := ComputeCycle(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 1, 15)
	require.InDelta(t, 64.3, c.Progress, 0.05)
	require.Equal(t, 5, c.DaysLeft)
}

func TestComputeCycleReversedPaydays(t *testing.T) {
	t.Parallel()

	// s1 >= s2 is not a supported schedule; only check that nothing blows up.
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	c := ComputeCycle(now, 15, 15)
	require.GreaterOrEqual(t, c.Progress, 0.0)
	require.LessOrEqual(t, c.Progress, 100.0)

	c = ComputeCycle(now, 20, 5)
	require.GreaterOrEqual(t, c.Progress, 0.0)
	require.LessOrEqual(t, c.Progress, 100.0)
}

func TestComputeCycleProgressMonotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s1 := rapid.IntRange(1, 27).Draw(t, "s1")
		s2 := rapid.IntRange(s1+1, 28).Draw(t, "s2")
		month := time.Month(rapid.IntRange(1, 12).Draw(t, "month"))
		anchor := time.Date(2024, month, rapid.IntRange(1, 28).Draw(t, "day"), 0, 0, 0, 0, time.UTC)

		c := ComputeCycle(anchor, s1, s2)
		if got := ComputeCycle(c.StartDate, s1, s2).Progress; got != 0 {
			t.Fatalf("progress at start = %v, want 0", got)
		}

		span := c.TargetDate.Sub(c.StartDate)
		a := time.Duration(rapid.Int64Range(0, int64(span)-1).Draw(t, "a"))
		b := time.Duration(rapid.Int64Range(int64(a), int64(span)-1).Draw(t, "b"))

		ca := ComputeCycle(c.StartDate.Add(a), s1, s2)
		cb := ComputeCycle(c.StartDate.Add(b), s1, s2)
		if !ca.StartDate.Equal(c.StartDate) || !cb.TargetDate.Equal(c.TargetDate) {
			t.Fatalf("instants inside the cycle resolved to a different cycle")
		}
		if ca.Progress > cb.Progress {
			t.Fatalf("progress decreased: %v at +%v, %v at +%v", ca.Progress, a, cb.Progress, b)
		}
		if cb.Progress < 0 || cb.Progress > 100 {
			t.Fatalf("progress %v out of range", cb.Progress)
		}
	})
}

func TestCalculateGoalProgress(t *testing.T) {
	t.Parallel()

	p := profileWithPaydays(5, 20)

	c := CalculateGoalProgress(p, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "Advance", c.TargetLabel)
	require.Equal(t, "Days until Advance", c.TitleText)

	c = CalculateGoalProgress(p, time.Date(2024, time.May, 22, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "Salary", c.TargetLabel)
}

func TestCalculateNextSalaryInfo(t *testing.T) {
	t.Parallel()

	t.Run("salary1 is next", func(t *testing.T) {
		t.Parallel()

		info := CalculateNextSalaryInfo(profileWithPaydays(5, 20), time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC))
		require.True(t, time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC).Equal(info.TargetDate))
		require.Equal(t, "Salary", info.NextIncome.Source)
		requireDecimal(t, 3000, info.NextIncome.Amount)
	})

	t.Run("payday itself rolls over", func(t *testing.T) {
		t.Parallel()

		info := CalculateNextSalaryInfo(profileWithPaydays(5, 20), time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC))
		require.True(t, time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC).Equal(info.TargetDate))
		require.Equal(t, "Salary", info.NextIncome.Source)
	})

	t.Run("equal dates pick salary2", func(t *testing.T) {
		t.Parallel()

		info := CalculateNextSalaryInfo(profileWithPaydays(10, 10), time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC))
		require.Equal(t, "Advance", info.NextIncome.Source)
		requireDecimal(t, 1000, info.NextIncome.Amount)
	})
}

func TestCalculateNextSalaryInfoNeverInPast(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := profileWithPaydays(rapid.IntRange(1, 31).Draw(t, "s1"), rapid.IntRange(1, 31).Draw(t, "s2"))
		now := time.Date(
			rapid.IntRange(2000, 2100).Draw(t, "year"),
			time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
			rapid.IntRange(1, 31).Draw(t, "day"),
			rapid.IntRange(0, 23).Draw(t, "hour"),
			rapid.IntRange(0, 59).Draw(t, "minute"),
			0, 0, time.UTC,
		)

		info := CalculateNextSalaryInfo(p, now)
		if info.TargetDate.Before(now) {
			t.Fatalf("next salary %v is before now %v", info.TargetDate, now)
		}
	})
}

func TestCalculateDailyLimit(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	target := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	requireDecimal(t, 180, CalculateDailyLimit(decimal.NewFromInt(900), target, now))
	requireDecimal(t, 0, CalculateDailyLimit(decimal.NewFromInt(-50), target, now))
	requireDecimal(t, 0, CalculateDailyLimit(decimal.Zero, target, now))
	requireDecimal(t, 0, CalculateDailyLimit(decimal.NewFromInt(900), now.Add(-time.Hour), now))

	// Partial days round up.
	limit := CalculateDailyLimit(decimal.NewFromInt(600), target, now.Add(12*time.Hour))
	requireDecimal(t, 120, limit)
}
