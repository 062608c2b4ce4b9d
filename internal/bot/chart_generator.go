package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-analyze/charts"
	"gitlab.com/yelinaung/household-finance/internal/finance"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no data to chart")

// GenerateCategoryChart creates a pie chart of spend per category.
// Returns PNG image as bytes.
func GenerateCategoryChart(categories []finance.CategoryAmount, period string) ([]byte, error) {
	var values []float64
	var names []string
	for _, c := range categories {
		if !c.Amount.IsPositive() {
			continue
		}
		names = append(names, c.Category)
		values = append(values, c.Amount.InexactFloat64())
	}
	if len(values) == 0 {
		return nil, ErrNoChartData
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Expense Breakdown - %s", period),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}
	return renderPNG(p)
}

// GenerateTrendChart creates a bar chart of monthly income against expense.
func GenerateTrendChart(points []finance.MonthlyPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoChartData
	}

	labels := make([]string, len(points))
	incomes := make([]float64, len(points))
	expenses := make([]float64, len(points))
	for i, pt := range points {
		labels[i] = pt.RawDate.Format("Jan 06")
		incomes[i] = pt.Income.InexactFloat64()
		expenses[i] = pt.Expense.InexactFloat64()
	}

	p, err := charts.BarRender(
		[][]float64{incomes, expenses},
		charts.TitleOptionFunc(charts.TitleOption{Text: "Income vs Expense"}),
		charts.XAxisLabelsOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Income", "Expense"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}
	return renderPNG(p)
}

// GenerateWeeklyChart creates a bar chart of the month's day-of-month quarters
// against a quarter of the monthly budget.
func GenerateWeeklyChart(wb finance.WeeklyBudget, year int, month time.Month) ([]byte, error) {
	if len(wb.Labels) == 0 {
		return nil, ErrNoChartData
	}

	spent := make([]float64, len(wb.Spent))
	budget := make([]float64, len(wb.Spent))
	for i, s := range wb.Spent {
		spent[i] = s.InexactFloat64()
		budget[i] = wb.Budget.InexactFloat64()
	}

	p, err := charts.BarRender(
		[][]float64{spent, budget},
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Weekly Budget - %s", monthLabel(year, month)),
		}),
		charts.XAxisLabelsOptionFunc(wb.Labels),
		charts.LegendLabelsOptionFunc([]string{"Spent", "Budget"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}
	return renderPNG(p)
}

func renderPNG(p *charts.Painter) ([]byte, error) {
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// chartFilename creates filenames like "trend_2026-01-31.png".
func chartFilename(kind string, now time.Time) string {
	return fmt.Sprintf("%s_%s.png", kind, now.Format("2006-01-02"))
}
