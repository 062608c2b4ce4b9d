//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/bot"
	"gitlab.com/yelinaung/household-finance/internal/finance"
)

func main() {
	categories := []finance.CategoryAmount{
		{Category: "Rent", Amount: decimal.NewFromFloat(12000)},
		{Category: "Groceries", Amount: decimal.NewFromFloat(4350.50)},
		{Category: "Transport", Amount: decimal.NewFromFloat(1200)},
		{Category: "Bills", Amount: decimal.NewFromFloat(2100)},
		{Category: "Eating out", Amount: decimal.NewFromFloat(1830.25)},
	}

	chartData, err := bot.GenerateCategoryChart(categories, "January 2026")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("graph.png", chartData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	var trend []finance.MonthlyPoint
	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := range 6 {
		d := start.AddDate(0, i, 0)
		trend = append(trend, finance.MonthlyPoint{
			Year:    d.Year(),
			Month:   d.Month(),
			RawDate: d,
			Income:  decimal.NewFromInt(30000),
			Expense: decimal.NewFromInt(int64(22000 + i*1200)),
		})
	}

	trendData, err := bot.GenerateTrendChart(trend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("trend.png", trendData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Created graph.png and trend.png - Example dashboard charts")
}
