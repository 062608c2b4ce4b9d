package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/logger"
	"gitlab.com/yelinaung/household-finance/internal/models"
	"google.golang.org/genai"
)

// summaryTimeout bounds a single summary request.
const summaryTimeout = 30 * time.Second

// ErrEmptyResponse is returned when Gemini answers without text.
var ErrEmptyResponse = errors.New("no text content in Gemini response")

// FinancialTotals mirrors finance.Totals as plain numbers.
type FinancialTotals struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`
}

// FinancialEntry is one ledger row in the summary payload.
type FinancialEntry struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
	Source   string  `json:"source,omitempty"`
	Desc     string  `json:"desc,omitempty"`
}

// FinancialNextSalary describes the upcoming payday.
type FinancialNextSalary struct {
	TargetDate string  `json:"targetDate"`
	Amount     float64 `json:"amount"`
	Source     string  `json:"source"`
}

// FinancialAccount is a bank account or credit card. The bot has no accounts
// module, so the payload always carries an empty list.
type FinancialAccount struct {
	Bank       string  `json:"bank"`
	Type       string  `json:"type"`
	Debt       float64 `json:"debt"`
	TotalLimit float64 `json:"totalLimit"`
}

// FinancialData is the JSON document appended to the summary prompt.
type FinancialData struct {
	Totals     FinancialTotals     `json:"totals"`
	Expenses   []FinancialEntry    `json:"expenses"`
	Incomes    []FinancialEntry    `json:"incomes"`
	NextSalary FinancialNextSalary `json:"nextSalary"`
	Accounts   []FinancialAccount  `json:"accounts"`
	Cash       float64             `json:"cash"`
}

// BuildFinancialData converts a derived view and its snapshot into the summary payload.
func BuildFinancialData(view finance.DerivedView, s finance.Snapshot) FinancialData {
	data := FinancialData{
		Totals: FinancialTotals{
			TotalIncome:  view.Totals.TotalIncome.InexactFloat64(),
			TotalExpense: view.Totals.TotalExpense.InexactFloat64(),
			NetBalance:   view.Totals.NetBalance.InexactFloat64(),
		},
		Expenses: make([]FinancialEntry, 0, len(s.Expenses)),
		Incomes:  make([]FinancialEntry, 0, len(s.Incomes)),
		NextSalary: FinancialNextSalary{
			TargetDate: models.FormatDate(view.NextSalary.TargetDate),
			Amount:     view.NextSalary.NextIncome.Amount.InexactFloat64(),
			Source:     view.NextSalary.NextIncome.Source,
		},
		Accounts: []FinancialAccount{},
	}

	for _, e := range s.Expenses {
		data.Expenses = append(data.Expenses, FinancialEntry{
			Date:     e.Date,
			Amount:   e.Amount.InexactFloat64(),
			Category: SanitizeForPrompt(e.Category, models.MaxCategoryNameLength),
			Desc:     SanitizeForPrompt(e.Description, models.MaxDescriptionLength),
		})
	}
	for _, i := range s.Incomes {
		data.Incomes = append(data.Incomes, FinancialEntry{
			Date:   i.Date,
			Amount: i.Amount.InexactFloat64(),
			Source: SanitizeForPrompt(i.Source, models.MaxCategoryNameLength),
			Desc:   SanitizeForPrompt(i.Description, models.MaxDescriptionLength),
		})
	}
	return data
}

// buildSystemPrompt returns the analyst instructions for userName.
func buildSystemPrompt(userName, currency string) string {
	if userName == "" {
		userName = "User"
	}
	return fmt.Sprintf(`You are a personal finance analyst for %s. All amounts are in %s.
Analyse the household data that follows the DATA: marker and write a short report in Markdown:
- Overall situation: income, spending and net balance.
- The largest spending categories and any unusual expenses.
- Whether the money lasts until the next salary.
- Three concrete, actionable suggestions.
Do not invent transactions that are not in the data.`, SanitizeForPrompt(userName, models.MaxCategoryNameLength), currency)
}

// Summarize asks Gemini for a written analysis of data.
func (c *Client) Summarize(ctx context.Context, data FinancialData, userName, currency string) (string, error) {
	if c.generator == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal financial data: %w", err)
	}

	logger.Log.Debug().
		Int("expense_count", len(data.Expenses)).
		Int("income_count", len(data.Incomes)).
		Msg("Summarize: sending financial data to Gemini")

	timeoutCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: "DATA:\n" + string(payload)}},
		},
	}

	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(2048),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: buildSystemPrompt(userName, currency)}},
		},
	}

	resp, err := c.generator.GenerateContent(timeoutCtx, c.model, contents, config)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Summarize: Gemini API call failed")
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		logger.Log.Warn().Msg("Summarize: no text content in Gemini response")
		return "", ErrEmptyResponse
	}
	return text, nil
}

// SanitizeForPrompt strips characters that could break prompt structure,
// collapses whitespace and truncates to maxLength runes.
func SanitizeForPrompt(input string, maxLength int) string {
	input = strings.ReplaceAll(input, `"`, `'`)
	input = strings.ReplaceAll(input, "`", "'")
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.Join(strings.Fields(input), " ")

	if runes := []rune(input); len(runes) > maxLength {
		input = strings.TrimSpace(string(runes[:maxLength]))
	}
	return input
}
