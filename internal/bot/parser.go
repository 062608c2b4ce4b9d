package bot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// Parser errors. Handlers match them with errors.Is to pick a reply.
var (
	ErrMissingArgs   = errors.New("missing arguments")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidDay    = errors.New("day must be between 1 and 31")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidIndex  = errors.New("invalid item number")
)

// maxAmount keeps amounts inside the DECIMAL(14,2) ledger columns.
var maxAmount = decimal.NewFromInt(1_000_000_000)

// amountRegex matches amounts like "5", "5.50", "5,50".
var amountRegex = regexp.MustCompile(`^\d+(?:[.,]\d{1,2})?$`)

// dateRegex matches the shape of a dd.MM.yyyy date, with or without padding.
var dateRegex = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)

// monthRegex matches MM.yyyy.
var monthRegex = regexp.MustCompile(`^(\d{1,2})\.(\d{4})$`)

// ParsedTransaction is a ledger entry parsed from command arguments.
type ParsedTransaction struct {
	Amount decimal.Decimal
	// Label is the category of an expense or the source of an income.
	Label       string
	Date        string
	Description string
}

// parseAmount parses a positive amount with at most two decimals.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountRegex.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// parseLedgerDate validates a dd.MM.yyyy argument and returns it zero-padded.
func parseLedgerDate(s string, loc *time.Location) (string, error) {
	if !dateRegex.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, ok := finance.ParseDate(s, loc)
	if !ok || t.Year() < 1900 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return models.FormatDate(t), nil
}

// ParseTransactionArgs parses "<amount> <label> [dd.MM.yyyy] [description]".
// Without a date the entry is booked on now's date.
func ParseTransactionArgs(args string, now time.Time) (ParsedTransaction, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return ParsedTransaction{}, ErrMissingArgs
	}

	amount, err := parseAmount(fields[0])
	if err != nil {
		return ParsedTransaction{}, err
	}

	parsed := ParsedTransaction{
		Amount: amount,
		Label:  truncateRunes(fields[1], models.MaxCategoryNameLength),
		Date:   models.FormatDate(now),
	}

	rest := fields[2:]
	if len(rest) > 0 && strings.Count(rest[0], ".") == 2 && startsWithDigit(rest[0]) {
		date, err := parseLedgerDate(rest[0], now.Location())
		if err != nil {
			return ParsedTransaction{}, err
		}
		parsed.Date = date
		rest = rest[1:]
	}
	parsed.Description = truncateRunes(strings.Join(rest, " "), models.MaxDescriptionLength)
	return parsed, nil
}

// parseDay parses a day of month.
func parseDay(s string) (int, error) {
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > 31 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return d, nil
}

// parseMonthArg parses MM.yyyy.
func parseMonthArg(s string) (int, time.Month, error) {
	m := monthRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || year < 1900 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return year, time.Month(month), nil
}

// parseIndex parses a 1-based list position and returns it 0-based.
func parseIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	return n - 1, nil
}

// extractCommandArgs strips the /command prefix (and optional @botname suffix)
// from a message and returns the remaining trimmed arguments.
func extractCommandArgs(text, command string) string {
	args := strings.TrimSpace(strings.TrimPrefix(text, command))
	if strings.HasPrefix(args, "@") {
		if spaceIdx := strings.Index(args, " "); spaceIdx != -1 {
			args = strings.TrimSpace(args[spaceIdx:])
		} else {
			args = ""
		}
	}
	return args
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func truncateRunes(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return strings.TrimSpace(string(r[:n]))
	}
	return s
}
