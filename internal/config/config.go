// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/finance"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// Defaults for optional settings.
const (
	DefaultDigestHour = 9
	DefaultTimezone   = "Europe/Istanbul"
)

// Supported OTEL_EXPORTER values.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlp-http"
	ExporterOTLPGRPC = "otlp-grpc"
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken     string
	DatabaseURL          string
	GeminiAPIKey         string
	GeminiModel          string
	LogLevel             string
	LogFormat            string
	WhitelistedUserIDs   []int64
	WhitelistedUsernames []string
	DailyDigestEnabled   bool
	DigestHour           int
	Timezone             string
	Currency             string
	OTelExporter         string

	// Analytics overrides. Zero values keep the engine defaults.
	HighSpendingRatio         float64
	BudgetControlRatio        float64
	CategorySharePercent      float64
	ForecastBandRatio         float64
	CategoryBudgetPlaceholder decimal.Decimal
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        strings.ToLower(os.Getenv("LOG_FORMAT")),
	}

	cfg.DailyDigestEnabled = os.Getenv("DAILY_DIGEST_ENABLED") == "true"
	cfg.DigestHour = DefaultDigestHour
	if hourStr := os.Getenv("DIGEST_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			cfg.DigestHour = h
		}
	}
	cfg.Timezone = DefaultTimezone
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			cfg.Timezone = tz
		}
	}

	cfg.Currency = models.DefaultCurrency
	if cur := strings.TrimSpace(os.Getenv("CURRENCY")); cur != "" {
		cfg.Currency = strings.ToUpper(cur)
	}

	cfg.OTelExporter = ExporterNone
	switch exp := strings.ToLower(os.Getenv("OTEL_EXPORTER")); exp {
	case ExporterStdout, ExporterOTLPHTTP, ExporterOTLPGRPC:
		cfg.OTelExporter = exp
	}

	cfg.HighSpendingRatio = positiveFloat("INSIGHT_HIGH_SPENDING_RATIO")
	cfg.BudgetControlRatio = positiveFloat("INSIGHT_BUDGET_CONTROL_RATIO")
	cfg.CategorySharePercent = positiveFloat("INSIGHT_CATEGORY_SHARE_PERCENT")
	cfg.ForecastBandRatio = positiveFloat("FORECAST_BAND_RATIO")
	if s := os.Getenv("CATEGORY_BUDGET_PLACEHOLDER"); s != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil && d.IsPositive() {
			cfg.CategoryBudgetPlaceholder = d
		}
	}

	whitelistStr := os.Getenv("WHITELISTED_USER_IDS")
	if whitelistStr != "" {
		for idStr := range strings.SplitSeq(whitelistStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			cfg.WhitelistedUserIDs = append(cfg.WhitelistedUserIDs, id)
		}
	}

	whitelistUsernames := os.Getenv("WHITELISTED_USERNAMES")
	if whitelistUsernames != "" {
		for username := range strings.SplitSeq(whitelistUsernames, ",") {
			username = strings.TrimSpace(username)
			if username == "" {
				continue
			}
			// Remove @ prefix if present
			username = strings.TrimPrefix(username, "@")
			cfg.WhitelistedUsernames = append(cfg.WhitelistedUsernames, username)
		}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// positiveFloat reads a positive float from key, or 0 when unset or invalid.
func positiveFloat(key string) float64 {
	s := os.Getenv(key)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0
	}
	return f
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if len(c.WhitelistedUserIDs) == 0 && len(c.WhitelistedUsernames) == 0 {
		errs = append(errs, "at least one whitelisted user (WHITELISTED_USER_IDS or WHITELISTED_USERNAMES) is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Thresholds returns the engine heuristics with any configured overrides applied.
func (c *Config) Thresholds() finance.Thresholds {
	th := finance.DefaultThresholds()
	if c.HighSpendingRatio > 0 {
		th.HighSpendingRatio = c.HighSpendingRatio
	}
	if c.BudgetControlRatio > 0 {
		th.BudgetControlRatio = c.BudgetControlRatio
	}
	if c.CategorySharePercent > 0 {
		th.CategorySharePercent = c.CategorySharePercent
	}
	if c.ForecastBandRatio > 0 {
		th.ForecastBandRatio = c.ForecastBandRatio
	}
	if c.CategoryBudgetPlaceholder.IsPositive() {
		th.CategoryBudgetPlaceholder = c.CategoryBudgetPlaceholder
	}
	return th
}

// IsUserWhitelisted checks if a Telegram user ID or username is in the whitelist.
// Returns true if either the user ID or username is whitelisted.
func (c *Config) IsUserWhitelisted(userID int64, username string) bool {
	// Check user ID whitelist
	if slices.Contains(c.WhitelistedUserIDs, userID) {
		return true
	}

	// Check username whitelist (case-insensitive)
	if username != "" {
		username = strings.TrimPrefix(username, "@")
		for _, whitelisted := range c.WhitelistedUsernames {
			if strings.EqualFold(whitelisted, username) {
				return true
			}
		}
	}

	return false
}
