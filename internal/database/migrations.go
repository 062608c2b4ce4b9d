package database

import (
	"context"
	"fmt"
)

// RunMigrations creates the database schema. Every statement is idempotent.
func RunMigrations(ctx context.Context, db PGXDB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			user_name TEXT NOT NULL DEFAULT '',
			salary1_day INTEGER NOT NULL CHECK (salary1_day BETWEEN 1 AND 31),
			salary1_amount DECIMAL(14, 2) NOT NULL DEFAULT 0,
			salary1_label TEXT NOT NULL DEFAULT '',
			salary2_day INTEGER NOT NULL CHECK (salary2_day BETWEEN 1 AND 31),
			salary2_amount DECIMAL(14, 2) NOT NULL DEFAULT 0,
			salary2_label TEXT NOT NULL DEFAULT '',
			monthly_budget DECIMAL(14, 2),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS recurring_payments (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
			amount DECIMAL(14, 2) NOT NULL CHECK (amount >= 0),
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recurring_payments_user_id ON recurring_payments(user_id)`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tx_date DATE NOT NULL,
			amount DECIMAL(14, 2) NOT NULL CHECK (amount >= 0),
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, tx_date)`,

		`CREATE TABLE IF NOT EXISTS incomes (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tx_date DATE NOT NULL,
			amount DECIMAL(14, 2) NOT NULL CHECK (amount >= 0),
			source TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_incomes_user_date ON incomes(user_id, tx_date)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			target DECIMAL(14, 2) NOT NULL CHECK (target > 0),
			current DECIMAL(14, 2) NOT NULL DEFAULT 0 CHECK (current >= 0),
			is_main BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
