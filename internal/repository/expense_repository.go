package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/household-finance/internal/database"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// ExpenseRepository handles expense database operations.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create adds a new expense and fills in its ID and CreatedAt.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	date, err := parseLedgerDate(expense.Date)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO expenses (user_id, tx_date, amount, category, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, expense.UserID, date, expense.Amount, expense.Category, expense.Description,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListByUser returns every expense of a user, newest date first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, tx_date, amount, category, description, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY tx_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// Delete removes an expense owned by userID.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanExpenses(rows pgx.Rows) ([]models.Expense, error) {
	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		var date time.Time
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &date, &exp.Amount, &exp.Category, &exp.Description, &exp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		exp.Date = models.FormatDate(date)
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
