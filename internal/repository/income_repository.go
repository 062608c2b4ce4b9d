package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/household-finance/internal/database"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// IncomeRepository handles income database operations.
type IncomeRepository struct {
	db database.PGXDB
}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository(db database.PGXDB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// Create adds a new income and fills in its ID and CreatedAt.
func (r *IncomeRepository) Create(ctx context.Context, income *models.Income) error {
	date, err := parseLedgerDate(income.Date)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO incomes (user_id, tx_date, amount, source, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, income.UserID, date, income.Amount, income.Source, income.Description,
	).Scan(&income.ID, &income.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// ListByUser returns every income of a user, newest date first.
func (r *IncomeRepository) ListByUser(ctx context.Context, userID int64) ([]models.Income, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, tx_date, amount, source, description, created_at
		FROM incomes
		WHERE user_id = $1
		ORDER BY tx_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows)
}

// Delete removes an income owned by userID.
func (r *IncomeRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM incomes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("income %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanIncomes(rows pgx.Rows) ([]models.Income, error) {
	var incomes []models.Income
	for rows.Next() {
		var inc models.Income
		var date time.Time
		if err := rows.Scan(
			&inc.ID, &inc.UserID, &date, &inc.Amount, &inc.Source, &inc.Description, &inc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		inc.Date = models.FormatDate(date)
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incomes: %w", err)
	}
	return incomes, nil
}
