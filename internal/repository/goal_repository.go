package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/database"
	"gitlab.com/yelinaung/household-finance/internal/models"
)

// GoalRepository stores savings goals.
type GoalRepository struct {
	db database.PGXDB
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db database.PGXDB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, title, target, current, is_main, created_at`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var g models.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Target, &g.Current, &g.IsMain, &g.CreatedAt)
	return g, err
}

// ListGoals returns the user's goals in creation order.
func (r *GoalRepository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return goals, nil
}

// CreateGoal stores a new goal, assigning an ID when empty.
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, title, target, current, is_main)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, goal.ID, goal.UserID, goal.Title, goal.Target, goal.Current, goal.IsMain).Scan(&goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// Deposit adds amount to a goal's saved total and returns the updated goal.
func (r *GoalRepository) Deposit(ctx context.Context, userID int64, goalID string, amount decimal.Decimal) (*models.Goal, error) {
	g, err := scanGoal(r.db.QueryRow(ctx, `
		UPDATE goals SET current = current + $3
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns,
		goalID, userID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deposit to goal: %w", err)
	}
	return &g, nil
}

// SetMain flags goalID as the user's main goal and clears the flag on the others.
func (r *GoalRepository) SetMain(ctx context.Context, userID int64, goalID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE goals SET is_main = (id = $2)
		WHERE user_id = $1
		  AND EXISTS (SELECT 1 FROM goals WHERE id = $2 AND user_id = $1)
	`, userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to set main goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}
	return nil
}

// DeleteGoal removes a goal owned by userID.
func (r *GoalRepository) DeleteGoal(ctx context.Context, userID int64, goalID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}
	return nil
}
