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

// Payday slots addressed by SetSalary.
const (
	SalarySlot1 = 1
	SalarySlot2 = 2
)

// ProfileRepository stores salary schedules, budgets and recurring payments.
type ProfileRepository struct {
	db database.PGXDB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db database.PGXDB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile returns the user's profile, or the default profile when the user
// has not configured one.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID int64) (models.UserProfile, error) {
	p := models.UserProfile{UserID: userID}
	var budget decimal.NullDecimal

	err := r.db.QueryRow(ctx, `
		SELECT user_name,
		       salary1_day, salary1_amount, salary1_label,
		       salary2_day, salary2_amount, salary2_label,
		       monthly_budget
		FROM profiles WHERE user_id = $1
	`, userID).Scan(
		&p.UserName,
		&p.Salary1.Day, &p.Salary1.Amount, &p.Salary1.Label,
		&p.Salary2.Day, &p.Salary2.Amount, &p.Salary2.Label,
		&budget,
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		p = models.DefaultProfile(userID, "")
	case err != nil:
		return models.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	case budget.Valid:
		p.MonthlyBudget = &budget.Decimal
	}

	payments, err := r.ListRecurring(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	p.RecurringPayments = payments
	return p, nil
}

// SaveProfile writes the profile row and replaces the recurring payments in one
// transaction.
func (r *ProfileRepository) SaveProfile(ctx context.Context, p models.UserProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertProfile(ctx, tx, p); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recurring_payments WHERE user_id = $1`, p.UserID); err != nil {
		return fmt.Errorf("failed to clear recurring payments: %w", err)
	}
	for i := range p.RecurringPayments {
		if err := insertRecurring(ctx, tx, p.UserID, &p.RecurringPayments[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func upsertProfile(ctx context.Context, db database.PGXDB, p models.UserProfile) error {
	var budget decimal.NullDecimal
	if p.MonthlyBudget != nil {
		budget = decimal.NewNullDecimal(*p.MonthlyBudget)
	}

	_, err := db.Exec(ctx, `
		INSERT INTO profiles (
			user_id, user_name,
			salary1_day, salary1_amount, salary1_label,
			salary2_day, salary2_amount, salary2_label,
			monthly_budget, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			salary1_day = EXCLUDED.salary1_day,
			salary1_amount = EXCLUDED.salary1_amount,
			salary1_label = EXCLUDED.salary1_label,
			salary2_day = EXCLUDED.salary2_day,
			salary2_amount = EXCLUDED.salary2_amount,
			salary2_label = EXCLUDED.salary2_label,
			monthly_budget = EXCLUDED.monthly_budget,
			updated_at = NOW()
	`, p.UserID, p.UserName,
		p.Salary1.Day, p.Salary1.Amount, p.Salary1.Label,
		p.Salary2.Day, p.Salary2.Amount, p.Salary2.Label,
		budget,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// SetSalary replaces one of the two payday rules.
func (r *ProfileRepository) SetSalary(ctx context.Context, userID int64, slot int, rule models.PaydayRule) error {
	p, err := r.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	switch slot {
	case SalarySlot1:
		p.Salary1 = rule
	case SalarySlot2:
		p.Salary2 = rule
	default:
		return fmt.Errorf("invalid salary slot %d", slot)
	}
	return upsertProfile(ctx, r.db, p)
}

// SetMonthlyBudget sets the monthly budget; nil clears it.
func (r *ProfileRepository) SetMonthlyBudget(ctx context.Context, userID int64, budget *decimal.Decimal) error {
	p, err := r.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	p.MonthlyBudget = budget
	return upsertProfile(ctx, r.db, p)
}

// ListRecurring returns the user's recurring payments ordered by day of month.
func (r *ProfileRepository) ListRecurring(ctx context.Context, userID int64) ([]models.RecurringPayment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, day, amount, name, category
		FROM recurring_payments
		WHERE user_id = $1
		ORDER BY day, created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring payments: %w", err)
	}
	defer rows.Close()

	var payments []models.RecurringPayment
	for rows.Next() {
		var p models.RecurringPayment
		if err := rows.Scan(&p.ID, &p.Day, &p.Amount, &p.Name, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan recurring payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring payments: %w", err)
	}
	return payments, nil
}

// AddRecurring stores a new recurring payment, assigning an ID when empty.
func (r *ProfileRepository) AddRecurring(ctx context.Context, userID int64, p *models.RecurringPayment) error {
	return insertRecurring(ctx, r.db, userID, p)
}

func insertRecurring(ctx context.Context, db database.PGXDB, userID int64, p *models.RecurringPayment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := db.Exec(ctx, `
		INSERT INTO recurring_payments (id, user_id, day, amount, name, category)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, userID, p.Day, p.Amount, p.Name, p.Category)
	if err != nil {
		return fmt.Errorf("failed to add recurring payment: %w", err)
	}
	return nil
}

// DeleteRecurring removes a recurring payment owned by userID.
func (r *ProfileRepository) DeleteRecurring(ctx context.Context, userID int64, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recurring_payments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring payment %s: %w", id, ErrNotFound)
	}
	return nil
}
