package mocks

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/models"
	"gitlab.com/yelinaung/household-finance/internal/repository"
)

// Store is an in-memory stand-in for the Postgres repositories. Each part
// mirrors the ordering and error behavior of its repository counterpart.
type Store struct {
	Users    *UserStore
	Expenses *ExpenseStore
	Incomes  *IncomeStore
	Profiles *ProfileStore
	Goals    *GoalStore
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Users:    &UserStore{users: make(map[int64]models.User)},
		Expenses: &ExpenseStore{},
		Incomes:  &IncomeStore{},
		Profiles: &ProfileStore{profiles: make(map[int64]models.UserProfile)},
		Goals:    &GoalStore{},
	}
}

// UserStore keeps registered users.
type UserStore struct {
	mu    sync.Mutex
	users map[int64]models.User
	order []int64
	// Err, when set, is returned by every method.
	Err error
}

// UpsertUser creates or updates a user.
func (s *UserStore) UpsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[user.ID]; !ok {
		s.order = append(s.order, user.ID)
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByID returns a registered user.
func (s *UserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	return &u, nil
}

// ListUserIDs returns registered IDs in registration order.
func (s *UserStore) ListUserIDs(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.order), nil
}

// sortLedger orders rows newest date first, then newest ID first.
func sortLedger[T any](rows []T, date func(T) time.Time, id func(T) int64) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := date(rows[i]), date(rows[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return id(rows[i]) > id(rows[j])
	})
}

func ledgerDate(s string) time.Time {
	t, _ := time.Parse(models.DateLayout, s)
	return t
}

// ExpenseStore keeps expenses.
type ExpenseStore struct {
	mu     sync.Mutex
	rows   []models.Expense
	nextID int64
	// Err, when set, is returned by every method.
	Err error
}

// Create stores an expense and assigns its ID.
func (s *ExpenseStore) Create(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, err := time.Parse(models.DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: %q", repository.ErrInvalidDate, e.Date)
	}
	s.nextID++
	e.ID = s.nextID
	e.CreatedAt = time.Now()
	s.rows = append(s.rows, *e)
	return nil
}

// ListByUser returns the user's expenses, newest first.
func (s *ExpenseStore) ListByUser(_ context.Context, userID int64) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Expense
	for _, e := range s.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sortLedger(out, func(e models.Expense) time.Time { return ledgerDate(e.Date) }, func(e models.Expense) int64 { return e.ID })
	return out, nil
}

// Delete removes an expense owned by userID.
func (s *ExpenseStore) Delete(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, e := range s.rows {
		if e.ID == id && e.UserID == userID {
			s.rows = slices.Delete(s.rows, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("expense %d: %w", id, repository.ErrNotFound)
}

// IncomeStore keeps incomes.
type IncomeStore struct {
	mu     sync.Mutex
	rows   []models.Income
	nextID int64
	// Err, when set, is returned by every method.
	Err error
}

// Create stores an income and assigns its ID.
func (s *IncomeStore) Create(_ context.Context, in *models.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: %q", repository.ErrInvalidDate, in.Date)
	}
	s.nextID++
	in.ID = s.nextID
	in.CreatedAt = time.Now()
	s.rows = append(s.rows, *in)
	return nil
}

// ListByUser returns the user's incomes, newest first.
func (s *IncomeStore) ListByUser(_ context.Context, userID int64) ([]models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Income
	for _, in := range s.rows {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	sortLedger(out, func(in models.Income) time.Time { return ledgerDate(in.Date) }, func(in models.Income) int64 { return in.ID })
	return out, nil
}

// Delete removes an income owned by userID.
func (s *IncomeStore) Delete(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, in := range s.rows {
		if in.ID == id && in.UserID == userID {
			s.rows = slices.Delete(s.rows, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("income %d: %w", id, repository.ErrNotFound)
}

// ProfileStore keeps profiles and their recurring payments.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[int64]models.UserProfile
	// Err, when set, is returned by every method.
	Err error
}

func (s *ProfileStore) get(userID int64) models.UserProfile {
	p, ok := s.profiles[userID]
	if !ok {
		return models.DefaultProfile(userID, "")
	}
	p.RecurringPayments = slices.Clone(p.RecurringPayments)
	return p
}

// GetProfile returns the stored profile or the default one.
func (s *ProfileStore) GetProfile(_ context.Context, userID int64) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.UserProfile{}, s.Err
	}
	return s.get(userID), nil
}

// SaveProfile replaces the whole profile.
func (s *ProfileStore) SaveProfile(_ context.Context, p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range p.RecurringPayments {
		if p.RecurringPayments[i].ID == "" {
			p.RecurringPayments[i].ID = uuid.NewString()
		}
	}
	p.RecurringPayments = slices.Clone(p.RecurringPayments)
	s.profiles[p.UserID] = p
	return nil
}

// SetSalary replaces one payday rule.
func (s *ProfileStore) SetSalary(_ context.Context, userID int64, slot int, rule models.PaydayRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p := s.get(userID)
	switch slot {
	case repository.SalarySlot1:
		p.Salary1 = rule
	case repository.SalarySlot2:
		p.Salary2 = rule
	default:
		return fmt.Errorf("invalid salary slot %d", slot)
	}
	s.profiles[userID] = p
	return nil
}

// SetMonthlyBudget sets or clears the monthly budget.
func (s *ProfileStore) SetMonthlyBudget(_ context.Context, userID int64, budget *decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p := s.get(userID)
	p.MonthlyBudget = budget
	s.profiles[userID] = p
	return nil
}

// AddRecurring appends a recurring payment, keeping them ordered by day.
func (s *ProfileStore) AddRecurring(_ context.Context, userID int64, rp *models.RecurringPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if rp.ID == "" {
		rp.ID = uuid.NewString()
	}
	p := s.get(userID)
	p.RecurringPayments = append(p.RecurringPayments, *rp)
	sort.SliceStable(p.RecurringPayments, func(i, j int) bool {
		return p.RecurringPayments[i].Day < p.RecurringPayments[j].Day
	})
	s.profiles[userID] = p
	return nil
}

// DeleteRecurring removes a recurring payment.
func (s *ProfileStore) DeleteRecurring(_ context.Context, userID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p := s.get(userID)
	for i, rp := range p.RecurringPayments {
		if rp.ID == id {
			p.RecurringPayments = slices.Delete(p.RecurringPayments, i, i+1)
			s.profiles[userID] = p
			return nil
		}
	}
	return fmt.Errorf("recurring payment %s: %w", id, repository.ErrNotFound)
}

// GoalStore keeps savings goals in creation order.
type GoalStore struct {
	mu    sync.Mutex
	goals []models.Goal
	// Err, when set, is returned by every method.
	Err error
}

// ListGoals returns the user's goals in creation order.
func (s *GoalStore) ListGoals(_ context.Context, userID int64) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Goal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

// CreateGoal stores a goal.
func (s *GoalStore) CreateGoal(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	goal.CreatedAt = time.Now()
	s.goals = append(s.goals, *goal)
	return nil
}

func (s *GoalStore) find(userID int64, goalID string) int {
	for i, g := range s.goals {
		if g.ID == goalID && g.UserID == userID {
			return i
		}
	}
	return -1
}

// Deposit adds amount to a goal.
func (s *GoalStore) Deposit(_ context.Context, userID int64, goalID string, amount decimal.Decimal) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.find(userID, goalID)
	if i < 0 {
		return nil, fmt.Errorf("goal %s: %w", goalID, repository.ErrNotFound)
	}
	s.goals[i].Current = s.goals[i].Current.Add(amount)
	g := s.goals[i]
	return &g, nil
}

// SetMain flags one goal as main.
func (s *GoalStore) SetMain(_ context.Context, userID int64, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.find(userID, goalID) < 0 {
		return fmt.Errorf("goal %s: %w", goalID, repository.ErrNotFound)
	}
	for i := range s.goals {
		if s.goals[i].UserID == userID {
			s.goals[i].IsMain = s.goals[i].ID == goalID
		}
	}
	return nil
}

// DeleteGoal removes a goal.
func (s *GoalStore) DeleteGoal(_ context.Context, userID int64, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.find(userID, goalID)
	if i < 0 {
		return fmt.Errorf("goal %s: %w", goalID, repository.ErrNotFound)
	}
	s.goals = slices.Delete(s.goals, i, i+1)
	return nil
}
