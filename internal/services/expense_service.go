package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"billfold/internal/amqp"
	"billfold/internal/core"
	"billfold/internal/ledger"
)

// AlertPublisher publishes budget-exceeded alerts. *amqp.Client implements
// it; a nil publisher disables alerting.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// ExpenseService records and removes expenses and raises a budget alert when
// a new expense pushes the current month over the stored limit.
type ExpenseService struct {
	expenses ledger.ExpenseStore
	budgets  ledger.BudgetStore
	alerts   AlertPublisher
	now      func() time.Time
}

func NewExpenseService(expenses ledger.ExpenseStore, budgets ledger.BudgetStore, alerts AlertPublisher, now func() time.Time) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{
		expenses: expenses,
		budgets:  budgets,
		alerts:   alerts,
		now:      now,
	}
}

// Add validates and stores a new expense for the user.
func (s *ExpenseService) Add(ctx context.Context, userID int64, amount core.Money, category core.Category, note string, date core.Date) (core.Expense, error) {
	e := core.Expense{
		UserID:   userID,
		Amount:   amount,
		Category: category,
		Note:     note,
		Date:     date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	id, err := s.expenses.InsertExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	e.ID = id

	// Alerting must never fail the write; the expense is already saved.
	s.maybeAlert(ctx, e)

	return e, nil
}

// List returns all expenses recorded for the user.
func (s *ExpenseService) List(ctx context.Context, userID int64) ([]core.Expense, error) {
	return s.expenses.ListExpenses(ctx, userID)
}

// Delete removes an expense the user owns. Returns core.ErrExpenseNotFound
// when the id does not exist or belongs to someone else, so callers can tell
// "deleted" from "nothing to delete".
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID int64) error {
	return s.expenses.DeleteExpense(ctx, userID, expenseID)
}

// maybeAlert publishes a budget alert when e crossed the limit for the
// current calendar month. Errors are logged and swallowed.
func (s *ExpenseService) maybeAlert(ctx context.Context, e core.Expense) {
	if s.alerts == nil || s.budgets == nil {
		return
	}

	today := core.DateOf(s.now())
	if e.Date.YearMonth() != today.YearMonth() {
		return
	}

	limit, err := s.budgets.Budget(ctx, e.UserID)
	if err != nil {
		if !errors.Is(err, core.ErrNoBudget) {
			slog.ErrorContext(ctx, "Budget lookup for alert failed", "user_id", e.UserID, "error", err)
		}
		return
	}

	expenses, err := s.expenses.ListExpenses(ctx, e.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "Expense list for alert failed", "user_id", e.UserID, "error", err)
		return
	}

	spent := core.CurrentMonthTotal(expenses, today)
	before := core.Money{Cents: spent.Cents - e.Amount.Cents}

	// Alert only on the crossing, not on every expense past the limit.
	if spent.Cents <= limit.Cents || before.Cents > limit.Cents {
		return
	}

	ym := today.YearMonth()
	msg := amqp.NewBudgetAlertMessage(e.UserID, limit.Cents, spent.Cents, ym.Year, ym.Month)
	if err := s.alerts.PublishBudgetAlert(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"user_id", e.UserID, "error", err)
	}
}
