package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"billfold/internal/core"
	"billfold/internal/ledger"
)

// BudgetState classifies current-month spend against the stored limit.
type BudgetState string

const (
	BudgetWithin   BudgetState = "within_budget"
	BudgetExceeded BudgetState = "exceeded"
	BudgetUnset    BudgetState = "no_budget_set"
)

// BudgetStatus is the result of a budget check. Limit is meaningless when
// State is BudgetUnset.
type BudgetStatus struct {
	State BudgetState
	Limit core.Money
	Spent core.Money
}

// EvaluateBudget compares spend to a limit. Spending exactly the limit still
// counts as within budget; only strictly greater spend is exceeded.
func EvaluateBudget(limit, spent core.Money) BudgetStatus {
	state := BudgetWithin
	if spent.Cents > limit.Cents {
		state = BudgetExceeded
	}
	return BudgetStatus{State: state, Limit: limit, Spent: spent}
}

// BudgetService maintains the single monthly limit per user and checks
// current-month spend against it.
type BudgetService struct {
	budgets  ledger.BudgetStore
	expenses ledger.ExpenseStore
	now      func() time.Time
}

func NewBudgetService(budgets ledger.BudgetStore, expenses ledger.ExpenseStore, now func() time.Time) *BudgetService {
	if now == nil {
		now = time.Now
	}
	return &BudgetService{budgets: budgets, expenses: expenses, now: now}
}

// Set replaces the user's budget limit. There is no history; only the latest
// limit is kept.
func (s *BudgetService) Set(ctx context.Context, userID int64, limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	if err := s.budgets.UpsertBudget(ctx, userID, limit); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	return nil
}

// Get returns the stored limit, or core.ErrNoBudget when none was set.
func (s *BudgetService) Get(ctx context.Context, userID int64) (core.Money, error) {
	return s.budgets.Budget(ctx, userID)
}

// Check evaluates the user's current-month spend against the stored limit.
// A missing budget is a valid state, reported as BudgetUnset.
func (s *BudgetService) Check(ctx context.Context, userID int64) (BudgetStatus, error) {
	expenses, err := s.expenses.ListExpenses(ctx, userID)
	if err != nil {
		return BudgetStatus{}, fmt.Errorf("list expenses: %w", err)
	}
	spent := core.CurrentMonthTotal(expenses, core.DateOf(s.now()))

	limit, err := s.budgets.Budget(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNoBudget) {
			return BudgetStatus{State: BudgetUnset, Spent: spent}, nil
		}
		return BudgetStatus{}, fmt.Errorf("get budget: %w", err)
	}

	status := EvaluateBudget(limit, spent)
	if status.State == BudgetExceeded {
		slog.InfoContext(ctx, "Budget exceeded",
			"user_id", userID,
			"limit_cents", limit.Cents,
			"spent_cents", spent.Cents)
	}
	return status, nil
}
