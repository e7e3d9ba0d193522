package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billfold/internal/core"
	"billfold/internal/ledger"
)

// Summary is the analytics view for one user: totals per category, totals
// per calendar month, current-month spend and the budget status.
type Summary struct {
	ByCategory   []core.CategoryAmount
	ByMonth      []core.MonthAmount
	CurrentMonth core.Money
	Budget       BudgetStatus
}

// AnalyticsService derives summaries from the expense list. It holds no
// state of its own; everything is recomputed from one read.
type AnalyticsService struct {
	expenses ledger.ExpenseStore
	budgets  ledger.BudgetStore
	now      func() time.Time
}

func NewAnalyticsService(expenses ledger.ExpenseStore, budgets ledger.BudgetStore, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{expenses: expenses, budgets: budgets, now: now}
}

// Summary computes the user's analytics relative to today.
func (s *AnalyticsService) Summary(ctx context.Context, userID int64) (Summary, error) {
	return s.SummaryAt(ctx, userID, core.DateOf(s.now()))
}

// SummaryAt computes the user's analytics relative to an injected reference
// date, which keeps the result deterministic for tests.
func (s *AnalyticsService) SummaryAt(ctx context.Context, userID int64, ref core.Date) (Summary, error) {
	expenses, err := s.expenses.ListExpenses(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("list expenses: %w", err)
	}

	spent := core.CurrentMonthTotal(expenses, ref)

	budget := BudgetStatus{State: BudgetUnset, Spent: spent}
	limit, err := s.budgets.Budget(ctx, userID)
	switch {
	case err == nil:
		budget = EvaluateBudget(limit, spent)
	case !errors.Is(err, core.ErrNoBudget):
		return Summary{}, fmt.Errorf("get budget: %w", err)
	}

	return Summary{
		ByCategory:   core.CategoryTotals(expenses),
		ByMonth:      core.MonthlyTotals(expenses),
		CurrentMonth: spent,
		Budget:       budget,
	}, nil
}
