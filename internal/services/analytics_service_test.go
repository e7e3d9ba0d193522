package services

import (
	"context"
	"testing"

	"billfold/internal/core"
	"billfold/internal/ledger/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryAt(t *testing.T) {
	store := memory.New()
	svc := NewAnalyticsService(store, store, nil)
	ctx := context.Background()

	// The scenario from the product walkthrough: two expenses in two months.
	_, err := store.InsertExpense(ctx, core.Expense{
		UserID: 1, Amount: core.Money{Cents: 5000}, Category: core.Food, Date: core.NewDate(2024, 1, 10),
	})
	require.NoError(t, err)
	_, err = store.InsertExpense(ctx, core.Expense{
		UserID: 1, Amount: core.Money{Cents: 3000}, Category: core.Travel, Date: core.NewDate(2024, 2, 5),
	})
	require.NoError(t, err)

	sum, err := svc.SummaryAt(ctx, 1, core.NewDate(2024, 1, 15))
	require.NoError(t, err)

	assert.Equal(t, int64(5000), sum.CurrentMonth.Cents)

	require.Len(t, sum.ByMonth, 2)
	assert.Equal(t, core.YearMonth{Year: 2024, Month: 1}, sum.ByMonth[0].Month)
	assert.Equal(t, int64(5000), sum.ByMonth[0].Total.Cents)
	assert.Equal(t, core.YearMonth{Year: 2024, Month: 2}, sum.ByMonth[1].Month)
	assert.Equal(t, int64(3000), sum.ByMonth[1].Total.Cents)

	require.Len(t, sum.ByCategory, 2)
	assert.Equal(t, core.Food, sum.ByCategory[0].Category)
	assert.Equal(t, core.Travel, sum.ByCategory[1].Category)

	assert.Equal(t, BudgetUnset, sum.Budget.State)
}

func TestSummaryWithBudget(t *testing.T) {
	store := memory.New()
	svc := NewAnalyticsService(store, store, nil)
	ctx := context.Background()

	require.NoError(t, store.UpsertBudget(ctx, 1, core.Money{Cents: 4000}))
	_, err := store.InsertExpense(ctx, core.Expense{
		UserID: 1, Amount: core.Money{Cents: 5000}, Category: core.Food, Date: core.NewDate(2024, 1, 10),
	})
	require.NoError(t, err)

	sum, err := svc.SummaryAt(ctx, 1, core.NewDate(2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, BudgetExceeded, sum.Budget.State)
	assert.Equal(t, int64(4000), sum.Budget.Limit.Cents)
	assert.Equal(t, int64(5000), sum.Budget.Spent.Cents)
}

func TestSummaryEmpty(t *testing.T) {
	store := memory.New()
	svc := NewAnalyticsService(store, store, nil)

	sum, err := svc.SummaryAt(context.Background(), 42, core.NewDate(2024, 1, 15))
	require.NoError(t, err)
	assert.Empty(t, sum.ByCategory)
	assert.Empty(t, sum.ByMonth)
	assert.Zero(t, sum.CurrentMonth.Cents)
	assert.Equal(t, BudgetUnset, sum.Budget.State)
}
