package core

import "testing"

func expensesFixture() []Expense {
	return []Expense{
		{Amount: Money{Cents: 1000}, Category: Food, Date: NewDate(2024, 1, 10)},
		{Amount: Money{Cents: 500}, Category: Food, Date: NewDate(2024, 1, 12)},
		{Amount: Money{Cents: 2000}, Category: Travel, Date: NewDate(2024, 2, 5)},
	}
}

func TestCategoryTotals(t *testing.T) {
	totals := CategoryTotals(expensesFixture())
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	// Sorted by category name: Food before Travel.
	if totals[0].Category != Food || totals[0].Total.Cents != 1500 || totals[0].Count != 2 {
		t.Fatalf("unexpected Food total: %+v", totals[0])
	}
	if totals[1].Category != Travel || totals[1].Total.Cents != 2000 || totals[1].Count != 1 {
		t.Fatalf("unexpected Travel total: %+v", totals[1])
	}
}

func TestCategoryTotalsEmpty(t *testing.T) {
	if totals := CategoryTotals(nil); len(totals) != 0 {
		t.Fatalf("expected no totals, got %+v", totals)
	}
}

func TestMonthlyTotals(t *testing.T) {
	totals := MonthlyTotals(expensesFixture())
	if len(totals) != 2 {
		t.Fatalf("expected 2 months, got %d", len(totals))
	}
	if totals[0].Month != (YearMonth{Year: 2024, Month: 1}) || totals[0].Total.Cents != 1500 {
		t.Fatalf("unexpected January total: %+v", totals[0])
	}
	if totals[1].Month != (YearMonth{Year: 2024, Month: 2}) || totals[1].Total.Cents != 2000 {
		t.Fatalf("unexpected February total: %+v", totals[1])
	}
}

func TestCurrentMonthTotal(t *testing.T) {
	expenses := []Expense{
		{Amount: Money{Cents: 5000}, Category: Food, Date: NewDate(2024, 1, 10)},
		{Amount: Money{Cents: 3000}, Category: Travel, Date: NewDate(2024, 2, 5)},
	}
	if got := CurrentMonthTotal(expenses, NewDate(2024, 1, 15)); got.Cents != 5000 {
		t.Fatalf("expected 5000, got %d", got.Cents)
	}
	if got := CurrentMonthTotal(expenses, NewDate(2024, 3, 1)); got.Cents != 0 {
		t.Fatalf("expected 0 for empty month, got %d", got.Cents)
	}
}
