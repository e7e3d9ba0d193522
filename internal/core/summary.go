package core

import "sort"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Total    Money
	Count    int
}

// MonthAmount represents an amount aggregated by calendar month.
type MonthAmount struct {
	Month YearMonth
	Total Money
}

// CategoryTotals groups expenses by category and sums the amounts.
// Categories with no expenses are absent from the result. The result is
// sorted by category name so that repeated calls over the same input are
// identical.
func CategoryTotals(expenses []Expense) []CategoryAmount {
	byCategory := make(map[Category]*CategoryAmount)
	for _, e := range expenses {
		ca, ok := byCategory[e.Category]
		if !ok {
			ca = &CategoryAmount{Category: e.Category}
			byCategory[e.Category] = ca
		}
		ca.Total.Cents += e.Amount.Cents
		ca.Count++
	}

	totals := make([]CategoryAmount, 0, len(byCategory))
	for _, ca := range byCategory {
		totals = append(totals, *ca)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// MonthlyTotals groups expenses by the calendar year-month of their date and
// sums the amounts. The result is chronological.
func MonthlyTotals(expenses []Expense) []MonthAmount {
	byMonth := make(map[YearMonth]int64)
	for _, e := range expenses {
		byMonth[e.Date.YearMonth()] += e.Amount.Cents
	}

	totals := make([]MonthAmount, 0, len(byMonth))
	for ym, cents := range byMonth {
		totals = append(totals, MonthAmount{Month: ym, Total: Money{Cents: cents}})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month.Before(totals[j].Month)
	})
	return totals
}

// CurrentMonthTotal sums the expenses whose date falls within the calendar
// month of ref. The reference date is injected so callers control the clock.
func CurrentMonthTotal(expenses []Expense, ref Date) Money {
	target := ref.YearMonth()
	var cents int64
	for _, e := range expenses {
		if e.Date.YearMonth() == target {
			cents += e.Amount.Cents
		}
	}
	return Money{Cents: cents}
}
