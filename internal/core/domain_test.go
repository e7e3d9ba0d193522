package core

import (
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("%s should be valid", c)
		}
	}
	if Category("Groceries").Valid() {
		t.Fatalf("unknown category should be invalid")
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food", Food, true},
		{"food", Food, true},
		{"TRAVEL", Travel, true},
		{"Bills", Bills, true},
		{"Rent", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 1, 10).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestYearMonth(t *testing.T) {
	d := NewDate(2024, 2, 5)
	if ym := d.YearMonth(); ym != (YearMonth{Year: 2024, Month: 2}) {
		t.Fatalf("unexpected year-month %+v", ym)
	}
	if got := (YearMonth{Year: 2024, Month: 1}).String(); got != "2024-01" {
		t.Fatalf("expected 2024-01, got %s", got)
	}
	jan := YearMonth{Year: 2024, Month: 1}
	dec := YearMonth{Year: 2023, Month: 12}
	if !dec.Before(jan) || jan.Before(dec) {
		t.Fatalf("month ordering is wrong")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		UserID:   1,
		Amount:   Money{Cents: 1050},
		Category: Food,
		Note:     "lunch",
		Date:     NewDate(2024, 1, 10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amount and empty note are valid states.
	free := Expense{UserID: 1, Amount: Money{}, Category: Other, Date: NewDate(2024, 1, 10)}
	if err := free.Validate(); err != nil {
		t.Fatalf("expected ok for zero amount, got %v", err)
	}

	bads := []Expense{
		{UserID: 1, Amount: Money{Cents: -1}, Category: Food, Date: NewDate(2024, 1, 10)},
		{UserID: 1, Amount: Money{Cents: 100}, Category: "Rent", Date: NewDate(2024, 1, 10)},
		{UserID: 1, Amount: Money{Cents: 100}, Category: Food},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	if err := (Budget{UserID: 1, Limit: Money{Cents: 0}}).Validate(); err != nil {
		t.Fatalf("zero limit is valid, got %v", err)
	}
	if err := (Budget{UserID: 1, Limit: Money{Cents: -100}}).Validate(); err == nil {
		t.Fatalf("expected error for negative limit")
	}
}
