package core

import (
	"errors"
	"strings"
	"time"
)

// Category is a fixed closed set used to classify expenses for aggregation.
const (
	Food     Category = "Food"
	Travel   Category = "Travel"
	Shopping Category = "Shopping"
	Bills    Category = "Bills"
	Other    Category = "Other"
)

type (
	Category string

	// Date is a calendar day. The time part is always midnight UTC.
	Date struct {
		time.Time
	}

	// YearMonth identifies a calendar month for grouping.
	YearMonth struct {
		Year  int
		Month int // 1-12
	}

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}

	Expense struct {
		ID       int64
		UserID   int64
		Amount   Money
		Category Category
		Note     string // optional free text
		Date     Date
	}

	Budget struct {
		UserID int64
		Limit  Money
	}
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrNoBudget           = errors.New("no budget set")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyUsername      = errors.New("empty username")
	ErrEmptyPassword      = errors.New("empty password")
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{Food, Travel, Shopping, Bills, Other}
}

func (c Category) Valid() bool {
	switch c {
	case Food, Travel, Shopping, Bills, Other:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a wall-clock instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Time.Year(), Month: int(d.Time.Month())}
}

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

func (ym YearMonth) String() string {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Before reports whether ym is chronologically earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if len(e.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Limit.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
