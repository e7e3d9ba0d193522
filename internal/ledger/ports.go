package ledger

import (
	"context"
	"time"

	"billfold/internal/core"
)

// Ports for the persistence layer. Core services depend on these rather than
// on a concrete store so they can run against SQLite or an in-memory store.
type (
	UserStore interface {
		// CreateUser stores a new user and returns it with its assigned id.
		// Returns core.ErrDuplicateUsername if the username is taken.
		CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)

		// UserByUsername returns core.ErrUserNotFound if no such user exists.
		UserByUsername(ctx context.Context, username string) (core.User, error)
	}

	ExpenseStore interface {
		// InsertExpense stores a new expense and returns its assigned id.
		InsertExpense(ctx context.Context, e core.Expense) (int64, error)

		// ListExpenses returns all expenses recorded for the user. An empty
		// result is a valid state, not an error.
		ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error)

		// DeleteExpense removes the expense only when both id and owner
		// match. Returns core.ErrExpenseNotFound when no row matched.
		DeleteExpense(ctx context.Context, userID, expenseID int64) error
	}

	BudgetStore interface {
		// UpsertBudget replaces any existing budget row for the user.
		UpsertBudget(ctx context.Context, userID int64, limit core.Money) error

		// Budget returns core.ErrNoBudget when the user never set one.
		Budget(ctx context.Context, userID int64) (core.Money, error)
	}

	SessionStore interface {
		CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error

		// SessionUser resolves a token to its user. Returns
		// core.ErrSessionNotFound for unknown or expired tokens.
		SessionUser(ctx context.Context, token string) (core.User, error)

		DeleteSession(ctx context.Context, token string) error
		DeleteExpiredSessions(ctx context.Context) error
	}
)

// Store is the full capability set a backend provides.
type Store interface {
	UserStore
	ExpenseStore
	BudgetStore
	SessionStore
}
