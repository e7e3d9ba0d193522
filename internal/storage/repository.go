package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"billfold/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements the ledger ports over an embedded SQLite
// database. All queries are parameter-bound.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser implements ledger.UserStore.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrDuplicateUsername
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user insert id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", id, "username", username)

	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// UserByUsername implements ledger.UserStore.
func (r *SQLiteRepository) UserByUsername(ctx context.Context, username string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("user by username: %w", err)
	}
	return u, nil
}

// InsertExpense implements ledger.ExpenseStore.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount_cents, category, note, date) VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Amount.Cents, string(e.Category), e.Note, e.Date.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"category", string(e.Category),
		"date", e.Date.String())

	return id, nil
}

// ListExpenses implements ledger.ExpenseStore.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount_cents, category, note, date FROM expenses WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e        core.Expense
			category string
			date     string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount.Cents, &category, &e.Note, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Category = core.Category(category)
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", date, err)
		}
		e.Date = d
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// DeleteExpense implements ledger.ExpenseStore. The owner check is part of
// the statement so a user can never remove another user's row.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`,
		expenseID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrExpenseNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", expenseID, "user_id", userID)
	return nil
}

// UpsertBudget implements ledger.BudgetStore. One row per user; later sets
// replace earlier ones.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, userID int64, limit core.Money) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budget (user_id, limit_cents) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET limit_cents = excluded.limit_cents`,
		userID, limit.Cents,
	)
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget set", "user_id", userID, "limit_cents", limit.Cents)
	return nil
}

// Budget implements ledger.BudgetStore.
func (r *SQLiteRepository) Budget(ctx context.Context, userID int64) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT limit_cents FROM budget WHERE user_id = ?`, userID).Scan(&cents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Money{}, core.ErrNoBudget
		}
		return core.Money{}, fmt.Errorf("get budget: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// CreateSession implements ledger.SessionStore.
func (r *SQLiteRepository) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// SessionUser implements ledger.SessionStore.
func (r *SQLiteRepository) SessionUser(ctx context.Context, token string) (core.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.password_hash, u.created_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > ?`,
		token, time.Now().UTC(),
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrSessionNotFound
		}
		return core.User{}, fmt.Errorf("session user: %w", err)
	}
	return u, nil
}

// DeleteSession implements ledger.SessionStore.
func (r *SQLiteRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions implements ledger.SessionStore.
func (r *SQLiteRepository) DeleteExpiredSessions(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (core.User, error) {
	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
