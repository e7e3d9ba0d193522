package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"billfold/internal/core"
)

func TestUserRoundTrip(t *testing.T) {
	s := New()
	u, err := s.CreateUser(context.Background(), "alice", "hash")
	if err != nil || u.ID == 0 {
		t.Fatalf("unexpected create: user=%+v err=%v", u, err)
	}

	if _, err := s.CreateUser(context.Background(), "alice", "other"); !errors.Is(err, core.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}

	got, err := s.UserByUsername(context.Background(), "alice")
	if err != nil || got.ID != u.ID {
		t.Fatalf("unexpected lookup: user=%+v err=%v", got, err)
	}

	if _, err := s.UserByUsername(context.Background(), "bob"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExpenseOwnershipScoping(t *testing.T) {
	s := New()
	id, err := s.InsertExpense(context.Background(), core.Expense{
		UserID:   1,
		Amount:   core.Money{Cents: 500},
		Category: core.Food,
		Date:     core.NewDate(2024, 1, 10),
	})
	if err != nil || id == 0 {
		t.Fatalf("unexpected insert: id=%d err=%v", id, err)
	}

	// Another user neither sees nor deletes it.
	other, _ := s.ListExpenses(context.Background(), 2)
	if len(other) != 0 {
		t.Fatalf("expected empty list for other user, got %v", other)
	}
	if err := s.DeleteExpense(context.Background(), 2, id); !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("expected not found for foreign delete, got %v", err)
	}

	if err := s.DeleteExpense(context.Background(), 1, id); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	mine, _ := s.ListExpenses(context.Background(), 1)
	if len(mine) != 0 {
		t.Fatalf("expected empty list after delete, got %v", mine)
	}
}

func TestBudgetUpsert(t *testing.T) {
	s := New()
	if _, err := s.Budget(context.Background(), 1); !errors.Is(err, core.ErrNoBudget) {
		t.Fatalf("expected no budget, got %v", err)
	}
	if err := s.UpsertBudget(context.Background(), 1, core.Money{Cents: 100000}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertBudget(context.Background(), 1, core.Money{Cents: 50000}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	limit, err := s.Budget(context.Background(), 1)
	if err != nil || limit.Cents != 50000 {
		t.Fatalf("expected latest limit 50000, got %d (err=%v)", limit.Cents, err)
	}
}

func TestSessionExpiry(t *testing.T) {
	s := New()
	u, _ := s.CreateUser(context.Background(), "alice", "hash")

	if err := s.CreateSession(context.Background(), "tok", u.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	got, err := s.SessionUser(context.Background(), "tok")
	if err != nil || got.ID != u.ID {
		t.Fatalf("unexpected session user: %+v err=%v", got, err)
	}

	_ = s.CreateSession(context.Background(), "old", u.ID, time.Now().Add(-time.Minute))
	if _, err := s.SessionUser(context.Background(), "old"); !errors.Is(err, core.ErrSessionNotFound) {
		t.Fatalf("expected expired session error, got %v", err)
	}
	if err := s.DeleteExpiredSessions(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if err := s.DeleteSession(context.Background(), "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.SessionUser(context.Background(), "tok"); !errors.Is(err, core.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}
