// Package memory implements the ledger ports with in-process maps. It backs
// service tests and the "memory" store backend.
package memory

import (
	"context"
	"sync"
	"time"

	"billfold/internal/core"
)

type session struct {
	userID    int64
	expiresAt time.Time
}

type Store struct {
	mu       sync.Mutex
	nextUser int64
	nextExp  int64
	users    map[string]core.User // keyed by username
	expenses []core.Expense
	budgets  map[int64]core.Money
	sessions map[string]session
}

func New() *Store {
	return &Store{
		nextUser: 1,
		nextExp:  1,
		users:    make(map[string]core.User),
		budgets:  make(map[int64]core.Money),
		sessions: make(map[string]session),
	}
}

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return core.User{}, core.ErrDuplicateUsername
	}
	u := core.User{
		ID:           s.nextUser,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.nextUser++
	s.users[username] = u
	return u, nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) InsertExpense(_ context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextExp
	s.nextExp++
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) ListExpenses(_ context.Context, userID int64) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, userID, expenseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == expenseID && e.UserID == userID {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return core.ErrExpenseNotFound
}

func (s *Store) UpsertBudget(_ context.Context, userID int64, limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[userID] = limit
	return nil
}

func (s *Store) Budget(_ context.Context, userID int64) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	limit, ok := s.budgets[userID]
	if !ok {
		return core.Money{}, core.ErrNoBudget
	}
	return limit, nil
}

func (s *Store) CreateSession(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *Store) SessionUser(_ context.Context, token string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.expiresAt) {
		return core.User{}, core.ErrSessionNotFound
	}
	for _, u := range s.users {
		if u.ID == sess.userID {
			return u, nil
		}
	}
	return core.User{}, core.ErrSessionNotFound
}

func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for token, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
	return nil
}
