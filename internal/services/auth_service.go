package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"billfold/internal/core"
	"billfold/internal/ledger"
	"billfold/internal/session"
)

// dummyHash is compared against when the username does not exist, so login
// takes roughly the same time for unknown users and wrong passwords.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService registers users and manages their sessions. Passwords are
// stored as bcrypt hashes; sessions are random tokens persisted in the store
// so logout revokes them server-side.
type AuthService struct {
	users      ledger.UserStore
	sessions   ledger.SessionStore
	sessionTTL time.Duration
	bcryptCost int
}

func NewAuthService(users ledger.UserStore, sessions ledger.SessionStore, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = session.DefaultTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.ErrEmptyUsername
	}
	if len(username) > 64 {
		return core.User{}, errors.New("username too long (max 64 characters)")
	}
	if password == "" {
		return core.User{}, core.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.CreateUser(ctx, username, string(hash))
	if err != nil {
		return core.User{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Login validates credentials and opens a session. The returned token is the
// caller's handle on the session; there is no other session state.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, core.User, error) {
	u, err := s.users.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", core.User{}, core.ErrInvalidCredentials
		}
		return "", core.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", core.User{}, core.ErrInvalidCredentials
	}

	// Opportunistic sweep; failures only leave stale rows behind.
	if err := s.sessions.DeleteExpiredSessions(ctx); err != nil {
		slog.WarnContext(ctx, "Expired session sweep failed", "error", err)
	}

	token, err := session.NewToken()
	if err != nil {
		return "", core.User{}, err
	}

	if err := s.sessions.CreateSession(ctx, token, u.ID, time.Now().Add(s.sessionTTL)); err != nil {
		return "", core.User{}, fmt.Errorf("create session: %w", err)
	}

	slog.InfoContext(ctx, "User logged in", "user_id", u.ID, "username", u.Username)
	return token, u, nil
}

// Logout revokes the session. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve maps a session token to its user. Returns core.ErrSessionNotFound
// for unknown or expired tokens.
func (s *AuthService) Resolve(ctx context.Context, token string) (core.User, error) {
	return s.sessions.SessionUser(ctx, token)
}
