package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"billfold/internal/cache"
	"billfold/internal/middleware/ratelimit"
	"billfold/internal/middleware/security"
	"billfold/internal/middleware/trace"
	"billfold/internal/services"
)

// Config holds the HTTP server configuration.
type Config struct {
	Addr         string
	SecureCookie bool
	SessionTTL   time.Duration
	CacheSize    int
	CacheTTL     time.Duration
}

// Server exposes the expense ledger as a JSON API.
type Server struct {
	http.Server

	auth      *services.AuthService
	expenses  *services.ExpenseService
	budgets   *services.BudgetService
	analytics *services.AnalyticsService

	secureCookie bool
	sessionTTL   time.Duration

	clientIP     *security.ClientIPExtractor
	rateLimiter  *ratelimit.Limiter
	summaryCache *cache.LRU[services.Summary]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config, auth *services.AuthService, expenses *services.ExpenseService, budgets *services.BudgetService, analytics *services.AnalyticsService) *Server {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 100
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	s := &Server{
		auth:         auth,
		expenses:     expenses,
		budgets:      budgets,
		analytics:    analytics,
		secureCookie: cfg.SecureCookie,
		sessionTTL:   cfg.SessionTTL,
		clientIP:     security.NewClientIPExtractor(),
		rateLimiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		summaryCache: cache.NewLRU[services.Summary](cfg.CacheSize, cfg.CacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.Handle("GET /expenses", s.requireSession(s.handleListExpenses))
	mux.Handle("POST /expenses", s.requireSession(s.handleAddExpense))
	mux.Handle("DELETE /expenses/{id}", s.requireSession(s.handleDeleteExpense))

	mux.Handle("GET /budget", s.requireSession(s.handleGetBudget))
	mux.Handle("PUT /budget", s.requireSession(s.handleSetBudget))

	mux.Handle("GET /analytics", s.requireSession(s.handleSummary))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.clientIP.ExtractClientIP)
	limited := s.rateLimiter.Middleware(s.clientIP.ExtractClientIP)

	s.Server = http.Server{
		Addr:         cfg.Addr,
		Handler:      tracer.Middleware(headers.Middleware(limited(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	return s
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// invalidateUserCaches drops cached analytics after a mutation.
func (s *Server) invalidateUserCaches(userID int64) {
	s.summaryCache.DeletePrefix(fmt.Sprintf("user:%d:", userID))
}

func summaryCacheKey(userID int64) string {
	return fmt.Sprintf("user:%d:summary", userID)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
