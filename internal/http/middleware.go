package http

import (
	"context"
	"errors"
	"net/http"

	"billfold/internal/core"
	"billfold/internal/session"
)

type contextKey string

const userContextKey contextKey = "user"

// requireSession resolves the session cookie and injects the user into
// the request context. Requests without a valid session get 401.
func (s *Server) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := s.auth.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, core.ErrSessionNotFound) {
				s.clearSessionCookie(w)
				writeError(w, http.StatusUnauthorized, "session expired")
				return
			}
			respondDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user stored by requireSession.
func userFrom(ctx context.Context) core.User {
	user, _ := ctx.Value(userContextKey).(core.User)
	return user
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
