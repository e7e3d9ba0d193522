package http

import (
	"log/slog"
	"net/http"

	"billfold/internal/session"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	slog.InfoContext(r.Context(), "user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			respondDomainError(w, err)
			return
		}
	}

	// Logout succeeds even without a live session.
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
