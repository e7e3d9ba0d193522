package http

import (
	"log/slog"
	"net/http"

	"billfold/internal/core"
	"billfold/internal/services"
)

type budgetRequest struct {
	Limit string `json:"limit"`
}

type budgetResponse struct {
	State string  `json:"state"`
	Limit *string `json:"limit,omitempty"`
	Spent string  `json:"spent"`
}

func toBudgetResponse(status services.BudgetStatus) budgetResponse {
	resp := budgetResponse{
		State: string(status.State),
		Spent: status.Spent.String(),
	}
	if status.State != services.BudgetUnset {
		limit := status.Limit.String()
		resp.Limit = &limit
	}
	return resp
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit: expected a decimal like 500.00")
		return
	}

	if err := s.budgets.Set(r.Context(), user.ID, core.Money{Cents: cents}); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateUserCaches(user.ID)
	slog.InfoContext(r.Context(), "budget set", "user_id", user.ID, "limit_cents", cents)

	status, err := s.budgets.Check(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(status))
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	status, err := s.budgets.Check(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(status))
}
