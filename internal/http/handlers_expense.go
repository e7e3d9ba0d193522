package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"billfold/internal/core"
)

type expenseRequest struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     string `json:"date"`
}

type expenseResponse struct {
	ID       int64  `json:"id"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     string `json:"date"`
}

type expenseListResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Total    string            `json:"total"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:       e.ID,
		Amount:   e.Amount.String(),
		Category: string(e.Category),
		Note:     e.Note,
		Date:     e.Date.String(),
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: expected a decimal like 12.34")
		return
	}

	category, err := core.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	if len(req.Note) > 200 {
		writeError(w, http.StatusBadRequest, "note too long (max 200 characters)")
		return
	}

	expense, err := s.expenses.Add(r.Context(), user.ID, core.Money{Cents: cents}, category, req.Note, date)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateUserCaches(user.ID)
	slog.InfoContext(r.Context(), "expense added",
		"user_id", user.ID,
		"expense_id", expense.ID,
		"category", expense.Category,
		"amount_cents", expense.Amount.Cents)
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	expenses, err := s.expenses.List(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := expenseListResponse{Expenses: make([]expenseResponse, 0, len(expenses))}
	var total int64
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toExpenseResponse(e))
		total += e.Amount.Cents
	}
	resp.Total = core.Money{Cents: total}.String()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := s.expenses.Delete(r.Context(), user.ID, id); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateUserCaches(user.ID)
	slog.InfoContext(r.Context(), "expense deleted", "user_id", user.ID, "expense_id", id)
	w.WriteHeader(http.StatusNoContent)
}
