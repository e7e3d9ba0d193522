package http

import (
	"net/http"

	"billfold/internal/services"
)

type categoryAmountResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Count    int    `json:"count"`
}

type monthAmountResponse struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type summaryResponse struct {
	ByCategory   []categoryAmountResponse `json:"by_category"`
	ByMonth      []monthAmountResponse    `json:"by_month"`
	CurrentMonth string                   `json:"current_month"`
	Budget       budgetResponse           `json:"budget"`
}

func toSummaryResponse(summary services.Summary) summaryResponse {
	resp := summaryResponse{
		ByCategory:   make([]categoryAmountResponse, 0, len(summary.ByCategory)),
		ByMonth:      make([]monthAmountResponse, 0, len(summary.ByMonth)),
		CurrentMonth: summary.CurrentMonth.String(),
		Budget:       toBudgetResponse(summary.Budget),
	}
	for _, c := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryAmountResponse{
			Category: string(c.Category),
			Total:    c.Total.String(),
			Count:    c.Count,
		})
	}
	for _, m := range summary.ByMonth {
		resp.ByMonth = append(resp.ByMonth, monthAmountResponse{
			Month: m.Month.String(),
			Total: m.Total.String(),
		})
	}
	return resp
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	key := summaryCacheKey(user.ID)

	if cached, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, toSummaryResponse(cached))
		return
	}

	summary, err := s.analytics.Summary(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}
