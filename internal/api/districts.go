package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/RuralPriority/internal/ranking"
)

type DistrictsHandler struct {
	ranker Ranker
	logger *slog.Logger
}

func NewDistrictsHandler(rk Ranker, logger *slog.Logger) *DistrictsHandler {
	return &DistrictsHandler{ranker: rk, logger: logger}
}

// List returns distinct district names.
// GET /districts
func (h *DistrictsHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.ranker.Districts(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Index returns the district priority index, highest first.
// GET /district-priority-index
func (h *DistrictsHandler) Index(w http.ResponseWriter, r *http.Request) {
	out, err := h.ranker.DistrictPriorityIndex(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /district/{district_name}/talukas
func (h *DistrictsHandler) Talukas(w http.ResponseWriter, r *http.Request) {
	district, err := pathParam(r, "district_name")
	if err != nil {
		writeBadParam(w, "district_name")
		return
	}
	out, err := h.ranker.Talukas(r.Context(), district)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /district/{district_name}/taluka-budget
func (h *DistrictsHandler) TalukaBudget(w http.ResponseWriter, r *http.Request) {
	district, err := pathParam(r, "district_name")
	if err != nil {
		writeBadParam(w, "district_name")
		return
	}
	out, err := h.ranker.TalukaBudgetSplit(r.Context(), district)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// BudgetAllocation splits total_budget_crore (default 1000) across districts.
// GET /budget-allocation?total_budget_crore=N
func (h *DistrictsHandler) BudgetAllocation(w http.ResponseWriter, r *http.Request) {
	total := ranking.DefaultTotalBudgetCrore
	if v := r.URL.Query().Get("total_budget_crore"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_budget_crore must be an integer"})
			return
		}
		total = n
	}

	out, err := h.ranker.BudgetAllocation(r.Context(), total)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
