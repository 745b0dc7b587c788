package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
)

type SchemeHandler struct{}

func NewSchemeHandler() *SchemeHandler {
	return &SchemeHandler{}
}

type schemeGapResponse struct {
	ProblemType string `json:"problem_type"`
	scoring.Scheme
	SchemeGapPct float64 `json:"scheme_gap_pct"`
}

// Gap returns the reference coverage gap of the scheme linked to a problem category.
// GET /scheme-gap/{problem_type}
func (h *SchemeHandler) Gap(w http.ResponseWriter, r *http.Request) {
	problem, err := pathParam(r, "problem_type")
	if err != nil {
		writeBadParam(w, "problem_type")
		return
	}
	scheme, ok := scoring.LookupScheme(problem)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scheme mapped for " + problem})
		return
	}
	gap, _ := scoring.SchemeGap(problem)
	writeJSON(w, http.StatusOK, schemeGapResponse{ProblemType: problem, Scheme: scheme, SchemeGapPct: gap})
}
