package api

import (
	"log/slog"
	"net/http"
)

type PrioritiesHandler struct {
	ranker Ranker
	logger *slog.Logger
}

func NewPrioritiesHandler(rk Ranker, logger *slog.Logger) *PrioritiesHandler {
	return &PrioritiesHandler{ranker: rk, logger: logger}
}

// List scores every record in table order.
// GET /priorities
func (h *PrioritiesHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.ranker.Priorities(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Taluka returns one taluka's records with scheme intelligence, highest score first.
// GET /taluka/{taluka_name}/priorities
func (h *PrioritiesHandler) Taluka(w http.ResponseWriter, r *http.Request) {
	taluka, err := pathParam(r, "taluka_name")
	if err != nil {
		writeBadParam(w, "taluka_name")
		return
	}
	out, err := h.ranker.TalukaPriorities(r.Context(), taluka)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
