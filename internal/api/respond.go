package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
)

// writeJSON encodes v before any header goes out, so a value that cannot be
// encoded becomes a 500 with a JSON error body instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeError maps a ranking failure onto a status: a record that cannot be
// scored is 422, anything else is 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, scoring.ErrMissingField) || errors.Is(err, scoring.ErrInvalidField) {
		status = http.StatusUnprocessableEntity
	}
	logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// pathParam returns a decoded URL parameter. chi matches on the escaped path
// whenever the request carries one, and then hands back escaped segments.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func writeBadParam(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name})
}
