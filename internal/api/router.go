package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/MikeSquared-Agency/RuralPriority/internal/ranking"
)

// Ranker answers the ranking queries served over HTTP.
type Ranker interface {
	Districts(ctx context.Context) ([]string, error)
	Priorities(ctx context.Context) ([]ranking.PriorityRow, error)
	DistrictPriorityIndex(ctx context.Context) ([]ranking.DistrictIndex, error)
	Talukas(ctx context.Context, district string) ([]string, error)
	TalukaBudgetSplit(ctx context.Context, district string) ([]ranking.TalukaBudget, error)
	TalukaPriorities(ctx context.Context, taluka string) ([]ranking.TalukaPriority, error)
	BudgetAllocation(ctx context.Context, totalBudget int) ([]ranking.Allocation, error)
}

type Options struct {
	CORSOrigins        []string
	RateLimitPerMinute int
}

func NewRouter(rk Ranker, opts Options, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	if opts.RateLimitPerMinute > 0 {
		r.Use(RateLimitMiddleware(opts.RateLimitPerMinute))
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}).Handler)

	districts := NewDistrictsHandler(rk, logger)
	priorities := NewPrioritiesHandler(rk, logger)
	schemes := NewSchemeHandler()

	r.Get("/districts", districts.List)
	r.Get("/district-priority-index", districts.Index)
	r.Get("/district/{district_name}/talukas", districts.Talukas)
	r.Get("/district/{district_name}/taluka-budget", districts.TalukaBudget)
	r.Get("/budget-allocation", districts.BudgetAllocation)

	r.Get("/priorities", priorities.List)
	r.Get("/taluka/{taluka_name}/priorities", priorities.Taluka)

	r.Get("/scheme-gap/{problem_type}", schemes.Gap)

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
