package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MikeSquared-Agency/RuralPriority/internal/ranking"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func villageRecord(district, taluka, problem, sev, pop, eco, hea, delay, gap string) store.Record {
	return store.Record{
		store.ColDistrict:       district,
		store.ColTaluka:         taluka,
		store.ColProblemType:    problem,
		store.ColSeverity:       sev,
		store.ColPopulation:     pop,
		store.ColEconomicImpact: eco,
		store.ColHealthEnvRisk:  hea,
		store.ColDelayMonths:    delay,
		store.ColSchemeGapPct:   gap,
	}
}

func villageTable() *store.Table {
	return &store.Table{
		Columns: store.Columns,
		Rows: []store.Record{
			villageRecord("Pune", "Haveli", "Water", "8", "100000", "7", "6", "3", "40"),
			villageRecord("Pune", "Haveli", "Health", "6", "50000", "5", "8", "6", "20"),
			villageRecord("Pune", "Mulshi", "Roads", "4", "20000", "3", "2", "2", "10"),
			villageRecord("Nashik", "Igatpuri", "Water", "9", "150000", "8", "7", "9", "60"),
			villageRecord("Nashik", "", "Education", "5", "30000", "4", "3", "4", "55"),
			villageRecord("Ahmed Nagar", "Rahuri", "Water", "5", "10000", "5", "5", "1", "5"),
		},
	}
}

func newTestRouter(src store.Source) http.Handler {
	svc := ranking.NewService(src, testLogger())
	return NewRouter(svc, Options{CORSOrigins: []string{"*"}}, testLogger())
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestDistricts(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})
	w := get(t, r, "/districts")
	require.Equal(t, http.StatusOK, w.Code)

	var got []string
	decode(t, w, &got)
	assert.Equal(t, []string{"Ahmed Nagar", "Nashik", "Pune"}, got)
}

func TestEmptyTableReturnsEmptyArrays(t *testing.T) {
	r := newTestRouter(store.StaticSource{})
	for _, path := range []string{
		"/districts",
		"/priorities",
		"/district-priority-index",
		"/budget-allocation",
		"/district/Pune/talukas",
		"/district/Pune/taluka-budget",
		"/taluka/Haveli/priorities",
	} {
		w := get(t, r, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
	}
}

func TestDistrictPriorityIndex(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})
	w := get(t, r, "/district-priority-index")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	decode(t, w, &got)
	require.Len(t, got, 3)
	assert.Equal(t, "Nashik", got[0]["district"])
	assert.Equal(t, 15.2, got[0]["district_priority_index"])
	assert.Equal(t, "HIGH", got[0]["risk_band"])
	assert.Equal(t, 57.5, got[0]["avg_scheme_gap"])
}

func TestBudgetAllocation(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})

	w := get(t, r, "/budget-allocation?total_budget_crore=250")
	require.Equal(t, http.StatusOK, w.Code)
	var got []ranking.Allocation
	decode(t, w, &got)
	require.Len(t, got, 3)

	var sum float64
	for _, a := range got {
		assert.Equal(t, ranking.AllocationReason, a.AllocationReason)
		sum += a.RecommendedBudgetCrore
	}
	assert.InDelta(t, 250, sum, 0.03)
	assert.Equal(t, "Nashik", got[0].District)
}

func TestBudgetAllocationRejectsNonInteger(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})
	for _, q := range []string{"abc", "12.5"} {
		w := get(t, r, "/budget-allocation?total_budget_crore="+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestTalukaRoutes(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})

	w := get(t, r, "/district/Pune/talukas")
	require.Equal(t, http.StatusOK, w.Code)
	var talukas []string
	decode(t, w, &talukas)
	assert.Equal(t, []string{"Haveli", "Mulshi"}, talukas)

	w = get(t, r, "/district/Ahmed%20Nagar/talukas")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &talukas)
	assert.Equal(t, []string{"Rahuri"}, talukas)

	w = get(t, r, "/district/Pune/taluka-budget")
	require.Equal(t, http.StatusOK, w.Code)
	var split []ranking.TalukaBudget
	decode(t, w, &split)
	assert.Equal(t, []ranking.TalukaBudget{
		{Taluka: "Haveli", AvgPriority: 5.8, RecommendedBudgetCrore: 696.28},
		{Taluka: "Mulshi", AvgPriority: 2.53, RecommendedBudgetCrore: 303.72},
	}, split)
}

func TestTalukaPriorities(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})
	w := get(t, r, "/taluka/Haveli/priorities")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	decode(t, w, &got)
	require.Len(t, got, 2)
	assert.Equal(t, 6.2, got[0]["priority_score"])
	intel, ok := got[0]["scheme_intelligence"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Unknown", intel["scheme"])
	assert.Equal(t, 60000.0, intel["beneficiaries_current"])
	assert.Equal(t, "UNDERPERFORMING", intel["status"])
}

func TestPriorities(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})
	w := get(t, r, "/priorities")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	decode(t, w, &got)
	require.Len(t, got, 6)
	assert.Equal(t, "Water", got[0]["problem"])
	assert.Equal(t, 40.0, got[0]["scheme_gap"])
	assert.Nil(t, got[4]["taluka"])
	contrib, ok := got[0]["weight_contribution"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2.0, contrib["severity"])
	assert.Contains(t, got[0]["explanation"], "~100,000 people")
}

func TestMissingFieldIsUnprocessable(t *testing.T) {
	table := villageTable()
	delete(table.Rows[2], store.ColEconomicImpact)
	r := newTestRouter(store.StaticSource{Table: table})

	for _, path := range []string{"/priorities", "/district-priority-index", "/budget-allocation", "/district/Pune/taluka-budget"} {
		w := get(t, r, path)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, path)
		assert.Contains(t, w.Body.String(), "economic_impact_score", path)
	}

	// the broken row is not in Nashik
	w := get(t, r, "/district/Nashik/taluka-budget")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSourceFailureIsServerError(t *testing.T) {
	src := store.SourceFunc(func(context.Context) (*store.Table, error) {
		return nil, errors.New("no such file")
	})
	r := newTestRouter(src)

	w := get(t, r, "/districts")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "no such file")
}

func TestSchemeGap(t *testing.T) {
	r := newTestRouter(store.StaticSource{})

	w := get(t, r, "/scheme-gap/Water")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	decode(t, w, &got)
	assert.Equal(t, "Water", got["problem_type"])
	assert.Equal(t, "Jal Jeevan Mission", got["scheme"])
	assert.Equal(t, 60.4, got["scheme_gap_pct"])

	w = get(t, r, "/scheme-gap/Roads")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(store.StaticSource{Table: villageTable()})

	req := httptest.NewRequest("GET", "/districts", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterRateLimit(t *testing.T) {
	svc := ranking.NewService(store.StaticSource{}, testLogger())
	r := NewRouter(svc, Options{CORSOrigins: []string{"*"}, RateLimitPerMinute: 1}, testLogger())

	assert.Equal(t, http.StatusOK, get(t, r, "/districts").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, r, "/districts").Code)
}

func TestMetricsRouter(t *testing.T) {
	r := NewMetricsRouter()

	w := get(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNaNCellIsUnprocessable(t *testing.T) {
	table := &store.Table{
		Columns: store.Columns,
		Rows:    []store.Record{villageRecord("Pune", "Haveli", "Water", "NaN", "100000", "7", "6", "3", "40")},
	}
	r := newTestRouter(store.StaticSource{Table: table})

	for _, path := range []string{"/priorities", "/district-priority-index", "/budget-allocation"} {
		w := get(t, r, path)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, path)

		var body map[string]string
		decode(t, w, &body)
		assert.Contains(t, body["error"], "severity_score", path)
	}
}

func TestInfiniteCellIsUnprocessable(t *testing.T) {
	table := &store.Table{
		Columns: store.Columns,
		Rows:    []store.Record{villageRecord("Pune", "Haveli", "Water", "8", "Infinity", "7", "6", "3", "40")},
	}
	r := newTestRouter(store.StaticSource{Table: table})

	w := get(t, r, "/priorities")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "population_affected")
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]float64{"score": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Contains(t, body["error"], "encode response")
}

func TestEscapedPathParams(t *testing.T) {
	table := &store.Table{
		Columns: store.Columns,
		Rows: []store.Record{
			villageRecord("Sangli (West)", "Haveli (East)", "Water", "8", "100000", "7", "6", "3", "40"),
		},
	}
	r := newTestRouter(store.StaticSource{Table: table})

	for _, path := range []string{
		"/taluka/Haveli%20(East)/priorities",
		"/taluka/Haveli%20%28East%29/priorities",
	} {
		w := get(t, r, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		var got []ranking.TalukaPriority
		decode(t, w, &got)
		require.Len(t, got, 1, path)
		assert.Equal(t, "Haveli (East)", got[0].Taluka, path)
	}

	w := get(t, r, "/district/Sangli%20(West)/talukas")
	require.Equal(t, http.StatusOK, w.Code)
	var talukas []string
	decode(t, w, &talukas)
	assert.Equal(t, []string{"Haveli (East)"}, talukas)

	w = get(t, r, "/district/Sangli%20(West)/taluka-budget")
	require.Equal(t, http.StatusOK, w.Code)
	var split []ranking.TalukaBudget
	decode(t, w, &split)
	require.Len(t, split, 1)
	assert.Equal(t, 1000.0, split[0].RecommendedBudgetCrore)
}

func TestPathParamRejectsBadEscape(t *testing.T) {
	req := httptest.NewRequest("GET", "/taluka/x/priorities", nil)
	req.URL.RawPath = "/taluka/%zz/priorities"
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("taluka_name", "%zz")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	_, err := pathParam(req, "taluka_name")
	require.Error(t, err)

	w := httptest.NewRecorder()
	NewPrioritiesHandler(ranking.NewService(store.StaticSource{}, testLogger()), testLogger()).Taluka(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathParamWithoutRawPathIsUnchanged(t *testing.T) {
	req := httptest.NewRequest("GET", "/scheme-gap/x", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("problem_type", "100%")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := pathParam(req, "problem_type")
	require.NoError(t, err)
	assert.Equal(t, "100%", got)
}
