package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names of the village problem table.
const (
	ColDistrict       = "district"
	ColTaluka         = "taluka"
	ColProblemType    = "problem_type"
	ColSeverity       = "severity_score"
	ColPopulation     = "population_affected"
	ColEconomicImpact = "economic_impact_score"
	ColHealthEnvRisk  = "health_environment_risk"
	ColDelayMonths    = "delay_cost_months"
	ColSchemeGapPct   = "scheme_coverage_gap_pct"
	ColLinkedScheme   = "linked_scheme"
)

// Columns lists the documented columns in table order.
var Columns = []string{
	ColDistrict, ColTaluka, ColProblemType,
	ColSeverity, ColPopulation, ColEconomicImpact,
	ColHealthEnvRisk, ColDelayMonths, ColSchemeGapPct,
	ColLinkedScheme,
}

// Record is one row of the source table: field name to raw text value.
// A field is present only when its key exists and the trimmed value is neither
// empty nor a missing-value marker, so blank CSV cells, "NaN"/"NA"/"null"
// cells and SQL NULLs all read as absent.
type Record map[string]string

// missingMarkers are the cell texts read as missing values.
var missingMarkers = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Get returns the trimmed value of field and whether it is present.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" || missingMarkers[v] {
		return "", false
	}
	return v, true
}

// Float parses field as a finite number. An absent field returns ok=false and
// no error; infinities and any other NaN spelling are parse errors.
func (r Record) Float(field string) (float64, bool, error) {
	v, ok := r.Get(field)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, true, fmt.Errorf("field %s: parse %q: %w", field, v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, fmt.Errorf("field %s: %q is not a finite number", field, v)
	}
	return f, true, nil
}

// Table is an in-memory snapshot of the source, loaded fresh per request.
type Table struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether the source carried the named column at all.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Source loads the whole table. Implementations must return a table the
// caller may read without synchronisation.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Table, error)

func (f SourceFunc) Load(ctx context.Context) (*Table, error) {
	return f(ctx)
}

// StaticSource serves a fixed table. Used by tests and the report command.
type StaticSource struct {
	Table *Table
}

func (s StaticSource) Load(_ context.Context) (*Table, error) {
	if s.Table == nil {
		return &Table{}, nil
	}
	return s.Table, nil
}
