package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MikeSquared-Agency/RuralPriority/internal/metrics"
	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

// row keeps a record's position in the table for error reporting.
type row struct {
	index int
	rec   store.Record
}

type group struct {
	key  string
	rows []row
}

// groupBy buckets rows by key, skipping rows whose key is absent. Groups come
// back in ascending key order; rows keep table order within a group.
func groupBy(rows []store.Record, key func(store.Record) (string, bool)) []group {
	idx := make(map[string]int)
	var groups []group
	for i, rec := range rows {
		k, ok := key(rec)
		if !ok {
			continue
		}
		gi, seen := idx[k]
		if !seen {
			gi = len(groups)
			idx[k] = gi
			groups = append(groups, group{key: k})
		}
		groups[gi].rows = append(groups[gi].rows, row{index: i, rec: rec})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	return groups
}

func field(name string) func(store.Record) (string, bool) {
	return func(rec store.Record) (string, bool) {
		return rec.Get(name)
	}
}

// distinct returns the sorted distinct present values of a column.
func distinct(rows []store.Record, name string) []string {
	out := []string{}
	for _, g := range groupBy(rows, field(name)) {
		out = append(out, g.key)
	}
	return out
}

// filter keeps rows whose column equals value after trimming both sides.
func filter(rows []store.Record, name, value string) []store.Record {
	var out []store.Record
	for _, rec := range rows {
		if v, ok := rec.Get(name); ok && v == value {
			out = append(out, rec)
		}
	}
	return out
}

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// meanField averages the present numeric values of a column. Absent or
// unparseable cells are skipped; no values gives 0.
func meanField(rows []row, name string) float64 {
	var values []float64
	for _, r := range rows {
		if v, ok, err := r.rec.Float(name); err == nil && ok {
			values = append(values, v)
		}
	}
	return mean(values)
}

// scoreRow scores one record, wrapping failures with the row position.
func scoreRow(r row) (float64, scoring.Breakdown, error) {
	total, b, err := scoring.Score(r.rec)
	if err != nil {
		var fe *scoring.FieldError
		if errors.As(err, &fe) {
			metrics.ScoreFailures.WithLabelValues(fe.Field).Inc()
		}
		return 0, scoring.Breakdown{}, fmt.Errorf("row %d: %w", r.index+1, err)
	}
	metrics.RecordsScored.Inc()
	return total, b, nil
}

// scores returns the total score of every row in the group.
func scores(rows []row) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		total, _, err := scoreRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, total)
	}
	return out, nil
}

// composite is the unrounded district composite index.
func composite(avgScore, avgGap, avgDelay float64) float64 {
	delayMultiplier := 1 + avgDelay/12
	return avgScore * (1 + avgGap/100) * delayMultiplier
}
