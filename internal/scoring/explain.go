package scoring

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

const unknownProblem = "Unknown Problem"

// Explain renders a one-line justification for a record's priority. Only
// factors present on the record get a bullet; displayed values are truncated
// to integers. schemeGapPct adds a gap bullet when non-nil, independent of the record.
func Explain(rec store.Record, schemeGapPct *float64) string {
	problem, ok := rec.Get(store.ColProblemType)
	if !ok {
		problem = unknownProblem
	}

	parts := []string{fmt.Sprintf("The problem '%s' ranks high due to:", problem)}

	if v, ok := truncated(rec, store.ColSeverity); ok {
		parts = append(parts, fmt.Sprintf("• High severity score (%d/10)", v))
	}
	if v, ok := truncated(rec, store.ColPopulation); ok {
		parts = append(parts, message.NewPrinter(language.English).Sprintf("• Large affected population (~%d people)", v))
	}
	if v, ok := truncated(rec, store.ColEconomicImpact); ok {
		parts = append(parts, fmt.Sprintf("• Significant economic impact (%d/10)", v))
	}
	if v, ok := truncated(rec, store.ColHealthEnvRisk); ok {
		parts = append(parts, fmt.Sprintf("• Health/environment risk (%d/10)", v))
	}
	if v, ok := truncated(rec, store.ColDelayMonths); ok {
		parts = append(parts, fmt.Sprintf("• Delay cost (%d months)", v))
	}
	if schemeGapPct != nil {
		parts = append(parts, fmt.Sprintf("• Scheme coverage gap (%.1f%%)", *schemeGapPct))
	}

	return strings.Join(parts, " ")
}

// truncated reads a numeric field and drops its fractional part. Unparseable
// values are skipped like absent ones.
func truncated(rec store.Record, field string) (int64, bool) {
	v, ok, err := rec.Float(field)
	if err != nil || !ok {
		return 0, false
	}
	return int64(math.Trunc(v)), true
}
