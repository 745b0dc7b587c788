package ranking

import (
	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

// PriorityRow is one record's score, band, breakdown and explanation.
type PriorityRow struct {
	District           string            `json:"district"`
	Taluka             *string           `json:"taluka"`
	Problem            *string           `json:"problem"`
	PriorityScore      float64           `json:"priority_score"`
	RiskLevel          scoring.RiskLevel `json:"risk_level"`
	SchemeGap          *float64          `json:"scheme_gap"`
	WeightContribution scoring.Breakdown `json:"weight_contribution"`
	Explanation        string            `json:"explanation"`
}

// Priorities scores every record in table order. The first record that
// cannot be scored fails the whole call.
func Priorities(t *store.Table) ([]PriorityRow, error) {
	out := make([]PriorityRow, 0, len(t.Rows))
	for i, rec := range t.Rows {
		score, breakdown, err := scoreRow(row{index: i, rec: rec})
		if err != nil {
			return nil, err
		}

		var gap *float64
		if v, ok, err := rec.Float(store.ColSchemeGapPct); err == nil && ok {
			gap = &v
		}
		district, _ := rec.Get(store.ColDistrict)

		out = append(out, PriorityRow{
			District:           district,
			Taluka:             optional(rec, store.ColTaluka),
			Problem:            optional(rec, store.ColProblemType),
			PriorityScore:      score,
			RiskLevel:          scoring.Classify(score),
			SchemeGap:          gap,
			WeightContribution: breakdown,
			Explanation:        scoring.Explain(rec, gap),
		})
	}
	return out, nil
}
