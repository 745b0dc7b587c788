package ranking

import (
	"fmt"
	"sort"

	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

const (
	// DefaultTotalBudgetCrore is the pool split by BudgetAllocation when no total is given.
	DefaultTotalBudgetCrore = 1000
	// AllocationReason accompanies every district allocation.
	AllocationReason = "Higher composite rural risk and scheme gap"
)

// DistrictIndex is a district's composite priority index with the means it was built from.
type DistrictIndex struct {
	District       string            `json:"district"`
	AvgPriority    float64           `json:"avg_priority"`
	AvgSchemeGap   float64           `json:"avg_scheme_gap"`
	AvgDelayMonths float64           `json:"avg_delay_months"`
	Index          float64           `json:"district_priority_index"`
	RiskBand       scoring.RiskLevel `json:"risk_band"`
}

// Allocation is a district's share of the total budget.
type Allocation struct {
	District               string  `json:"district"`
	RecommendedBudgetCrore float64 `json:"recommended_budget_crore"`
	AllocationReason       string  `json:"allocation_reason"`
}

// Districts lists distinct district labels in ascending order.
func Districts(t *store.Table) []string {
	return distinct(t.Rows, store.ColDistrict)
}

type districtMeans struct {
	district string
	score    float64
	gap      float64
	delay    float64
}

func districtAverages(t *store.Table) ([]districtMeans, error) {
	var out []districtMeans
	for _, g := range groupBy(t.Rows, field(store.ColDistrict)) {
		s, err := scores(g.rows)
		if err != nil {
			return nil, fmt.Errorf("district %s: %w", g.key, err)
		}
		out = append(out, districtMeans{
			district: g.key,
			score:    mean(s),
			gap:      meanField(g.rows, store.ColSchemeGapPct),
			delay:    meanField(g.rows, store.ColDelayMonths),
		})
	}
	return out, nil
}

// DistrictPriorityIndex computes mean score × (1 + mean gap/100) × (1 + mean delay/12)
// per district, rounded to two decimals and sorted descending. Ties keep
// ascending district order.
func DistrictPriorityIndex(t *store.Table) ([]DistrictIndex, error) {
	avgs, err := districtAverages(t)
	if err != nil {
		return nil, err
	}

	out := make([]DistrictIndex, 0, len(avgs))
	for _, a := range avgs {
		index := scoring.Round2(composite(a.score, a.gap, a.delay))
		out = append(out, DistrictIndex{
			District:       a.district,
			AvgPriority:    scoring.Round2(a.score),
			AvgSchemeGap:   scoring.Round2(a.gap),
			AvgDelayMonths: scoring.Round2(a.delay),
			Index:          index,
			RiskBand:       scoring.ClassifyIndex(index),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index > out[j].Index })
	return out, nil
}

// BudgetAllocation splits totalBudget across districts in proportion to their
// unrounded composite index. Only the final amount is rounded.
func BudgetAllocation(t *store.Table, totalBudget int) ([]Allocation, error) {
	avgs, err := districtAverages(t)
	if err != nil {
		return nil, err
	}

	indices := make([]float64, len(avgs))
	var total float64
	for i, a := range avgs {
		indices[i] = composite(a.score, a.gap, a.delay)
		total += indices[i]
	}
	if total == 0 {
		total = 1
	}

	out := make([]Allocation, 0, len(avgs))
	for i, a := range avgs {
		share := indices[i] / total
		out = append(out, Allocation{
			District:               a.district,
			RecommendedBudgetCrore: scoring.Round2(share * float64(totalBudget)),
			AllocationReason:       AllocationReason,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendedBudgetCrore > out[j].RecommendedBudgetCrore
	})
	return out, nil
}
