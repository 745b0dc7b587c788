package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

// DistrictBudgetCrore is the pool a district's budget split distributes.
const DistrictBudgetCrore = 1000

const unknownScheme = "Unknown"

// SchemeStatus grades how far a scheme's coverage lags its eligible population.
type SchemeStatus string

const (
	StatusCritical        SchemeStatus = "CRITICAL"
	StatusUnderperforming SchemeStatus = "UNDERPERFORMING"
	StatusOnTrack         SchemeStatus = "ON_TRACK"
)

// ClassifyCoverage maps a coverage gap percentage to a status: >=50 CRITICAL,
// >=20 UNDERPERFORMING, else ON_TRACK.
func ClassifyCoverage(gap float64) SchemeStatus {
	switch {
	case gap >= 50:
		return StatusCritical
	case gap >= 20:
		return StatusUnderperforming
	default:
		return StatusOnTrack
	}
}

type TalukaBudget struct {
	Taluka                 string  `json:"taluka"`
	AvgPriority            float64 `json:"avg_priority"`
	RecommendedBudgetCrore float64 `json:"recommended_budget_crore"`
}

type SchemeIntelligence struct {
	Scheme               string       `json:"scheme"`
	EligibleEst          int64        `json:"eligible_est"`
	BeneficiariesCurrent int64        `json:"beneficiaries_current"`
	CoverageGapPct       float64      `json:"coverage_gap_pct"`
	Status               SchemeStatus `json:"status"`
}

type TalukaPriority struct {
	District           string             `json:"district"`
	Taluka             string             `json:"taluka"`
	Problem            *string            `json:"problem"`
	PriorityScore      float64            `json:"priority_score"`
	RiskLevel          scoring.RiskLevel  `json:"risk_level"`
	SchemeIntelligence SchemeIntelligence `json:"scheme_intelligence"`
	WeightContribution scoring.Breakdown  `json:"weight_contribution"`
	Explanation        string             `json:"explanation"`
}

// Talukas lists the distinct talukas of a district. A table without a taluka
// column yields an empty list.
func Talukas(t *store.Table, district string) []string {
	if !t.HasColumn(store.ColTaluka) {
		return []string{}
	}
	rows := filter(t.Rows, store.ColDistrict, strings.TrimSpace(district))
	return distinct(rows, store.ColTaluka)
}

// TalukaBudgetSplit divides DistrictBudgetCrore across a district's talukas in
// proportion to their mean priority score.
func TalukaBudgetSplit(t *store.Table, district string) ([]TalukaBudget, error) {
	out := []TalukaBudget{}
	if !t.HasColumn(store.ColTaluka) {
		return out, nil
	}

	rows := filter(t.Rows, store.ColDistrict, strings.TrimSpace(district))
	var total float64
	for _, g := range groupBy(rows, field(store.ColTaluka)) {
		s, err := scores(g.rows)
		if err != nil {
			return nil, fmt.Errorf("taluka %s: %w", g.key, err)
		}
		avg := scoring.Round2(mean(s))
		total += avg
		out = append(out, TalukaBudget{Taluka: g.key, AvgPriority: avg})
	}
	if total == 0 {
		total = 1
	}

	for i := range out {
		out[i].RecommendedBudgetCrore = scoring.Round2((out[i].AvgPriority / total) * DistrictBudgetCrore)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendedBudgetCrore > out[j].RecommendedBudgetCrore
	})
	return out, nil
}

// TalukaPriorities scores every record of one taluka and attaches its scheme
// coverage picture. Matching is exact after trimming.
func TalukaPriorities(t *store.Table, taluka string) ([]TalukaPriority, error) {
	out := []TalukaPriority{}
	if !t.HasColumn(store.ColTaluka) {
		return out, nil
	}

	key := strings.TrimSpace(taluka)
	for i, rec := range t.Rows {
		if v, ok := rec.Get(store.ColTaluka); !ok || v != key {
			continue
		}

		score, breakdown, err := scoreRow(row{index: i, rec: rec})
		if err != nil {
			return nil, fmt.Errorf("taluka %s: %w", key, err)
		}
		intel := schemeIntelligence(rec)
		gap := intel.CoverageGapPct
		district, _ := rec.Get(store.ColDistrict)

		out = append(out, TalukaPriority{
			District:           district,
			Taluka:             key,
			Problem:            optional(rec, store.ColProblemType),
			PriorityScore:      score,
			RiskLevel:          scoring.Classify(score),
			SchemeIntelligence: intel,
			WeightContribution: breakdown,
			Explanation:        scoring.Explain(rec, &gap),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].PriorityScore > out[j].PriorityScore })
	return out, nil
}

func schemeIntelligence(rec store.Record) SchemeIntelligence {
	gap, ok, err := rec.Float(store.ColSchemeGapPct)
	if err != nil || !ok {
		gap = 0
	}
	pop, ok, err := rec.Float(store.ColPopulation)
	if err != nil || !ok {
		pop = 0
	}
	eligible := int64(math.Trunc(pop))

	scheme, ok := rec.Get(store.ColLinkedScheme)
	if !ok {
		scheme = unknownScheme
	}

	return SchemeIntelligence{
		Scheme:               scheme,
		EligibleEst:          eligible,
		BeneficiariesCurrent: int64(math.RoundToEven(float64(eligible) * (1 - gap/100))),
		CoverageGapPct:       gap,
		Status:               ClassifyCoverage(gap),
	}
}

func optional(rec store.Record, name string) *string {
	v, ok := rec.Get(name)
	if !ok {
		return nil
	}
	return &v
}
