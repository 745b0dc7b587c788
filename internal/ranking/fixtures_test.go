package ranking

import (
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

func rec(district, taluka, problem, sev, pop, eco, hea, delay, gap string) store.Record {
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

// villageTable scores: Pune/Haveli Water 6.2, Pune/Haveli Health 5.4,
// Pune/Mulshi Roads 2.53, Nashik/Igatpuri Water 8.5, Nashik/(none) Education 4.02.
func villageTable() *store.Table {
	water := rec("Pune", "Haveli", "Water", "8", "100000", "7", "6", "3", "40")
	water[store.ColLinkedScheme] = "Jal Jeevan Mission"
	return &store.Table{
		Columns: store.Columns,
		Rows: []store.Record{
			water,
			rec("Pune", "Haveli", "Health", "6", "50000", "5", "8", "6", "20"),
			rec("Pune", "Mulshi", "Roads", "4", "20000", "3", "2", "2", "10"),
			rec("Nashik", "Igatpuri", "Water", "9", "150000", "8", "7", "9", "60"),
			rec("Nashik", "", "Education", "5", "30000", "4", "3", "4", "55"),
		},
	}
}

// withoutColumn drops a column from the header and every row.
func withoutColumn(t *store.Table, name string) *store.Table {
	out := &store.Table{}
	for _, c := range t.Columns {
		if c != name {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range t.Rows {
		cp := make(store.Record, len(r))
		for k, v := range r {
			if k != name {
				cp[k] = v
			}
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}
