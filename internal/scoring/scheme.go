package scoring

// Scheme is a reference entry for a government scheme linked to a problem category.
type Scheme struct {
	Name               string `json:"scheme"`
	EligibleHouseholds int    `json:"eligible_households"`
	Beneficiaries      int    `json:"beneficiaries"`
}

var schemeMap = map[string]Scheme{
	"Water":  {Name: "Jal Jeevan Mission", EligibleHouseholds: 4800, Beneficiaries: 1900},
	"Health": {Name: "Ayushman Bharat", EligibleHouseholds: 3000, Beneficiaries: 2100},
}

// LookupScheme returns the reference scheme for a problem category.
func LookupScheme(problemType string) (Scheme, bool) {
	s, ok := schemeMap[problemType]
	return s, ok
}

// SchemeGap returns the reference coverage gap percentage for a problem category,
// rounded to one decimal. Unmapped categories return ok=false.
func SchemeGap(problemType string) (float64, bool) {
	s, ok := schemeMap[problemType]
	if !ok || s.EligibleHouseholds == 0 {
		return 0, false
	}
	gap := 100 - (float64(s.Beneficiaries)/float64(s.EligibleHouseholds))*100
	return Round(gap, 1), true
}
