package scoring

import (
	"errors"
	"fmt"

	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

// Factor names as they appear in the published breakdown.
const (
	FactorSeverity   = "severity"
	FactorPopulation = "population"
	FactorEconomic   = "economic"
	FactorHealthEnv  = "health_env"
	FactorDelay      = "delay"
	FactorSchemeGap  = "scheme_gap"
)

var (
	// ErrMissingField is returned when a required numeric field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when a required field is not a number.
	ErrInvalidField = errors.New("invalid field value")
)

// FieldError names the field that stopped a record from being scored.
type FieldError struct {
	Field string
	Err   error
	Value string
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%v %s: %q", e.Err, e.Field, e.Value)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Breakdown holds each factor's weighted contribution, already rounded to
// two decimals. Total is the rounded sum of these rounded parts.
type Breakdown struct {
	Severity   float64 `json:"severity"`
	Population float64 `json:"population"`
	Economic   float64 `json:"economic"`
	HealthEnv  float64 `json:"health_env"`
	Delay      float64 `json:"delay"`
	SchemeGap  float64 `json:"scheme_gap"`
}

// Total returns the rounded sum of the rounded parts.
func (b Breakdown) Total() float64 {
	return Round2(b.Severity + b.Population + b.Economic + b.HealthEnv + b.Delay + b.SchemeGap)
}

// Factors returns the breakdown as name/value pairs in publication order.
func (b Breakdown) Factors() []FactorResult {
	return []FactorResult{
		{Name: FactorSeverity, Weight: weights.Severity, Weighted: b.Severity},
		{Name: FactorPopulation, Weight: weights.Population, Weighted: b.Population},
		{Name: FactorEconomic, Weight: weights.Economic, Weighted: b.Economic},
		{Name: FactorHealthEnv, Weight: weights.HealthEnv, Weighted: b.HealthEnv},
		{Name: FactorDelay, Weight: weights.Delay, Weighted: b.Delay},
		{Name: FactorSchemeGap, Weight: weights.SchemeGap, Weighted: b.SchemeGap},
	}
}

// FactorResult captures one factor's contribution to the total score.
type FactorResult struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// Score computes the weighted priority score for one record.
//
//	severity   = severity_score * 0.25
//	population = population_affected/200000 * 0.20 * 10
//	economic   = economic_impact_score * 0.20
//	health_env = health_environment_risk * 0.15
//	delay      = delay_cost_months/6 * 0.10 * 10
//	scheme_gap = scheme_coverage_gap_pct/100 * 0.10 * 10
//
// Each part is rounded to two decimals before summation. All six fields are
// required; a missing or non-numeric one yields a *FieldError.
func Score(rec store.Record) (float64, Breakdown, error) {
	severity, err := required(rec, store.ColSeverity)
	if err != nil {
		return 0, Breakdown{}, err
	}
	population, err := required(rec, store.ColPopulation)
	if err != nil {
		return 0, Breakdown{}, err
	}
	economic, err := required(rec, store.ColEconomicImpact)
	if err != nil {
		return 0, Breakdown{}, err
	}
	healthEnv, err := required(rec, store.ColHealthEnvRisk)
	if err != nil {
		return 0, Breakdown{}, err
	}
	delay, err := required(rec, store.ColDelayMonths)
	if err != nil {
		return 0, Breakdown{}, err
	}
	gap, err := required(rec, store.ColSchemeGapPct)
	if err != nil {
		return 0, Breakdown{}, err
	}

	b := Breakdown{
		Severity:   Round2(severity * weights.Severity),
		Population: Round2((population / PopulationBaseline) * weights.Population * factorScale),
		Economic:   Round2(economic * weights.Economic),
		HealthEnv:  Round2(healthEnv * weights.HealthEnv),
		Delay:      Round2((delay / DelayBaselineMonths) * weights.Delay * factorScale),
		SchemeGap:  Round2((gap / 100) * weights.SchemeGap * factorScale),
	}
	return b.Total(), b, nil
}

func required(rec store.Record, field string) (float64, error) {
	v, ok, err := rec.Float(field)
	if err != nil {
		raw, _ := rec.Get(field)
		return 0, &FieldError{Field: field, Err: ErrInvalidField, Value: raw}
	}
	if !ok {
		return 0, &FieldError{Field: field, Err: ErrMissingField}
	}
	return v, nil
}
