package scoring

import (
	"fmt"
	"math"
)

// Normalisation baselines for the unbounded inputs.
const (
	// PopulationBaseline is the head count that maps to a full 0–10 population score.
	PopulationBaseline = 200000.0
	// DelayBaselineMonths is the delay that maps to a full 0–10 delay score.
	DelayBaselineMonths = 6.0
	// factorScale lifts 0–1 ratios onto the 0–10 range the other inputs use.
	factorScale = 10.0
)

// WeightSet defines the relative importance of each priority factor.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	Severity   float64
	Population float64
	Economic   float64
	HealthEnv  float64
	Delay      float64
	SchemeGap  float64
}

// DefaultWeights returns the fixed weight distribution used by Score.
func DefaultWeights() WeightSet {
	return WeightSet{
		Severity:   0.25,
		Population: 0.20,
		Economic:   0.20,
		HealthEnv:  0.15,
		Delay:      0.10,
		SchemeGap:  0.10,
	}
}

// weights is process-wide and never mutated.
var weights = DefaultWeights()

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Severity + w.Population + w.Economic + w.HealthEnv + w.Delay + w.SchemeGap
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

func (w WeightSet) asList() []float64 {
	return []float64{w.Severity, w.Population, w.Economic, w.HealthEnv, w.Delay, w.SchemeGap}
}
