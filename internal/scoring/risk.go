package scoring

// RiskLevel is the categorical band derived from a numeric score.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Classify maps a record score to its band: >=8 HIGH, >=6 MEDIUM, else LOW.
func Classify(score float64) RiskLevel {
	switch {
	case score >= 8:
		return RiskHigh
	case score >= 6:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ClassifyIndex maps a district composite index to its band: >=12 HIGH, >=8 MEDIUM, else LOW.
func ClassifyIndex(index float64) RiskLevel {
	switch {
	case index >= 12:
		return RiskHigh
	case index >= 8:
		return RiskMedium
	default:
		return RiskLow
	}
}
