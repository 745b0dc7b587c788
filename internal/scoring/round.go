package scoring

import (
	"math"
	"strconv"
)

// Round rounds v to the given number of decimal places from the exact binary
// value of v. Exact ties go to the even digit.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return Round(v, 2)
}
