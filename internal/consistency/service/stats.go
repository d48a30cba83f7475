package service

import (
	"math"
	"sort"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// variancePercent is the signed deviation of current from the historical
// average, in percent rounded to one decimal. Zero when there is no usable
// average.
func variancePercent(current, historicalAvg float64) float64 {
	if historicalAvg <= 0 {
		return 0
	}
	return math.Round((current-historicalAvg)/historicalAvg*1000) / 10
}
