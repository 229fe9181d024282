package analysis

import (
	"strconv"
	"strings"
)

// ParseNumericCell parses a spreadsheet cell as a float, tolerating thousands
// separators and a trailing percent sign ("1,250" and "62%" both parse).
func ParseNumericCell(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// mean returns the arithmetic mean of values; ok is false for an empty slice.
func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// percentileRank computes the fractional-rank percentile of value within
// values, in [0, 100]. Ties are resolved by averaging rank positions, so the
// untied maximum ranks 100 and the untied minimum ranks 0. The value itself
// must be a member of values. Returns false when fewer than two values exist.
func percentileRank(value float64, values []float64) (float64, bool) {
	n := len(values)
	if n < 2 {
		return 0, false
	}
	below, equal := 0, 0
	for _, v := range values {
		switch {
		case v < value:
			below++
		case v == value:
			equal++
		}
	}
	// Fractional rank: average of the 1-based positions the tied values
	// would occupy in sorted order.
	rank := float64(below) + float64(equal+1)/2
	return (rank - 1) / float64(n-1) * 100, true
}
