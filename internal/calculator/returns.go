package calculator

import "errors"

// ErrInsufficientHistory is returned when a series is too short for a return.
var ErrInsufficientHistory = errors.New("insufficient price history")

// PercentChange compares the latest value to the one periods bars earlier.
// When fewer bars exist the oldest available bar is the reference.
// A zero reference yields 0.
func PercentChange(values []float64, periods int) (float64, error) {
	n := len(values)
	if n < 2 {
		return 0, ErrInsufficientHistory
	}
	ref := n - 1 - periods
	if ref < 0 {
		ref = 0
	}
	if values[ref] == 0 {
		return 0, nil
	}
	return values[n-1]/values[ref] - 1, nil
}

// VolumeRatio divides the latest volume by the mean of the trailing window
// (all values when fewer). A zero mean is reported as 1.0.
func VolumeRatio(volumes []float64, window int) float64 {
	n := len(volumes)
	if n == 0 {
		return 1.0
	}
	start := n - window
	if window <= 0 || start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i < n; i++ {
		sum += volumes[i]
	}
	mean := sum / float64(n-start)
	if mean == 0 {
		return 1.0
	}
	return volumes[n-1] / mean
}

// Momentum is the change of the latest close over the close days bars back.
// It is 0.0 when fewer than days+1 closes exist.
func Momentum(closes []float64, days int) float64 {
	if days <= 0 || len(closes) < days+1 {
		return 0.0
	}
	prev := closes[len(closes)-1-days]
	if prev == 0 {
		return 0.0
	}
	return closes[len(closes)-1]/prev - 1
}
