package calculator

import (
	"errors"

	"github.com/cinar/indicator"
)

// CalculateSMA returns the rolling simple moving average of prices over the
// given period. Entries before the first full window average what is available,
// so callers must only read indexes >= period-1.
func CalculateSMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for SMA calculation")
	}
	return indicator.Sma(period, prices), nil
}

// TrendUp reports whether the smaWindow SMA of the latest close is strictly
// above the SMA slopeLookback bars earlier. Short histories report false.
func TrendUp(closes []float64, smaWindow, slopeLookback int) bool {
	if smaWindow <= 0 || slopeLookback < 0 {
		return false
	}
	if len(closes) < smaWindow+slopeLookback {
		return false
	}
	sma, err := CalculateSMA(closes, smaWindow)
	if err != nil {
		return false
	}
	last := sma[len(sma)-1]
	prev := sma[len(sma)-1-slopeLookback]
	return last > prev
}
