package calculator

import (
	"math"

	"DailyMarketBot/internal/model"
)

// RangeEpsilon guards every division in the range features.
const RangeEpsilon = 1e-9

// TradingDaysPerYear is the default 52-week window length.
const TradingDaysPerYear = 252

// Calculate52WeekRange scans the most recent window closes and returns the high and low.
func Calculate52WeekRange(closes []float64, window int) (high, low float64) {
	n := len(closes)
	start := n - window
	if window <= 0 || start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if closes[i] > high {
			high = closes[i]
		}
		if closes[i] < low {
			low = closes[i]
		}
	}
	return high, low
}

// Calculate52WeekPosition returns where current sits within [low, high] (0.0~1.0).
// A flat range reports the midpoint.
func Calculate52WeekPosition(current, high, low float64) float64 {
	if high-low < RangeEpsilon {
		return 0.5
	}
	pos := (current - low) / math.Max(high-low, RangeEpsilon)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}

// ComputeRangeFeatures derives the 52-week range features of the latest close.
func ComputeRangeFeatures(closes []float64, window int) model.RangeFeatures {
	if len(closes) == 0 {
		return model.RangeFeatures{PosPct52w: 0.5}
	}
	last := closes[len(closes)-1]
	high, low := Calculate52WeekRange(closes, window)
	return model.RangeFeatures{
		Last:       last,
		Low52w:     low,
		High52w:    high,
		PosPct52w:  Calculate52WeekPosition(last, high, low),
		DistToLow:  (last - low) / math.Max(low, RangeEpsilon),
		DistToHigh: (high - last) / math.Max(high, RangeEpsilon),
	}
}
