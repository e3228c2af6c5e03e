package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		periods int
		want    float64
	}{
		{"one day up", []float64{100, 110}, 1, 0.10},
		{"one day down", []float64{100, 90}, 1, -0.10},
		{"five day", []float64{100, 1, 1, 1, 1, 120}, 5, 0.20},
		{"five day uses t-5 only", []float64{50, 100, 1, 1, 1, 1, 120}, 5, 0.20},
		{"short history uses oldest bar", []float64{100, 105, 110}, 5, 0.10},
		{"zero reference", []float64{0, 10}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentChange(tt.values, tt.periods)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPercentChange_InsufficientHistory(t *testing.T) {
	_, err := PercentChange([]float64{100}, 1)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	_, err = PercentChange(nil, 5)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestVolumeRatio(t *testing.T) {
	tests := []struct {
		name    string
		volumes []float64
		want    float64
	}{
		{"zero mean is neutral", []float64{0, 0, 0}, 1.0},
		{"empty is neutral", nil, 1.0},
		{"double the mean", append(flat(29, 100), 3100), 3100.0 / 200.0},
		{"fewer than window", []float64{100, 300}, 1.5},
		{"only trailing 30 count", append([]float64{1e9}, flat(30, 50)...), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VolumeRatio(tt.volumes, 30)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestMomentum(t *testing.T) {
	assert.Equal(t, 0.0, Momentum([]float64{1, 2, 3, 4, 5}, 5), "needs days+1 closes")
	assert.InDelta(t, 0.5, Momentum([]float64{10, 1, 1, 1, 1, 15}, 5), 1e-12)
	assert.InDelta(t, -0.5, Momentum([]float64{20, 1, 1, 1, 1, 10}, 5), 1e-12)
	assert.Equal(t, 0.0, Momentum([]float64{1, 2}, 0))
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Len(t, sma, 5)
	assert.InDelta(t, 2.0, sma[2], 1e-12)
	assert.InDelta(t, 3.0, sma[3], 1e-12)
	assert.InDelta(t, 4.0, sma[4], 1e-12)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestTrendUp(t *testing.T) {
	assert.True(t, TrendUp(ramp(30, 10, 1), 20, 5), "rising series")
	assert.False(t, TrendUp(ramp(30, 50, -1), 20, 5), "falling series")
	assert.False(t, TrendUp(flat(30, 10), 20, 5), "flat series is not strictly up")
	assert.False(t, TrendUp(ramp(24, 10, 1), 20, 5), "needs smaWindow+slopeLookback closes")
	assert.True(t, TrendUp(ramp(25, 10, 1), 20, 5), "exactly enough history")
}

func TestCalculate52WeekPosition(t *testing.T) {
	assert.Equal(t, 0.5, Calculate52WeekPosition(10, 10, 10))
	assert.Equal(t, 0.0, Calculate52WeekPosition(10, 20, 10))
	assert.Equal(t, 1.0, Calculate52WeekPosition(20, 20, 10))
	assert.InDelta(t, 0.25, Calculate52WeekPosition(12.5, 20, 10), 1e-12)
	assert.Equal(t, 1.0, Calculate52WeekPosition(30, 20, 10), "clamped")
}

func TestComputeRangeFeatures(t *testing.T) {
	closes := append(flat(10, 20), 10, 15)
	f := ComputeRangeFeatures(closes, TradingDaysPerYear)
	assert.Equal(t, 15.0, f.Last)
	assert.Equal(t, 10.0, f.Low52w)
	assert.Equal(t, 20.0, f.High52w)
	assert.InDelta(t, 0.5, f.PosPct52w, 1e-12)
	assert.InDelta(t, 0.5, f.DistToLow, 1e-12)
	assert.InDelta(t, 0.25, f.DistToHigh, 1e-12)
}

func TestComputeRangeFeatures_WindowDropsOldBars(t *testing.T) {
	closes := append([]float64{1000}, flat(252, 10)...)
	closes[len(closes)-1] = 12
	f := ComputeRangeFeatures(closes, TradingDaysPerYear)
	assert.Equal(t, 12.0, f.High52w, "bar outside the window is ignored")
	assert.Equal(t, 1.0, f.PosPct52w)
}

func TestComputeRangeFeatures_Flat(t *testing.T) {
	f := ComputeRangeFeatures(flat(252, 10), TradingDaysPerYear)
	assert.Equal(t, 10.0, f.Low52w)
	assert.Equal(t, 10.0, f.High52w)
	assert.Equal(t, 0.5, f.PosPct52w)
	assert.False(t, math.IsNaN(f.DistToLow) || math.IsInf(f.DistToLow, 0))
	assert.Equal(t, 0.0, f.DistToHigh)
}

func TestComputeRangeFeatures_PositionAlwaysInUnitInterval(t *testing.T) {
	series := [][]float64{
		{5},
		{5, 7},
		{9, 3, 4, 8, 6},
		ramp(300, 100, -0.25),
		{0, 0, 0},
	}
	for _, s := range series {
		f := ComputeRangeFeatures(s, TradingDaysPerYear)
		assert.GreaterOrEqual(t, f.PosPct52w, 0.0)
		assert.LessOrEqual(t, f.PosPct52w, 1.0)
	}
}
