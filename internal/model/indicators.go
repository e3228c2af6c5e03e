package model

// Metrics holds the return and volume figures of the latest bar.
type Metrics struct {
	Ret1d    float64 `json:"ret_1d"`
	Ret5d    float64 `json:"ret_5d"`
	VolVs30d float64 `json:"vol_vs_30d"`
}

// RangeFeatures locates the latest close inside the trailing 52-week window.
type RangeFeatures struct {
	Last       float64 `json:"last"`
	Low52w     float64 `json:"low_52w"`
	High52w    float64 `json:"high_52w"`
	PosPct52w  float64 `json:"pos_pct_52w"` // 0.0 at the low ~ 1.0 at the high
	DistToLow  float64 `json:"dist_to_low"`
	DistToHigh float64 `json:"dist_to_high"`
}
