package model

import "time"

// PriceBar is one daily record of a ticker's history.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"` // adjusted close
	Volume float64   `json:"volume"`
}

// PriceSeries holds a ticker's daily bars, ascending by date with no duplicate dates.
type PriceSeries struct {
	Ticker    string
	Bars      []PriceBar
	Source    string
	FetchedAt time.Time
}

// Closes returns the adjusted closes as a 1-D slice.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the traded volumes as a 1-D slice.
func (s *PriceSeries) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}
