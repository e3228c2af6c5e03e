package model

// Headline is a single news item for a date.
type Headline struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Published string `json:"published,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// MaxNoteLength caps the free-text note, in characters.
const MaxNoteLength = 350

// Note is the composed per-ticker summary.
type Note struct {
	Ticker    string    `json:"ticker"`
	AsOf      string    `json:"as_of"`
	Text      string    `json:"ticker_note"`
	Sentiment Sentiment `json:"sentiment"`
	Rating    Rating    `json:"rating"`
	Rationale []string  `json:"rationale"`
	RiskFlags []string  `json:"risk_flags"`
}

// RatingDetail exposes the provenance of the rating in API payloads.
type RatingDetail struct {
	Momentum   float64      `json:"momentum"`
	TrendUp    bool         `json:"trend_up"`
	DistToLow  float64      `json:"dist_to_low"`
	DistToHigh float64      `json:"dist_to_high"`
	Params     RatingParams `json:"params"`
}

// DailyPayload is the per-ticker response of the daily endpoints.
type DailyPayload struct {
	Ticker       string       `json:"ticker"`
	AsOf         string       `json:"as_of"`
	Metrics      Metrics      `json:"metrics"`
	Rating       Rating       `json:"rating"`
	PosPct52w    float64      `json:"pos_pct_52w"`
	Low52w       float64      `json:"low_52w"`
	High52w      float64      `json:"high_52w"`
	Last         float64      `json:"last"`
	Note         string       `json:"note"`
	Sentiment    Sentiment    `json:"sentiment"`
	Rationale    []string     `json:"rationale"`
	RiskFlags    []string     `json:"risk_flags"`
	RatingDetail RatingDetail `json:"rating_detail"`
}

// DailyBatch is the response of the batch endpoint.
type DailyBatch struct {
	AsOf    string         `json:"as_of"`
	Tickers []string       `json:"tickers"`
	Data    []DailyPayload `json:"data"`
}
