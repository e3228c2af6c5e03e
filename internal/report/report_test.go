package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DailyMarketBot/internal/model"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$1,234.56", USD(1234.56))
	assert.Equal(t, "$12.00", USD(12))
	assert.Equal(t, "+1.23%", Pct(0.0123))
	assert.Equal(t, "-0.50%", Pct(-0.005))
	assert.Equal(t, "+0.00%", Pct(0))
	assert.Equal(t, "1.23×", Mult(1.234))
	assert.Equal(t, "45.6%", Position(0.456))
	assert.Equal(t, "100.0%", Position(1))
}

func TestNewRowDefaults(t *testing.T) {
	row := NewRow(model.DailyPayload{Ticker: "AAPL", Last: 190.5})

	assert.Equal(t, "hold", row.Rating)
	assert.Equal(t, "neutral", row.Sentiment)
	assert.Equal(t, "$190.50", row.Price)
}

func TestHTML(t *testing.T) {
	batch := &model.DailyBatch{
		AsOf:    "2024-05-10",
		Tickers: []string{"AAPL", "MSFT"},
		Data: []model.DailyPayload{
			{
				Ticker:    "AAPL",
				Last:      1234.56,
				Metrics:   model.Metrics{Ret1d: 0.0123, Ret5d: -0.02, VolVs30d: 1.5},
				PosPct52w: 0.456,
				Rating:    model.RatingBuy,
				Sentiment: model.SentimentBullish,
				Note:      "Up <big> & strong",
			},
			{Ticker: "MSFT", Last: 400, Rating: model.RatingSell, Sentiment: model.SentimentBearish},
		},
	}

	out, err := HTML(batch)
	require.NoError(t, err)
	page := string(out)

	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "As of 2024-05-10 · 2 tickers")
	assert.Contains(t, page, "$1,234.56")
	assert.Contains(t, page, "+1.23%")
	assert.Contains(t, page, "-2.00%")
	assert.Contains(t, page, "1.50×")
	assert.Contains(t, page, "45.6%")
	assert.Contains(t, page, `<span class="pill buy">buy</span>`)
	assert.Contains(t, page, `<td class="bearish">bearish</td>`)
	assert.Contains(t, page, "Up &lt;big&gt; &amp; strong")
	assert.NotContains(t, page, "<big>")
}
