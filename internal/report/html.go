// Package report renders daily payloads for humans.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"DailyMarketBot/internal/model"
)

const reportTemplate = `<!doctype html><html><head><meta charset='utf-8'>
<style>
  body { font-family: system-ui, Arial, sans-serif; margin: 24px; color:#111;}
  h1 { margin: 0 0 8px 0; }
  .meta { color:#666; margin-bottom:16px; }
  table { width: 100%; border-collapse: collapse; margin-top:12px; }
  th, td { border: 1px solid #ddd; padding: 8px; vertical-align: top; }
  th { background:#f7f7f7; text-align:left; }
  .pill { padding:2px 8px; border-radius:12px; font-size:12px; display:inline-block;}
  .buy { background:#e8f7ed; color:#137333; }
  .hold { background:#f5f5f5; color:#555; }
  .sell { background:#fdeaea; color:#a11; }
  .bullish { color:#137333; }
  .bearish { color:#a11; }
  .neutral { color:#555; }
  .note { color:#333; }
  .ticker { font-weight:600; letter-spacing:.2px; }
</style>
</head><body>
<h1>Daily Market Report</h1><div class='meta'>As of {{.AsOf}} · {{len .Rows}} tickers</div>
<table>
  <thead>
    <tr>
      <th>Ticker</th>
      <th>Price</th>
      <th>1d Return</th>
      <th>5d Return</th>
      <th>Volume vs 30d</th>
      <th>52w Position</th>
      <th>Rating</th>
      <th>Sentiment</th>
      <th>Note</th>
    </tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>
      <td class="ticker">{{.Ticker}}</td>
      <td>{{.Price}}</td>
      <td>{{.Ret1d}}</td>
      <td>{{.Ret5d}}</td>
      <td>{{.Volume}}</td>
      <td>{{.Position}}</td>
      <td><span class="pill {{.Rating}}">{{.Rating}}</span></td>
      <td class="{{.Sentiment}}">{{.Sentiment}}</td>
      <td class="note">{{.Note}}</td>
    </tr>
{{- end}}
  </tbody>
</table>
</body></html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Row is one formatted table line.
type Row struct {
	Ticker    string
	Price     string
	Ret1d     string
	Ret5d     string
	Volume    string
	Position  string
	Rating    string
	Sentiment string
	Note      string
}

type page struct {
	AsOf string
	Rows []Row
}

// NewRow formats a payload for the table.
func NewRow(p model.DailyPayload) Row {
	rating := strings.ToLower(string(p.Rating))
	if rating == "" {
		rating = string(model.RatingHold)
	}
	sentiment := strings.ToLower(string(p.Sentiment))
	if sentiment == "" {
		sentiment = string(model.SentimentNeutral)
	}
	return Row{
		Ticker:    p.Ticker,
		Price:     USD(p.Last),
		Ret1d:     Pct(p.Metrics.Ret1d),
		Ret5d:     Pct(p.Metrics.Ret5d),
		Volume:    Mult(p.Metrics.VolVs30d),
		Position:  Position(p.PosPct52w),
		Rating:    rating,
		Sentiment: sentiment,
		Note:      p.Note,
	}
}

// WriteHTML renders the batch as a standalone HTML page.
func WriteHTML(w io.Writer, batch *model.DailyBatch) error {
	rows := make([]Row, 0, len(batch.Data))
	for _, p := range batch.Data {
		rows = append(rows, NewRow(p))
	}
	if err := tmpl.Execute(w, page{AsOf: batch.AsOf, Rows: rows}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// HTML is WriteHTML into a byte slice.
func HTML(batch *model.DailyBatch) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, batch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
