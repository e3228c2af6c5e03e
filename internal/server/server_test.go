package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DailyMarketBot/internal/collector"
	"DailyMarketBot/internal/daily"
	"DailyMarketBot/internal/llm"
	"DailyMarketBot/internal/model"
	"DailyMarketBot/internal/news"
)

func newTestServer(t *testing.T, fetcher collector.Fetcher) *httptest.Server {
	t.Helper()
	svc := daily.NewService(
		collector.NewCollector(fetcher, collector.DefaultHistoryDays),
		news.NewFileSource(t.TempDir()),
		llm.NewComposer(llm.NewFallback(llm.FlagFallbackNoKey), time.Second),
		[]string{"AAPL", "MSFT"},
	)
	s := New(svc)
	s.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func mockFetcher() *collector.MockFetcher {
	return &collector.MockFetcher{Bars: map[string][]model.PriceBar{
		"AAPL": collector.GenerateMockBars(150, 0.5, 300),
		"MSFT": collector.GenerateMockBars(400, -0.5, 300),
		"ONE":  collector.GenerateMockBars(10, 0, 1),
	}}
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	var body map[string]string
	resp := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestDailyNote(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	var p model.DailyPayload
	resp := getJSON(t, srv.URL+"/daily-note/aapl?as_of=2024-05-09", &p)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	assert.Equal(t, "AAPL", p.Ticker)
	assert.Equal(t, "2024-05-09", p.AsOf)
	assert.InDelta(t, 299.5, p.Last, 1e-9)
	assert.InDelta(t, 1.0, p.PosPct52w, 1e-9)
	assert.Equal(t, model.RatingHold, p.Rating)
	assert.Equal(t, model.SentimentNeutral, p.Sentiment)
	assert.Equal(t, []string{llm.FlagFallbackNoKey}, p.RiskFlags)
	assert.Equal(t, model.DefaultRatingParams(), p.RatingDetail.Params)
	assert.True(t, p.RatingDetail.TrendUp)
}

func TestDailyNoteDefaultsAsOfToToday(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	var p model.DailyPayload
	getJSON(t, srv.URL+"/daily-note/MSFT", &p)
	assert.Equal(t, "2024-05-10", p.AsOf)
}

func TestDailyNoteErrors(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"invalid as_of", "/daily-note/AAPL?as_of=10-05-2024", http.StatusBadRequest},
		{"impossible date", "/daily-note/AAPL?as_of=2024-02-30", http.StatusBadRequest},
		{"unknown ticker", "/daily-note/NOPE", http.StatusNotFound},
		{"single bar", "/daily-note/ONE", http.StatusUnprocessableEntity},
		{"unknown route", "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			resp := getJSON(t, srv.URL+tt.path, &body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDailyNoteUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{Err: errors.New("connection reset")})

	var body map[string]string
	resp := getJSON(t, srv.URL+"/daily-note/AAPL", &body)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body["error"], "connection reset")
}

func TestDailyBatch(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	var b model.DailyBatch
	resp := getJSON(t, srv.URL+"/daily-batch?tickers=MSFT&tickers=aapl&as_of=2024-05-09", &b)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "2024-05-09", b.AsOf)
	assert.Equal(t, []string{"MSFT", "aapl"}, b.Tickers)
	require.Len(t, b.Data, 2)
	assert.Equal(t, "MSFT", b.Data[0].Ticker)
	assert.Equal(t, "AAPL", b.Data[1].Ticker)
}

func TestDailyBatchDefaultsAndCommaList(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	var b model.DailyBatch
	getJSON(t, srv.URL+"/daily-batch", &b)
	assert.Equal(t, []string{"AAPL", "MSFT"}, b.Tickers)

	getJSON(t, srv.URL+"/daily-batch?tickers=AAPL,MSFT,AAPL", &b)
	assert.Len(t, b.Data, 3)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/daily-batch?tickers=AAPL&tickers=NOPE", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDailyReport(t *testing.T) {
	srv := newTestServer(t, mockFetcher())

	resp, err := http.Get(srv.URL + "/daily-report?tickers=AAPL&as_of=2024-05-09")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "As of 2024-05-09 · 1 tickers")
	assert.Contains(t, page, "$299.50")
	assert.Contains(t, page, `<span class="pill hold">hold</span>`)
}

type failingNotes struct{}

func (failingNotes) Payload(context.Context, string, string) (*model.DailyPayload, error) {
	return nil, errors.New("boom")
}

func (failingNotes) Batch(context.Context, []string, string) (*model.DailyBatch, error) {
	return nil, errors.New("boom")
}

func TestStatusMapping(t *testing.T) {
	h := New(failingNotes{}).Router()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/daily-report", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
