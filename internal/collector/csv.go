package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
)

var csvDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

// CSVFetcher implements Fetcher over local files named <DIR>/<TICKER>.csv.
// Files exported by yfinance are accepted, including the multi-row
// "Price / Ticker / Date" header variant.
type CSVFetcher struct {
	Dir string
}

// NewCSVFetcher creates a fetcher reading from dir.
func NewCSVFetcher(dir string) *CSVFetcher {
	return &CSVFetcher{Dir: dir}
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchDailyBars(_ context.Context, ticker string, days int) ([]model.PriceBar, error) {
	path := filepath.Join(f.Dir, strings.ToUpper(ticker)+".csv")
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("price file %s: %w", path, ErrUnknownTicker)
		}
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer file.Close()

	bars, err := parseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	logger.Debug("csv prices loaded", zap.String("path", path), zap.Int("bars", len(bars)))
	return bars, nil
}

func parseCSV(r io.Reader) ([]model.PriceBar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	dateCol, closeCol, volCol := -1, -1, -1
	plainClose := -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date", "price":
			dateCol = i
		case "adj close", "adj_close", "adjclose":
			closeCol = i
		case "close":
			plainClose = i
		case "volume":
			volCol = i
		}
	}
	if closeCol < 0 {
		closeCol = plainClose
	}
	if dateCol < 0 {
		dateCol = 0
	}
	if closeCol < 0 || volCol < 0 {
		return nil, errors.New("missing close or volume column")
	}

	var bars []model.PriceBar
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) <= closeCol || len(rec) <= volCol || len(rec) <= dateCol {
			continue
		}
		date, ok := parseDate(rec[dateCol])
		if !ok {
			continue // secondary header rows ("Ticker,AAPL,..." / "Date,,,")
		}
		closePrice, err := strconv.ParseFloat(strings.TrimSpace(rec[closeCol]), 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(strings.TrimSpace(rec[volCol]), 64)
		if err != nil {
			volume = 0
		}
		bars = append(bars, model.PriceBar{Date: date, Close: closePrice, Volume: volume})
	}
	return bars, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
