package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so readers are not blocked while a run is written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id     TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			as_of      TEXT NOT NULL,
			tickers    TEXT,
			status     TEXT,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS daily_notes (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			as_of        TEXT NOT NULL,
			ticker       TEXT NOT NULL,
			last         REAL,
			ret_1d       REAL,
			ret_5d       REAL,
			vol_vs_30d   REAL,
			pos_pct_52w  REAL,
			low_52w      REAL,
			high_52w     REAL,
			rating       TEXT,
			sentiment    TEXT,
			note         TEXT,
			rationale    TEXT,
			risk_flags   TEXT,
			rating_detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_ticker_ts ON daily_notes(ticker, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_run ON daily_notes(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO runs
		(run_id, timestamp, as_of, tickers, status, error)
		VALUES (?,?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.AsOf,
		strings.Join(run.Tickers, ","), run.Status, run.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordDailyNote(runID string, p *model.DailyPayload) error {
	rationale, err := json.Marshal(nonNil(p.Rationale))
	if err != nil {
		return fmt.Errorf("marshal rationale: %w", err)
	}
	flags, err := json.Marshal(nonNil(p.RiskFlags))
	if err != nil {
		return fmt.Errorf("marshal risk flags: %w", err)
	}
	detail, err := json.Marshal(p.RatingDetail)
	if err != nil {
		return fmt.Errorf("marshal rating detail: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO daily_notes
		(run_id, timestamp, as_of, ticker, last, ret_1d, ret_5d, vol_vs_30d,
		 pos_pct_52w, low_52w, high_52w, rating, sentiment, note,
		 rationale, risk_flags, rating_detail)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, time.Now().Unix(), p.AsOf, p.Ticker, p.Last,
		p.Metrics.Ret1d, p.Metrics.Ret5d, p.Metrics.VolVs30d,
		p.PosPct52w, p.Low52w, p.High52w,
		string(p.Rating), string(p.Sentiment), p.Note,
		string(rationale), string(flags), string(detail),
	)
	return err
}

// RecentNotes returns the newest recorded notes for ticker, newest first.
func (r *SQLiteRecorder) RecentNotes(ticker string, limit int) ([]StoredNote, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(`SELECT run_id, timestamp, as_of, ticker, last,
		ret_1d, ret_5d, vol_vs_30d, pos_pct_52w, low_52w, high_52w,
		rating, sentiment, note, rationale, risk_flags, rating_detail
		FROM daily_notes WHERE ticker = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		strings.ToUpper(ticker), limit)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var out []StoredNote
	for rows.Next() {
		var (
			n                        StoredNote
			ts                       int64
			rating, sentiment        string
			rationale, flags, detail string
		)
		p := &n.Payload
		if err := rows.Scan(&n.RunID, &ts, &p.AsOf, &p.Ticker, &p.Last,
			&p.Metrics.Ret1d, &p.Metrics.Ret5d, &p.Metrics.VolVs30d,
			&p.PosPct52w, &p.Low52w, &p.High52w,
			&rating, &sentiment, &p.Note, &rationale, &flags, &detail); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.RecordedAt = time.Unix(ts, 0)
		p.Rating = model.Rating(rating)
		p.Sentiment = model.Sentiment(sentiment)
		if err := json.Unmarshal([]byte(rationale), &p.Rationale); err != nil {
			return nil, fmt.Errorf("decode rationale: %w", err)
		}
		if err := json.Unmarshal([]byte(flags), &p.RiskFlags); err != nil {
			return nil, fmt.Errorf("decode risk flags: %w", err)
		}
		if err := json.Unmarshal([]byte(detail), &p.RatingDetail); err != nil {
			return nil, fmt.Errorf("decode rating detail: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
