// Package server exposes daily notes over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"DailyMarketBot/internal/model"
)

// Notes computes daily payloads. daily.Service implements it.
type Notes interface {
	Payload(ctx context.Context, ticker, asOf string) (*model.DailyPayload, error)
	Batch(ctx context.Context, tickers []string, asOf string) (*model.DailyBatch, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	notes Notes
	now   func() time.Time
}

// New creates a server backed by notes.
func New(notes Notes) *Server {
	return &Server{notes: notes, now: time.Now}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/daily-note/{ticker}", s.handleDailyNote)
	r.Get("/daily-batch", s.handleDailyBatch)
	r.Get("/daily-report", s.handleDailyReport)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		_ = WriteError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		_ = WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
