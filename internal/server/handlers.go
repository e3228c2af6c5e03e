package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/report"
)

const dateLayout = "2006-01-02"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// asOf returns the as_of query value, defaulting to today.
func (s *Server) asOf(r *http.Request) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get("as_of"))
	if v == "" {
		return s.now().Format(dateLayout), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return "", fmt.Errorf("invalid as_of %q: expected YYYY-MM-DD", v)
	}
	return t.Format(dateLayout), nil
}

func (s *Server) handleDailyNote(w http.ResponseWriter, r *http.Request) {
	asOf, err := s.asOf(r)
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	ticker := chi.URLParam(r, "ticker")

	p, err := s.notes.Payload(r.Context(), ticker, asOf)
	if err != nil {
		s.fail(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleDailyBatch(w http.ResponseWriter, r *http.Request) {
	asOf, err := s.asOf(r)
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	batch, err := s.notes.Batch(r.Context(), r.URL.Query()["tickers"], asOf)
	if err != nil {
		s.fail(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, batch)
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	asOf, err := s.asOf(r)
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	batch, err := s.notes.Batch(r.Context(), r.URL.Query()["tickers"], asOf)
	if err != nil {
		s.fail(w, err)
		return
	}

	page, err := report.HTML(batch)
	if err != nil {
		logger.Error("render report failed", zap.Error(err))
		_ = WriteError(w, http.StatusInternalServerError, "render report")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		logger.Error("daily pipeline failed", zap.Int("status", status), zap.Error(err))
	}
	_ = WriteError(w, status, err.Error())
}
