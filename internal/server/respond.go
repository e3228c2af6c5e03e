package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"DailyMarketBot/internal/calculator"
	"DailyMarketBot/internal/collector"
)

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error body.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{"error": message})
}

// statusFor maps pipeline errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, collector.ErrUnknownTicker):
		return http.StatusNotFound
	case errors.Is(err, calculator.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
