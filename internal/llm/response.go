package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"DailyMarketBot/internal/model"
)

// ErrEmptyResponse is returned when a generator answers without any text.
var ErrEmptyResponse = errors.New("empty generator response")

var validate = validator.New(validator.WithRequiredStructEnabled())

// externalNote is the JSON object a generator must return. Missing keys are
// tolerated; wrong types and oversized lists are not. Long note text is
// truncated later by finalize.
type externalNote struct {
	TickerNote string   `json:"ticker_note"`
	Sentiment  string   `json:"sentiment" validate:"max=32"`
	Rationale  []string `json:"rationale" validate:"max=20,dive,max=500"`
	RiskFlags  []string `json:"risk_flags" validate:"max=20,dive,max=200"`
	Rating     string   `json:"rating" validate:"max=32"`
}

// parseExternalNote decodes a generator reply into a note. Out-of-set
// rating and sentiment values are left for finalize to clamp.
func parseExternalNote(text string) (model.Note, error) {
	body := stripCodeFence(text)
	if body == "" {
		return model.Note{}, ErrEmptyResponse
	}

	var out externalNote
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return model.Note{}, fmt.Errorf("decode generator reply: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return model.Note{}, fmt.Errorf("validate generator reply: %w", err)
	}

	note := model.Note{
		Text:      strings.TrimSpace(out.TickerNote),
		Rationale: out.Rationale,
		RiskFlags: out.RiskFlags,
	}
	if validate.Var(strings.ToLower(out.Rating), "oneof=buy hold sell") == nil {
		note.Rating = model.Rating(strings.ToLower(out.Rating))
	}
	if validate.Var(strings.ToLower(out.Sentiment), "oneof=bullish bearish neutral") == nil {
		note.Sentiment = model.Sentiment(strings.ToLower(out.Sentiment))
	}
	return note, nil
}

// stripCodeFence removes a surrounding ```json fence some models add.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
