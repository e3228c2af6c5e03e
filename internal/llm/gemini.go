package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"DailyMarketBot/internal/model"
)

// GeminiGenerator asks Google's Gemini API for the note.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiGenerator creates a client against the Gemini developer API.
// An optional HTTPOptions overrides the endpoint.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, maxTokens int, httpOptions ...genai.HTTPOptions) (*GeminiGenerator, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if len(httpOptions) > 0 {
		cfg.HTTPOptions = httpOptions[0]
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model, maxTokens: maxTokens}, nil
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) Produce(ctx context.Context, req Request) (model.Note, error) {
	user, err := buildUserPrompt(req)
	if err != nil {
		return model.Note{}, err
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		MaxOutputTokens:   int32(g.maxTokens),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("gemini generate: %w", err)
	}
	return parseExternalNote(resp.Text())
}
