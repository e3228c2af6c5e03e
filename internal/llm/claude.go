package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"DailyMarketBot/internal/model"
)

// ClaudeGenerator asks Anthropic's Messages API for the note.
type ClaudeGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewClaudeGenerator creates a generator with SDK retries disabled. Extra
// options (such as option.WithBaseURL) are applied last.
func NewClaudeGenerator(apiKey, model string, maxTokens int, opts ...option.RequestOption) *ClaudeGenerator {
	if model == "" {
		model = DefaultClaudeModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return &ClaudeGenerator{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *ClaudeGenerator) Name() string { return "claude" }

func (g *ClaudeGenerator) Produce(ctx context.Context, req Request) (model.Note, error) {
	user, err := buildUserPrompt(req)
	if err != nil {
		return model.Note{}, err
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   int64(g.maxTokens),
		Temperature: anthropic.Float(0),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("claude messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return parseExternalNote(sb.String())
}
