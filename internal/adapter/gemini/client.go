// internal/adapter/gemini/client.go

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"talkclass/internal/domain/assistant"
)

// ErrNoAPIKey is returned when the client is created without credentials
var ErrNoAPIKey = errors.New("gemini api key not configured")

// Config holds the Gemini connection settings
type Config struct {
	APIKey string
	Model  string
}

// Client implements assistant.Generator on top of the Gemini API
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Generate sends the prompt and returns the text of every candidate
func (c *Client) Generate(ctx context.Context, prompt string, params assistant.GenerationParams) ([]string, error) {
	model := params.Model
	if model == "" {
		model = c.model
	}

	contents := make([]*genai.Content, 0, 2)
	if params.Preamble != "" {
		// The API only accepts user and model roles, so the preamble goes in as user text
		contents = append(contents, genai.NewContentFromText(params.Preamble, genai.RoleUser))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, generationConfig(params))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with gemini: %w", err)
	}

	texts := candidateTexts(resp)
	c.logger.Debug("gemini generation finished", "model", model, "candidates", len(texts))
	return texts, nil
}

func generationConfig(params assistant.GenerationParams) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(params.Temperature),
		TopP:        genai.Ptr(params.TopP),
	}
	if params.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}

// candidateTexts concatenates the text parts of each candidate
func candidateTexts(resp *genai.GenerateContentResponse) []string {
	if resp == nil {
		return nil
	}

	texts := make([]string, 0, len(resp.Candidates))
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				b.WriteString(part.Text)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
