package describe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// AnthropicProviderName is the provider identifier.
	AnthropicProviderName = "anthropic"
	// AnthropicDefaultModel is the default vision model.
	AnthropicDefaultModel = "claude-sonnet-4-20250514"
)

// AnthropicConfig holds the configuration for the Anthropic provider.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicProvider generates alt text using the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey string
	model  string
	client anthropic.Client
}

// NewAnthropic creates a new Anthropic provider.
func NewAnthropic(cfg AnthropicConfig) (*AnthropicProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("Anthropic API key not configured (set ANTHROPIC_API_KEY or provide via config)")
	}

	model := cfg.Model
	if model == "" {
		model = AnthropicDefaultModel
	}

	return &AnthropicProvider{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Name returns the provider identifier.
func (p *AnthropicProvider) Name() string {
	return AnthropicProviderName
}

// Validate checks if the provider is properly configured.
func (p *AnthropicProvider) Validate() error {
	if p.apiKey == "" {
		return errors.New("Anthropic API key is empty")
	}
	return nil
}

// Describe sends the image to the Messages API and returns the text reply.
func (p *AnthropicProvider) Describe(ctx context.Context, req Request, opts Options) (*Result, error) {
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultOptions().MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(req.MIME, base64.StdEncoding.EncodeToString(req.Data)),
				anthropic.NewTextBlock(opts.BuildPrompt()),
			),
		},
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	alt := strings.TrimSpace(text.String())
	if alt == "" {
		return nil, fmt.Errorf("anthropic returned an empty description")
	}

	return &Result{
		AltText: alt,
		Model:   string(msg.Model),
		Usage: TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}
