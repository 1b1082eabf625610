package describe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/roboco-io/md-img-uri/internal/datauri"
)

const (
	// OpenAIProviderName is the provider identifier.
	OpenAIProviderName = "openai"
	// OpenAIDefaultModel is the default vision model.
	OpenAIDefaultModel = "gpt-4o-mini"
)

// OpenAIConfig holds the configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIProvider generates alt text using the OpenAI Chat Completions API.
// Images travel as data URIs, the same representation this tool emits.
type OpenAIProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(cfg OpenAIConfig) (*OpenAIProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("OpenAI API key not configured (set OPENAI_API_KEY or provide via config)")
	}

	model := cfg.Model
	if model == "" {
		model = OpenAIDefaultModel
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(clientCfg),
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return OpenAIProviderName
}

// Validate checks if the provider is properly configured.
func (p *OpenAIProvider) Validate() error {
	if p.apiKey == "" {
		return errors.New("OpenAI API key is empty")
	}
	return nil
}

// Describe sends the image to the Chat Completions API and returns the reply.
func (p *OpenAIProvider) Describe(ctx context.Context, req Request, opts Options) (*Result, error) {
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultOptions().MaxTokens
	}

	imageURI := datauri.EncodeRaster(req.Data, req.MIME).URI()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: float32(opts.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: opts.BuildPrompt(),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURI,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	alt := strings.TrimSpace(resp.Choices[0].Message.Content)
	if alt == "" {
		return nil, fmt.Errorf("openai returned an empty description")
	}

	return &Result{
		AltText: alt,
		Model:   resp.Model,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
