package describe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const (
	// GeminiProviderName is the provider identifier.
	GeminiProviderName = "gemini"
	// GeminiDefaultModel is the default vision model.
	GeminiDefaultModel = "gemini-1.5-flash"
)

// GeminiConfig holds the configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiProvider generates alt text using the Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGemini creates a new Gemini provider.
func NewGemini(cfg GeminiConfig) (*GeminiProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("Google API key not configured (set GOOGLE_API_KEY or provide via config)")
	}

	model := cfg.Model
	if model == "" {
		model = GeminiDefaultModel
	}

	return &GeminiProvider{apiKey: apiKey, model: model}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return GeminiProviderName
}

// Validate checks if the provider is properly configured.
func (p *GeminiProvider) Validate() error {
	if p.apiKey == "" {
		return errors.New("Google API key is empty")
	}
	return nil
}

// Describe sends the image to the Gemini API and returns the text reply.
func (p *GeminiProvider) Describe(ctx context.Context, req Request, opts Options) (*Result, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	genCfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(float32(opts.Temperature))
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Data, req.MIME),
			genai.NewPartFromText(opts.BuildPrompt()),
		}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	alt := strings.TrimSpace(result.Text())
	if alt == "" {
		return nil, fmt.Errorf("gemini returned an empty description")
	}

	usage := TokenUsage{}
	if result.UsageMetadata != nil {
		usage = TokenUsage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return &Result{AltText: alt, Model: model, Usage: usage}, nil
}
