package describe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// OllamaProviderName is the provider identifier.
	OllamaProviderName = "ollama"
	// OllamaDefaultHost is the default local Ollama endpoint.
	OllamaDefaultHost = "http://localhost:11434"
	// OllamaDefaultModel is the default vision model.
	OllamaDefaultModel = "llama3.2-vision"
)

// OllamaConfig holds the configuration for the Ollama provider.
type OllamaConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
}

// OllamaProvider generates alt text through a local Ollama server.
type OllamaProvider struct {
	host    string
	model   string
	timeout time.Duration
	client  *http.Client
}

// ollamaGenerateRequest mirrors the /api/generate request body.
type ollamaGenerateRequest struct {
	Model   string             `json:"model"`
	Prompt  string             `json:"prompt"`
	Images  []string           `json:"images"`
	Stream  bool               `json:"stream"`
	Options map[string]float64 `json:"options,omitempty"`
}

// ollamaGenerateResponse mirrors the /api/generate response body.
type ollamaGenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// NewOllama creates a new Ollama provider. No API key is needed; the
// host falls back to OLLAMA_HOST and then the local default.
func NewOllama(cfg OllamaConfig) (*OllamaProvider, error) {
	host := cfg.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = OllamaDefaultHost
	}
	host = strings.TrimRight(host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}

	model := cfg.Model
	if model == "" {
		model = OllamaDefaultModel
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second // local vision models can be slow to warm up
	}

	return &OllamaProvider{
		host:    host,
		model:   model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the provider identifier.
func (p *OllamaProvider) Name() string {
	return OllamaProviderName
}

// Validate checks if the provider is properly configured.
func (p *OllamaProvider) Validate() error {
	if p.host == "" {
		return errors.New("Ollama host is empty")
	}
	return nil
}

// Describe sends the image to the Ollama generate API and returns the reply.
func (p *OllamaProvider) Describe(ctx context.Context, req Request, opts Options) (*Result, error) {
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	body := ollamaGenerateRequest{
		Model:  model,
		Prompt: opts.BuildPrompt(),
		Images: []string{base64.StdEncoding.EncodeToString(req.Data)},
		Stream: false,
	}
	if opts.Temperature > 0 || opts.MaxTokens > 0 {
		body.Options = make(map[string]float64)
		if opts.Temperature > 0 {
			body.Options["temperature"] = opts.Temperature
		}
		if opts.MaxTokens > 0 {
			body.Options["num_predict"] = float64(opts.MaxTokens)
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	alt := strings.TrimSpace(apiResp.Response)
	if alt == "" {
		return nil, fmt.Errorf("ollama returned an empty description")
	}

	resultModel := apiResp.Model
	if resultModel == "" {
		resultModel = model
	}

	return &Result{
		AltText: alt,
		Model:   resultModel,
		Usage: TokenUsage{
			InputTokens:  apiResp.PromptEvalCount,
			OutputTokens: apiResp.EvalCount,
			TotalTokens:  apiResp.PromptEvalCount + apiResp.EvalCount,
		},
	}, nil
}
