// Package describe generates image alt text through vision-capable LLM providers.
package describe

import (
	"context"
	"fmt"
	"strings"
)

// Provider is the interface that all description providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Describe generates alt text for the given image.
	Describe(ctx context.Context, req Request, opts Options) (*Result, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// Request carries the image to describe.
type Request struct {
	Data []byte // encoded image bytes
	MIME string // e.g. "image/png"
}

// Options contains options for alt text generation.
type Options struct {
	Model       string  `json:"model,omitempty"`       // provider model override
	Language    string  `json:"language,omitempty"`    // output language (e.g., "en", "ko")
	MaxTokens   int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
	Prompt      string  `json:"prompt,omitempty"`      // custom prompt
}

// Result contains the result of alt text generation.
type Result struct {
	AltText string     `json:"alt_text"`
	Usage   TokenUsage `json:"usage"`
	Model   string     `json:"model"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultOptions returns the default description options.
func DefaultOptions() Options {
	return Options{
		Language:    "en",
		MaxTokens:   256,
		Temperature: 0.2,
	}
}

// BuildPrompt returns the instruction sent alongside the image. A custom
// prompt wins; otherwise a concise alt-text instruction in the requested
// language is used.
func (o Options) BuildPrompt() string {
	if o.Prompt != "" {
		return o.Prompt
	}
	return fmt.Sprintf(
		"Describe this image in one concise sentence suitable as Markdown alt text. "+
			"Respond in %s with the description only, no quotes or preamble.",
		languageName(o.Language))
}

func languageName(code string) string {
	switch strings.ToLower(code) {
	case "", "en":
		return "English"
	case "ko":
		return "Korean"
	case "ja":
		return "Japanese"
	case "zh":
		return "Chinese"
	default:
		return code
	}
}

// SanitizeAlt flattens model output into text that is safe inside the
// Markdown ![...](...) enclosure. Newline runs collapse to single
// spaces, wrapping quotes are stripped, and square brackets become
// parentheses.
func SanitizeAlt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, `"'`)
	s = strings.NewReplacer("[", "(", "]", ")").Replace(s)
	return strings.TrimSpace(s)
}
