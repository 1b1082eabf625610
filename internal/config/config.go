// Package config manages application configuration.
package config

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Encode          EncodeConfig        `yaml:"encode"`
	Describe        DescribeConfig      `yaml:"describe"`
}

// Provider represents a description provider configuration.
type Provider struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Endpoint  string `yaml:"endpoint,omitempty"` // for Ollama or custom endpoints
}

// EncodeConfig contains raster re-encoding options used when an image
// is downscaled.
type EncodeConfig struct {
	JPEGQuality int    `yaml:"jpeg_quality"`
	Filter      string `yaml:"filter"`
}

// DescribeConfig contains alt text generation options.
type DescribeConfig struct {
	Language    string  `yaml:"language"`
	Temperature float64 `yaml:"temperature"`
	Prompt      string  `yaml:"prompt,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "anthropic",
		Providers: map[string]Provider{
			"openai": {
				APIKey:    "${OPENAI_API_KEY}",
				Model:     "gpt-4o-mini",
				MaxTokens: 256,
			},
			"anthropic": {
				APIKey:    "${ANTHROPIC_API_KEY}",
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 256,
			},
			"gemini": {
				APIKey:    "${GOOGLE_API_KEY}",
				Model:     "gemini-1.5-flash",
				MaxTokens: 256,
			},
			"ollama": {
				Endpoint:  "http://localhost:11434",
				Model:     "llama3.2-vision",
				MaxTokens: 256,
			},
		},
		Encode: EncodeConfig{
			JPEGQuality: 75,
			Filter:      "lanczos3",
		},
		Describe: DescribeConfig{
			Language:    "en",
			Temperature: 0.2,
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}
