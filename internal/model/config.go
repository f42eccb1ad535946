package model

// Config holds the complete phenotidy configuration
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
}

// InputConfig controls how the source table is read
type InputConfig struct {
	Columns       int    `yaml:"columns"`        // expected column count per row
	CommentPrefix string `yaml:"comment_prefix"` // lines starting with this are skipped
}

// OutputConfig controls rendering of results
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	Summary bool `yaml:"summary"` // print the stats summary after a run
}

// CacheConfig controls memoization of entry classification
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// LLMConfig holds optional LLM summary settings
type LLMConfig struct {
	Provider  string  `yaml:"provider"` // "", "openai", "ollama"
	Model     string  `yaml:"model"`
	APIKey    string  `yaml:"-"` // from environment only, never persisted
	BaseURL   string  `yaml:"base_url"`
	Timeout   int     `yaml:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit"` // API requests per second in batch mode
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Columns:       14,
			CommentPrefix: "#",
		},
		Output: OutputConfig{
			Verbose: false,
			Summary: true,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 800,
			RateLimit: 1.0,
		},
	}
}
