package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full pipeline configuration. Values come from (highest
// priority first) CLI flags, VERACITY_* environment variables, the
// config file, and the defaults below.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Research    ResearchConfig    `yaml:"research"`
	Cache       CacheConfig       `yaml:"cache"`
	Media       MediaConfig       `yaml:"media"`
	Store       StoreConfig       `yaml:"store"`
	HTTP        HTTPConfig        `yaml:"http"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the completion service used for structuring,
// moderation classification, media extraction, and verdict synthesis.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"` // custom OpenAI-compatible endpoint
	Timeout   int    `yaml:"timeout"`  // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// ResearchConfig configures the two research providers
type ResearchConfig struct {
	PrimaryAPIKey  string        `yaml:"primary_api_key"`
	PrimaryBaseURL string        `yaml:"primary_base_url"`
	PrimaryModel   string        `yaml:"primary_model"`
	PrimaryTimeout time.Duration `yaml:"primary_timeout"`

	DiscoveryEnabled     bool          `yaml:"discovery_enabled"`
	DiscoveryBearerToken string        `yaml:"discovery_bearer_token"`
	DiscoverySearchLimit int           `yaml:"discovery_search_limit"`
	DiscoveryTimeout     time.Duration `yaml:"discovery_timeout"`
}

// CacheConfig configures the content-addressed result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// MediaConfig configures the media extraction engine
type MediaConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	PollDeadline time.Duration `yaml:"poll_deadline"`
	FFmpegPath   string        `yaml:"ffmpeg_path"`
}

// StoreConfig configures the best-effort durable record of runs
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// HTTPConfig configures outbound HTTP (URL extraction, discovery)
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`

	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ConcurrencyConfig bounds parallelism in batch mode
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".veracity")

	return &Config{
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Research: ResearchConfig{
			PrimaryBaseURL: "https://api.perplexity.ai",
			PrimaryModel:   "sonar-pro",
			PrimaryTimeout: 60 * time.Second,

			DiscoveryEnabled:     true,
			DiscoverySearchLimit: 25,
			DiscoveryTimeout:     30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(base, "cache"),
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Media: MediaConfig{
			PollInterval: 2 * time.Second,
			PollDeadline: 5 * time.Minute,
			FFmpegPath:   "ffmpeg",
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    filepath.Join(base, "checks.db"),
		},
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "Veracity/0.1 (claim verification; +https://github.com/veracity)",
			MaxBodyBytes: 2_000_000,

			RequestsPerSecond: 2,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{},
	}
}
