package model

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the PubChem REST root shared by PUG REST and PUG View
const DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest"

// Config is the complete runtime configuration
type Config struct {
	PubChem      PubChemConfig      `yaml:"pubchem" mapstructure:"pubchem"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
}

// PubChemConfig locates the upstream service
type PubChemConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HTTPConfig controls the outbound client
type HTTPConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"` // Per request; runs have no overall deadline
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries     int           `yaml:"max_retries" mapstructure:"max_retries"` // 0 = single attempt
	InsecureTLS    bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy      string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy     string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy        string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots  bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls fan-out
type ConcurrencyConfig struct {
	Extractors   int `yaml:"extractors" mapstructure:"extractors"` // 1 = sequential category fetches
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// RateLimitingConfig follows the PubChem usage policy (5 requests/second)
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls where records go and how the run reports
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	SQLitePath string `yaml:"sqlite_path,omitempty" mapstructure:"sqlite_path"`
	AssayLimit int    `yaml:"assay_limit" mapstructure:"assay_limit"` // Rows kept in the BioAssay column; <=0 keeps all
	Verbose    bool   `yaml:"verbose" mapstructure:"verbose"`
	LogFormat  string `yaml:"log_format" mapstructure:"log_format"` // text or json
	Preview    bool   `yaml:"preview" mapstructure:"preview"`
}

// LLMConfig configures the optional record summary
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // "", openai, ollama
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictEvidence bool   `yaml:"strict_evidence" mapstructure:"strict_evidence"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		PubChem: PubChemConfig{
			BaseURL: DefaultBaseURL,
		},
		HTTP: HTTPConfig{
			RequestTimeout: 60 * time.Second,
			UserAgent:      "compoundscan/0.1 (+https://github.com/ppiankov/compoundscan)",
			MaxBodyBytes:   32 << 20, // assay summaries for common drugs run to several MB
			MaxRetries:     0,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Extractors:   1,
			BatchWorkers: 2,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Output: OutputConfig{
			Dir:        "Output",
			AssayLimit: 8,
			LogFormat:  "text",
			Preview:    true,
		},
		LLM: LLMConfig{
			Timeout:        30,
			MaxTokens:      600,
			StrictEvidence: true,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "compoundscan-cache")
	}
	return filepath.Join(home, ".compoundscan", "cache")
}
