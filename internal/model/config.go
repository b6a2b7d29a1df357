package model

import "time"

// Config is the process-wide configuration, assembled from defaults, the
// config file, CARDLENS_* environment variables, and CLI flags.
type Config struct {
	OCR         OCRConfig         `yaml:"ocr"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// OCRConfig controls the Tesseract collaborator.
type OCRConfig struct {
	Language    string `yaml:"language"`     // Tesseract language tag, e.g. "eng"
	TessdataDir string `yaml:"tessdata_dir"` // Optional tessdata prefix override
	PhoneRegion string `yaml:"phone_region"` // Default region for phone parsing without +
}

// CacheConfig controls the extraction result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// ServerConfig controls the HTTP extraction endpoint.
type ServerConfig struct {
	Addr           string  `yaml:"addr"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst"`
	MaxUploadBytes int64   `yaml:"max_upload_bytes"`
}

// LLMConfig controls the optional field refiner. The refiner only fills
// fields the heuristics left empty; it never overrides a heuristic result.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Language:    "eng",
			PhoneRegion: "US",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.cardlens/cache at startup
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RatePerSecond:  5,
			RateBurst:      10,
			MaxUploadBytes: 10 << 20,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 500,
		},
		Output: OutputConfig{},
	}
}
