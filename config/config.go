package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "config/config.yaml"

// Config is the root configuration of the service and CLI.
type Config struct {
	ServerAddr string           `yaml:"server_addr,omitempty"`
	LogLevel   string           `yaml:"log_level,omitempty"`
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Export     ExportConfig     `yaml:"export"`
	Notes      NotesConfig      `yaml:"notes"`
}

// LLMConfig selects the hosted model service.
type LLMConfig struct {
	Provider           string `yaml:"provider,omitempty"`
	Model              string `yaml:"model,omitempty"`
	APIKey             string `yaml:"api_key,omitempty"`
	APIKeyEnv          string `yaml:"api_key_env,omitempty"`
	BaseURL            string `yaml:"base_url,omitempty"`
	TranscriptionModel string `yaml:"transcription_model,omitempty"`
}

// GenerationConfig tunes the per-section completion calls.
type GenerationConfig struct {
	ShortMaxTokens int           `yaml:"short_max_tokens,omitempty"`
	LongMaxTokens  int           `yaml:"long_max_tokens,omitempty"`
	Temperature    *float64      `yaml:"temperature,omitempty"`
	Concurrency    int           `yaml:"concurrency,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
}

// ExportConfig controls the DOCX/PDF writers.
type ExportConfig struct {
	Title            string  `yaml:"title,omitempty"`
	TempDir          string  `yaml:"temp_dir,omitempty"`
	ImageWidthInches float64 `yaml:"image_width_inches,omitempty"`
}

// NotesConfig controls the meeting note taker.
type NotesConfig struct {
	SummaryMaxTokens int   `yaml:"summary_max_tokens,omitempty"`
	MaxUploadMB      int64 `yaml:"max_upload_mb,omitempty"`
}

// Load reads .env (if any), the YAML file at path (if it exists) and applies
// environment overrides and defaults. A missing API key is not an error here;
// it surfaces when the first model call is made.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
			// defaults only
		default:
			return Config{}, err
		}
	}
	cfg.applyEnvOverrides()
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv(c.LLM.APIKeyEnv)
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" && c.LLM.BaseURL == "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.ServerAddr = v
	}
}

// Defaults fills every unset field.
func (c *Config) Defaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4"
	}
	if c.LLM.TranscriptionModel == "" {
		c.LLM.TranscriptionModel = "whisper-1"
	}
	if c.Generation.ShortMaxTokens == 0 {
		c.Generation.ShortMaxTokens = 900
	}
	if c.Generation.LongMaxTokens == 0 {
		c.Generation.LongMaxTokens = 2300
	}
	if c.Generation.Temperature == nil {
		t := 0.7
		c.Generation.Temperature = &t
	}
	if c.Generation.Concurrency <= 0 {
		c.Generation.Concurrency = 1
	}
	if c.Generation.Timeout == 0 {
		c.Generation.Timeout = 10 * time.Minute
	}
	if c.Export.Title == "" {
		c.Export.Title = "Business Document"
	}
	if c.Export.ImageWidthInches == 0 {
		c.Export.ImageWidthInches = 5
	}
	if c.Notes.SummaryMaxTokens == 0 {
		c.Notes.SummaryMaxTokens = 500
	}
	if c.Notes.MaxUploadMB == 0 {
		c.Notes.MaxUploadMB = 25
	}
}

// Validate rejects configurations that can never work.
func (c Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "mock":
	case "deepseek":
		// DeepSeek speaks the OpenAI protocol but has no default endpoint.
		if c.LLM.BaseURL == "" {
			return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.Generation.ShortMaxTokens < 0 || c.Generation.LongMaxTokens < 0 {
		return errors.New("generation token budgets must be positive")
	}
	if t := *c.Generation.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("generation temperature %.2f out of range [0,2]", t)
	}
	return nil
}
