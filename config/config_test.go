package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultPathMissing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.Equal(t, "whisper-1", cfg.LLM.TranscriptionModel)
	assert.Equal(t, 900, cfg.Generation.ShortMaxTokens)
	assert.Equal(t, 2300, cfg.Generation.LongMaxTokens)
	assert.InDelta(t, 0.7, *cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, 1, cfg.Generation.Concurrency)
	assert.Equal(t, "Business Document", cfg.Export.Title)
	assert.Equal(t, 500, cfg.Notes.SummaryMaxTokens)
	assert.Empty(t, cfg.LLM.APIKey, "a missing key must not fail loading")
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server_addr: ":9090"
llm:
  provider: mock
  model: gpt-4o
  api_key_env: BDG_TEST_KEY
generation:
  concurrency: 4
  timeout: 2m
  temperature: 0.2
export:
  title: Plan
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("BDG_TEST_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, 4, cfg.Generation.Concurrency)
	assert.Equal(t, 2*time.Minute, cfg.Generation.Timeout)
	assert.InDelta(t, 0.2, *cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, "Plan", cfg.Export.Title)
}

func TestValidate(t *testing.T) {
	t.Run("deepseek needs base_url", func(t *testing.T) {
		cfg := Config{LLM: LLMConfig{Provider: "deepseek"}}
		cfg.Defaults()
		assert.Error(t, cfg.Validate())

		cfg.LLM.BaseURL = "https://api.deepseek.com/v1"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := Config{LLM: LLMConfig{Provider: "gigachat"}}
		cfg.Defaults()
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature range", func(t *testing.T) {
		cfg := Config{}
		hot := 3.5
		cfg.Generation.Temperature = &hot
		cfg.Defaults()
		assert.Error(t, cfg.Validate())
	})
}
