package generator

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrMissingAPIKey is returned by every call when no credential is configured.
	ErrMissingAPIKey = errors.New("api key missing; set OPENAI_API_KEY or llm.api_key")
	// ErrEmptyCompletion means the model answered with no text.
	ErrEmptyCompletion = errors.New("model returned empty text")
)

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Transcriber turns an uploaded recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider           string
	Model              string
	APIKey             string
	BaseURL            string
	TranscriptionModel string
}
