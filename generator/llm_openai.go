package generator

import (
	"context"
	"errors"
	"io"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILLM implements LLMClient and Transcriber using the official openai-go
// SDK (chat completions and audio transcriptions).
type OpenAILLM struct {
	Model              string
	TranscriptionModel string
	Opts               []option.RequestOption

	hasKey bool
}

// NewOpenAILLMFromConfig builds the client. A missing API key is accepted
// here and reported by each call instead.
func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	tm := cfg.TranscriptionModel
	if tm == "" {
		tm = string(openai.AudioModelWhisper1)
	}
	return &OpenAILLM{
		Model:              cfg.Model,
		TranscriptionModel: tm,
		Opts:               opts,
		hasKey:             cfg.APIKey != "",
	}, nil
}

func (o *OpenAILLM) client() (openai.Client, error) {
	if !o.hasKey {
		return openai.Client{}, ErrMissingAPIKey
	}
	return openai.NewClient(o.Opts...), nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client, err := o.client()
	if err != nil {
		return "", err
	}

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if prompt.System != "" {
		msgs = append(msgs, openai.SystemMessage(prompt.System))
	}
	msgs = append(msgs, openai.UserMessage(prompt.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.Model),
		Messages:    msgs,
		N:           openai.Int(1),
		Temperature: openai.Float(prompt.Temperature),
	}
	if prompt.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(prompt.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAILLM) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	client, err := o.client()
	if err != nil {
		return "", err
	}
	resp, err := client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, filename, ""),
		Model: openai.AudioModel(o.TranscriptionModel),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
