// Package notes transcribes an uploaded meeting recording and summarizes it
// into key points, action items and decisions.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"business_document_generator/generator"
)

// SummaryFileName is the download name for a summary.
const SummaryFileName = "meeting_summary.txt"

var (
	// ErrUnsupportedAudio is returned for uploads that are not mp3, wav or m4a.
	ErrUnsupportedAudio = errors.New("unsupported audio format; use mp3, wav or m4a")
	// ErrEmptyTranscript means the recording produced no text to summarize.
	ErrEmptyTranscript = errors.New("transcript is empty")
)

var audioExtensions = map[string]bool{".mp3": true, ".wav": true, ".m4a": true}

// CheckAudio validates the upload filename.
func CheckAudio(filename string) error {
	if !audioExtensions[strings.ToLower(filepath.Ext(filename))] {
		return fmt.Errorf("%q: %w", filename, ErrUnsupportedAudio)
	}
	return nil
}

// Notes is the result of one processed recording.
type Notes struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Transcript string    `json:"transcript"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// Taker runs the transcribe then summarize pipeline.
type Taker struct {
	llm         generator.LLMClient
	transcriber generator.Transcriber
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewTaker(llm generator.LLMClient, transcriber generator.Transcriber, maxTokens int, logger *zap.Logger) (*Taker, error) {
	if llm == nil || transcriber == nil {
		return nil, errors.New("notes: llm and transcriber are required")
	}
	if maxTokens <= 0 {
		maxTokens = 500
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Taker{llm: llm, transcriber: transcriber, maxTokens: maxTokens, temperature: 0.7, logger: logger}, nil
}

// SummaryPrompt builds the summarization request for a transcript.
func SummaryPrompt(transcript string, maxTokens int, temperature float64) generator.Prompt {
	return generator.Prompt{
		User:        "Summarize the following meeting transcript into key points, action items, and decisions:\n" + transcript,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Label:       "meeting summary",
	}
}

// Process transcribes audio and summarizes the transcript. Nothing is
// returned unless both steps succeed.
func (t *Taker) Process(ctx context.Context, filename string, audio io.Reader) (Notes, error) {
	if err := CheckAudio(filename); err != nil {
		return Notes{}, err
	}

	start := time.Now()
	transcript, err := t.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return Notes{}, fmt.Errorf("transcribe: %w", err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return Notes{}, ErrEmptyTranscript
	}
	t.logger.Debug("transcribed", zap.String("file", filename), zap.Int("chars", len(transcript)),
		zap.Duration("elapsed", time.Since(start)))

	raw, err := t.llm.Complete(ctx, SummaryPrompt(transcript, t.maxTokens, t.temperature))
	if err != nil {
		return Notes{}, fmt.Errorf("summarize: %w", err)
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		return Notes{}, generator.ErrEmptyCompletion
	}

	t.logger.Info("meeting summarized", zap.String("file", filename), zap.Duration("elapsed", time.Since(start)))
	return Notes{
		Filename:   filename,
		Transcript: transcript,
		Summary:    summary,
		CreatedAt:  time.Now(),
	}, nil
}
