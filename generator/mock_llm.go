package generator

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	if prompt.Label != "" {
		sb.WriteString("## " + prompt.Label + "\n\n")
	}
	sb.WriteString("Prepared by [Your Name] for a funding request of [Funding Amount] over [Finance Term].\n\n")
	sb.WriteString("| Year | Revenue (£) |\n|------|-------------|\n| 1 | £200,000 |\n\n")
	sb.WriteString(fmt.Sprintf("(offline draft, %d token budget)", prompt.MaxTokens))
	return sb.String(), nil
}

func (m MockLLM) Transcribe(_ context.Context, filename string, audio io.Reader) (string, error) {
	n, err := io.Copy(io.Discard, audio)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Transcript of %s (%d bytes): we agreed to ship the plan on Friday.", filename, n), nil
}
