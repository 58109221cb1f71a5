package generator

import (
	"context"
	"errors"
	"sync"
)

// staticLLM answers every prompt with the same text.
type staticLLM struct{ text string }

func (s staticLLM) Complete(context.Context, Prompt) (string, error) { return s.text, nil }

// recordingLLM remembers prompts and echoes the section label.
type recordingLLM struct {
	mu      sync.Mutex
	prompts []Prompt
}

func (r *recordingLLM) Complete(_ context.Context, p Prompt) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, p)
	return "text for " + p.Label, nil
}

func (r *recordingLLM) labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.prompts))
	for i, p := range r.prompts {
		out[i] = p.Label
	}
	return out
}

var errUpstream = errors.New("upstream quota exceeded")

// failingLLM fails on the call whose label matches failOn.
type failingLLM struct {
	failOn string
	mu     sync.Mutex
	calls  int
}

func (f *failingLLM) Complete(_ context.Context, p Prompt) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if p.Label == f.failOn {
		return "", errUpstream
	}
	return "ok " + p.Label, nil
}

func overviewFields(t DocumentType) FieldSet {
	return FieldSet{
		Type:          t,
		Directors:     "Jane Doe",
		Staffing:      "12 staff",
		FundingAmount: "R 1,000,000",
		GrantAmount:   "R 250,000",
		FinanceTerm:   "5 years",
		Overview:      "A solar installation company in Durban.",
	}
}
