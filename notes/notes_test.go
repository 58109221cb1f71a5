package notes

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business_document_generator/generator"
)

type fakeTranscriber struct {
	text string
	err  error
	got  string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, audio io.Reader) (string, error) {
	b, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	f.got = string(b)
	return f.text, f.err
}

type captureLLM struct {
	reply  string
	err    error
	prompt generator.Prompt
}

func (c *captureLLM) Complete(_ context.Context, p generator.Prompt) (string, error) {
	c.prompt = p
	return c.reply, c.err
}

func TestProcess(t *testing.T) {
	tr := &fakeTranscriber{text: "  Alice: ship Friday. Bob: agreed.  "}
	llm := &captureLLM{reply: "\n- Ship Friday\n"}
	taker, err := NewTaker(llm, tr, 0, nil)
	require.NoError(t, err)

	n, err := taker.Process(context.Background(), "standup.MP3", strings.NewReader("RIFFdata"))
	require.NoError(t, err)

	assert.Equal(t, "RIFFdata", tr.got)
	assert.Equal(t, "Alice: ship Friday. Bob: agreed.", n.Transcript)
	assert.Equal(t, "- Ship Friday", n.Summary)
	assert.Equal(t, "standup.MP3", n.Filename)

	assert.Equal(t, "Summarize the following meeting transcript into key points, action items, and decisions:\n"+
		"Alice: ship Friday. Bob: agreed.", llm.prompt.User)
	assert.Equal(t, 500, llm.prompt.MaxTokens)
	assert.InDelta(t, 0.7, llm.prompt.Temperature, 1e-9)
}

func TestProcess_RejectsFormat(t *testing.T) {
	taker, err := NewTaker(&captureLLM{}, &fakeTranscriber{}, 500, nil)
	require.NoError(t, err)

	for _, name := range []string{"notes.txt", "meeting.ogg", "noext"} {
		_, err := taker.Process(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrUnsupportedAudio, name)
	}
	assert.NoError(t, CheckAudio("a.wav"))
	assert.NoError(t, CheckAudio("b.m4a"))
}

func TestProcess_Failures(t *testing.T) {
	boom := errors.New("boom")

	taker, _ := NewTaker(&captureLLM{reply: "x"}, &fakeTranscriber{err: boom}, 500, nil)
	_, err := taker.Process(context.Background(), "a.wav", strings.NewReader("x"))
	assert.ErrorIs(t, err, boom)

	taker, _ = NewTaker(&captureLLM{reply: "x"}, &fakeTranscriber{text: "   "}, 500, nil)
	_, err = taker.Process(context.Background(), "a.wav", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrEmptyTranscript)

	taker, _ = NewTaker(&captureLLM{err: boom}, &fakeTranscriber{text: "hi"}, 500, nil)
	_, err = taker.Process(context.Background(), "a.wav", strings.NewReader("x"))
	assert.ErrorIs(t, err, boom)

	taker, _ = NewTaker(&captureLLM{reply: " "}, &fakeTranscriber{text: "hi"}, 500, nil)
	_, err = taker.Process(context.Background(), "a.wav", strings.NewReader("x"))
	assert.ErrorIs(t, err, generator.ErrEmptyCompletion)

	_, err = NewTaker(nil, &fakeTranscriber{}, 500, nil)
	assert.Error(t, err)
}

func TestProcess_MockProvider(t *testing.T) {
	taker, err := NewTaker(generator.MockLLM{}, generator.MockLLM{}, 500, nil)
	require.NoError(t, err)

	n, err := taker.Process(context.Background(), "call.m4a", strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Contains(t, n.Transcript, "call.m4a")
	assert.NotEmpty(t, n.Summary)
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Put(Notes{ID: "m1", Summary: "s"})
	n, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "s", n.Summary)
	_, ok = s.Get("nope")
	assert.False(t, ok)
}
