package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business_document_generator/charts"
)

func newTestSession(t *testing.T, llm LLMClient) *Session {
	t.Helper()
	a, err := NewAssembler(llm)
	require.NoError(t, err)
	return NewSession("s1", a)
}

func TestSession_Lifecycle(t *testing.T) {
	s := newTestSession(t, staticLLM{text: "OK"})
	assert.Equal(t, StateIdle, s.State())

	assert.ErrorIs(t, s.Edit("early"), ErrInvalidState)
	_, err := s.Export(func(string, []charts.Request) ([]byte, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrInvalidState)

	doc, err := s.Generate(context.Background(), overviewFields(BusinessPlan))
	require.NoError(t, err)
	assert.Equal(t, StateAssembled, s.State())
	assert.Equal(t, doc.Text, s.Text())
	assert.Len(t, s.Charts(), 7)

	require.NoError(t, s.Edit("my edited plan"))
	assert.Equal(t, StateEditing, s.State())
	assert.Equal(t, "my edited plan", s.Text())
	assert.Len(t, s.Charts(), 7, "editing keeps charts")

	var seenText string
	var seenCharts int
	out, err := s.Export(func(text string, reqs []charts.Request) ([]byte, error) {
		assert.Equal(t, StateExporting, s.State())
		seenText, seenCharts = text, len(reqs)
		return []byte("buf"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("buf"), out)
	assert.Equal(t, "my edited plan", seenText)
	assert.Equal(t, 7, seenCharts)
	assert.Equal(t, StateEditing, s.State(), "export does not change document state")

	v := s.Snapshot()
	assert.Equal(t, "s1", v.ID)
	assert.Equal(t, doc.Text, v.Generated)
	assert.Equal(t, "my edited plan", v.Text)
	assert.Len(t, v.Sections, 16)
}

func TestSession_RegenerateRebuildsCharts(t *testing.T) {
	s := newTestSession(t, staticLLM{text: "OK"})

	_, err := s.Generate(context.Background(), overviewFields(BusinessPlan))
	require.NoError(t, err)
	require.Len(t, s.Charts(), 7)

	_, err = s.Generate(context.Background(), overviewFields(PitchDeck))
	require.NoError(t, err)
	assert.Empty(t, s.Charts())
	assert.Equal(t, StateAssembled, s.State())
}

func TestSession_FailureKeepsPrevious(t *testing.T) {
	llm := &failingLLM{}
	s := newTestSession(t, llm)

	first, err := s.Generate(context.Background(), overviewFields(BusinessPlan))
	require.NoError(t, err)

	llm.failOn = "Introduction"
	_, err = s.Generate(context.Background(), overviewFields(PitchDeck))
	require.ErrorIs(t, err, errUpstream)

	assert.Equal(t, StateAssembled, s.State())
	assert.Equal(t, first.Text, s.Text())
	assert.Len(t, s.Charts(), 7)
}

func TestSession_FailureFromIdle(t *testing.T) {
	s := newTestSession(t, &failingLLM{failOn: "Applicant Information"})

	_, err := s.Generate(context.Background(), overviewFields(ApplicationForm))
	require.Error(t, err)
	assert.Equal(t, StateIdle, s.State())
	_, ok := s.Document()
	assert.False(t, ok)
}

func TestSession_MissingOverview(t *testing.T) {
	s := newTestSession(t, staticLLM{text: "OK"})
	f := overviewFields(BusinessPlan)
	f.Overview = ""

	_, err := s.Generate(context.Background(), f)
	assert.ErrorIs(t, err, ErrMissingOverview)
	assert.Equal(t, StateIdle, s.State())
}
