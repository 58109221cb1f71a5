package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business_document_generator/export"
	"business_document_generator/generator"
	"business_document_generator/notes"
)

type brokenLLM struct{}

func (brokenLLM) Complete(context.Context, generator.Prompt) (string, error) {
	return "", errors.New("rate limited")
}

func newTestServer(t *testing.T, llm generator.LLMClient) *httptest.Server {
	t.Helper()
	a, err := generator.NewAssembler(llm)
	require.NoError(t, err)
	taker, err := notes.NewTaker(llm, generator.MockLLM{}, 500, nil)
	require.NoError(t, err)
	srv, err := New(Options{
		Assembler: a,
		Exporter:  export.New(export.Settings{TempDir: t.TempDir()}),
		Notes:     taker,
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

var planFields = map[string]string{
	"document_type":     "Business Plan",
	"directors":         "Jane Doe",
	"funding_amount":    "R 1,000,000",
	"business_overview": "A solar installation company in Durban.",
}

func createDocument(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/documents", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var raw map[string]any
	decode(t, resp, &raw)
	id, _ := raw["session_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, generator.StateIdle.String(), raw["state"])
	return id
}

func stateOf(t *testing.T, ts *httptest.Server, id string) string {
	t.Helper()
	resp := do(t, http.MethodGet, ts.URL+"/api/documents/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	decode(t, resp, &raw)
	return raw["state"].(string)
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp := do(t, http.MethodGet, ts.URL+"/api/options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string][]string
	decode(t, resp, &raw)
	assert.Equal(t, []string{"Business Plan", "Feasibility Study", "Application Form", "Pitch Deck"}, raw["document_types"])
	assert.Equal(t, []string{"Base Case", "Best Case", "Worst Case"}, raw["scenarios"])
	assert.Equal(t, []string{"docx", "pdf"}, raw["export_formats"])
}

func TestDocumentFlow(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})
	id := createDocument(t, ts)
	base := ts.URL + "/api/documents/" + id

	resp := do(t, http.MethodGet, base+"/export/docx", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "nothing to export yet")

	resp = do(t, http.MethodPost, base+"/generate", planFields)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	decode(t, resp, &raw)
	assert.Equal(t, "assembled", raw["state"])
	assert.Len(t, raw["charts"], 7)
	assert.Contains(t, raw["text"], "Prepared by Jane Doe for a funding request of R 1,000,000")

	resp = do(t, http.MethodPut, base+"/text", map[string]string{"text": "## Edited\n\nBody"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "editing", stateOf(t, ts, id))

	resp = do(t, http.MethodGet, base+"/preview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(readAll(t, resp)), "<h2>Edited</h2>")

	resp = do(t, http.MethodGet, base+"/charts/0", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("\x89PNG")))

	resp = do(t, http.MethodGet, base+"/charts/7", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/export/docx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Business_Plan.docx"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("PK")))

	resp = do(t, http.MethodGet, base+"/export/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("%PDF-")))

	resp = do(t, http.MethodGet, base+"/export/odt", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, "editing", stateOf(t, ts, id), "exports leave the document untouched")
}

func TestDocumentErrors(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp := do(t, http.MethodGet, ts.URL+"/api/documents/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	id := createDocument(t, ts)
	base := ts.URL + "/api/documents/" + id

	resp = do(t, http.MethodPost, base+"/generate", map[string]string{"document_type": "Pitch Deck"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/generate", map[string]string{"document_type": "Memo", "business_overview": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, base+"/text", map[string]string{"text": "too early"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/preview", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentUpstreamFailure(t *testing.T) {
	ts := newTestServer(t, brokenLLM{})
	id := createDocument(t, ts)

	resp := do(t, http.MethodPost, ts.URL+"/api/documents/"+id+"/generate", planFields)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var e errorResp
	decode(t, resp, &e)
	assert.True(t, strings.HasPrefix(e.Error, "An error occurred: "), e.Error)
	assert.Contains(t, e.Error, "rate limited")
	assert.Equal(t, "idle", stateOf(t, ts, id))
}

func TestFinanceAnalysis(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp := do(t, http.MethodPost, ts.URL+"/api/finance/analysis", map[string]any{
		"revenue": 1000, "expenses": 600, "assets": 2000, "liabilities": 0, "equity": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	decode(t, resp, &raw)
	ratios := raw["ratios"].(map[string]any)
	assert.Equal(t, "Infinity", ratios["current_ratio"])
	assert.Equal(t, "Infinity", ratios["debt_to_equity"])
	assert.Equal(t, "Base Case", raw["inputs"].(map[string]any)["scenario"])

	resp = do(t, http.MethodPost, ts.URL+"/api/finance/analysis", map[string]any{"revenue": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/api/finance/analysis", map[string]any{"scenario": "Nightmare"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFinanceCharts(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})
	inputs := map[string]any{"revenue": 1000, "expenses": 600, "assets": 2000, "liabilities": 500, "equity": 1500}

	for _, name := range []string{"revenue-expenses", "scenario"} {
		resp := do(t, http.MethodPost, ts.URL+"/api/finance/charts/"+name, inputs)
		require.Equal(t, http.StatusOK, resp.StatusCode, name)
		assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("\x89PNG")), name)
	}

	resp := do(t, http.MethodPost, ts.URL+"/api/finance/charts/pie", inputs)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFinanceTables(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp := do(t, http.MethodGet, ts.URL+"/api/finance/tables", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]string
	decode(t, resp, &raw)
	assert.Contains(t, raw["revenue"], "| 1 | £200,000 |")
	assert.Contains(t, raw["html"], "<table>")
}

func upload(t *testing.T, url, filename string, content []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMeetings(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp := upload(t, ts.URL+"/api/meetings", "standup.wav", []byte("RIFF...."))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var n notes.Notes
	decode(t, resp, &n)
	require.NotEmpty(t, n.ID)
	assert.Contains(t, n.Transcript, "standup.wav")
	assert.NotEmpty(t, n.Summary)

	resp = do(t, http.MethodGet, ts.URL+"/api/meetings/"+n.ID+"/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="meeting_summary.txt"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, n.Summary, string(readAll(t, resp)))

	resp = do(t, http.MethodGet, ts.URL+"/api/meetings/"+n.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = upload(t, ts.URL+"/api/meetings", "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/meetings/unknown/summary", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/meetings/live", nil)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestStaticIndex(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp := do(t, http.MethodGet, ts.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(readAll(t, resp)), "Business Document Generator")
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusOf(generator.ErrInvalidState))
	assert.Equal(t, http.StatusBadRequest, statusOf(notes.ErrUnsupportedAudio))
	assert.Equal(t, http.StatusGatewayTimeout, statusOf(context.DeadlineExceeded))
	assert.Equal(t, http.StatusBadGateway, statusOf(generator.ErrMissingAPIKey))
}
