package server

import (
	"bytes"
	"fmt"
	"net/http"

	"business_document_generator/export"
	"business_document_generator/finance"
)

type tablesResp struct {
	finance.Tables
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

func financeScenarios() []string {
	return append([]string(nil), finance.Scenarios...)
}

func (s *Server) analyze(r *http.Request) (finance.Analysis, error) {
	var in finance.Inputs
	if err := decodeJSON(r, &in); err != nil {
		return finance.Analysis{}, err
	}
	a, err := finance.Analyze(in)
	if err != nil {
		return finance.Analysis{}, badRequest(err)
	}
	return a, nil
}

func (s *Server) handleFinanceAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := s.analyze(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleFinanceChart(w http.ResponseWriter, r *http.Request) {
	a, err := s.analyze(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := r.PathValue("name")
	p, ok, err := finance.Figure(a, name)
	if !ok {
		s.writeError(w, r, fmt.Errorf("chart %q: %w", name, errNotFound))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := s.renderer.Encode(&buf, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, "image/png", "", buf.Bytes())
}

func (s *Server) handleFinanceTables(w http.ResponseWriter, r *http.Request) {
	t := finance.FinancialTables()
	md := t.Markdown()
	html, err := export.HTML(md)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tablesResp{Tables: t, Markdown: md, HTML: html})
}
