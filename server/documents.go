package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"business_document_generator/charts"
	"business_document_generator/export"
	"business_document_generator/generator"
)

type editReq struct {
	Text string `json:"text"`
}

func (s *Server) session(r *http.Request) (*generator.Session, error) {
	id := r.PathValue("id")
	sess, ok := s.store.get(id)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, errNotFound)
	}
	return sess, nil
}

func (s *Server) handleDocumentCreate(w http.ResponseWriter, r *http.Request) {
	id := newID()
	sess := generator.NewSession(id, s.assembler)
	s.store.set(id, sess)
	s.logger.Debug("session created", zap.String("session", id))
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleDocumentGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// handleDocumentGenerate runs a full generation (or regeneration) and answers
// with the assembled document; on failure nothing partial is returned.
func (s *Server) handleDocumentGenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var fields generator.FieldSet
	if err := decodeJSON(r, &fields); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.genTimeout)
	defer cancel()
	if _, err := sess.Generate(ctx, fields); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDocumentEdit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req editReq
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.Edit(req.Text); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDocumentExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := sess.Export(func(text string, reqs []charts.Request) ([]byte, error) {
		return s.exporter.Export(format, text, reqs)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, _ := sess.Document()
	writeFile(w, format.ContentType(), export.FileName(doc.Fields.Type.FileBase(), format), body)
}

func (s *Server) handleDocumentPreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, ok := sess.Document(); !ok {
		s.writeError(w, r, generator.ErrInvalidState)
		return
	}
	html, err := export.HTML(sess.Text())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, "text/html; charset=utf-8", "", []byte(html))
}

func (s *Server) handleDocumentChart(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	reqs := sess.Charts()
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || idx < 0 || idx >= len(reqs) {
		s.writeError(w, r, fmt.Errorf("chart %q: %w", r.PathValue("index"), errNotFound))
		return
	}
	png, err := s.renderer.PNG(reqs[idx].Kind)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("render chart: %w", err))
		return
	}
	writeFile(w, "image/png", "", png)
}
