package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"business_document_generator/notes"
)

func (s *Server) handleMeetingCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, &statusError{status: http.StatusRequestEntityTooLarge, err: err})
			return
		}
		s.writeError(w, r, badRequest(fmt.Errorf("audio upload: %w", err)))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), s.genTimeout)
	defer cancel()
	n, err := s.taker.Process(ctx, header.Filename, file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n.ID = newID()
	s.meetings.Put(n)
	s.logger.Debug("meeting stored", zap.String("meeting", n.ID))
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) meeting(r *http.Request) (notes.Notes, error) {
	id := r.PathValue("id")
	n, ok := s.meetings.Get(id)
	if !ok {
		return notes.Notes{}, fmt.Errorf("meeting %q: %w", id, errNotFound)
	}
	return n, nil
}

func (s *Server) handleMeetingGet(w http.ResponseWriter, r *http.Request) {
	n, err := s.meeting(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleMeetingSummary(w http.ResponseWriter, r *http.Request) {
	n, err := s.meeting(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, "text/plain; charset=utf-8", notes.SummaryFileName, []byte(n.Summary))
}

// Live recording is announced in the UI but not available yet.
func (s *Server) handleMeetingLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, errorResp{Error: "live meeting recording is coming soon"})
}
