package server

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"business_document_generator/charts"
	"business_document_generator/export"
	"business_document_generator/generator"
	"business_document_generator/notes"
)

//go:embed web/dist
var embeddedStatic embed.FS

// Options wires the server to its collaborators.
type Options struct {
	Assembler       *generator.Assembler
	Exporter        *export.Exporter
	Notes           *notes.Taker
	Logger          *zap.Logger
	GenerateTimeout time.Duration
	MaxUploadBytes  int64
}

type Server struct {
	assembler  *generator.Assembler
	exporter   *export.Exporter
	taker      *notes.Taker
	renderer   *charts.Renderer
	logger     *zap.Logger
	genTimeout time.Duration
	maxUpload  int64

	store    *sessionStore
	meetings *notes.Store
	staticFS http.Handler
}

func New(opts Options) (*Server, error) {
	if opts.Assembler == nil {
		return nil, errors.New("generator assembler required")
	}
	if opts.Exporter == nil {
		return nil, errors.New("exporter required")
	}
	if opts.Notes == nil {
		return nil, errors.New("note taker required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.GenerateTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 25 << 20
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		assembler:  opts.Assembler,
		exporter:   opts.Exporter,
		taker:      opts.Notes,
		renderer:   charts.NewRenderer(),
		logger:     logger,
		genTimeout: timeout,
		maxUpload:  maxUpload,
		store:      newStore(),
		meetings:   notes.NewStore(),
		staticFS:   http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/options", s.handleOptions)

	mux.HandleFunc("POST /api/documents", s.handleDocumentCreate)
	mux.HandleFunc("GET /api/documents/{id}", s.handleDocumentGet)
	mux.HandleFunc("POST /api/documents/{id}/generate", s.handleDocumentGenerate)
	mux.HandleFunc("PUT /api/documents/{id}/text", s.handleDocumentEdit)
	mux.HandleFunc("GET /api/documents/{id}/export/{format}", s.handleDocumentExport)
	mux.HandleFunc("GET /api/documents/{id}/preview", s.handleDocumentPreview)
	mux.HandleFunc("GET /api/documents/{id}/charts/{index}", s.handleDocumentChart)

	mux.HandleFunc("POST /api/finance/analysis", s.handleFinanceAnalysis)
	mux.HandleFunc("POST /api/finance/charts/{name}", s.handleFinanceChart)
	mux.HandleFunc("GET /api/finance/tables", s.handleFinanceTables)

	mux.HandleFunc("POST /api/meetings", s.handleMeetingCreate)
	mux.HandleFunc("GET /api/meetings/live", s.handleMeetingLive)
	mux.HandleFunc("GET /api/meetings/{id}", s.handleMeetingGet)
	mux.HandleFunc("GET /api/meetings/{id}/summary", s.handleMeetingSummary)

	mux.Handle("/", s.staticHandler())
	return logMiddleware(s.logger, mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		s.staticFS.ServeHTTP(w, r)
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, optionsResp{
		Options:       generator.FormOptions(),
		Scenarios:     financeScenarios(),
		ExportFormats: []string{string(export.FormatDOCX), string(export.FormatPDF)},
	})
}

type optionsResp struct {
	generator.Options
	Scenarios     []string `json:"scenarios"`
	ExportFormats []string `json:"export_formats"`
}
