// Package export renders an assembled document and its chart requests into
// downloadable DOCX and PDF buffers, and into an HTML preview.
package export

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"business_document_generator/charts"
)

// ErrUnknownFormat is returned for formats other than docx and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is a downloadable document format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "docx" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// FileName joins a base name and the format extension.
func FileName(base string, f Format) string {
	return base + "." + string(f)
}

// Settings configures an Exporter.
type Settings struct {
	Title            string
	TempDir          string
	ImageWidthInches float64
	Logger           *zap.Logger
}

// Exporter writes documents with freshly rendered chart images.
type Exporter struct {
	title      string
	tempDir    string
	imageWidth float64
	renderer   *charts.Renderer
	logger     *zap.Logger
}

func New(s Settings) *Exporter {
	e := &Exporter{
		title:      s.Title,
		tempDir:    s.TempDir,
		imageWidth: s.ImageWidthInches,
		renderer:   charts.NewRenderer(),
		logger:     s.Logger,
	}
	if e.title == "" {
		e.title = "Business Document"
	}
	if e.imageWidth <= 0 {
		e.imageWidth = 5
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Export dispatches to the writer for f.
func (e *Exporter) Export(f Format, text string, reqs []charts.Request) ([]byte, error) {
	switch f {
	case FormatDOCX:
		return e.DOCX(text, reqs)
	case FormatPDF:
		return e.PDF(text, reqs)
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// chartFile renders kind to a temp file; the returned func removes it.
func (e *Exporter) chartFile(kind charts.Kind) (string, func(), error) {
	path, err := e.renderer.WriteTemp(e.tempDir, kind)
	if err != nil {
		return "", nil, fmt.Errorf("render chart %s: %w", kind, err)
	}
	return path, func() {
		if err := removeFile(path); err != nil {
			e.logger.Warn("temp chart not removed", zap.String("path", path), zap.Error(err))
		}
	}, nil
}
