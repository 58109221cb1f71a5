package export

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"
	"go.uber.org/zap"

	"business_document_generator/charts"
)

const emuPerInch = 914400

// DOCX writes a title heading, the text one paragraph per line, then each
// chart under its own heading.
func (e *Exporter) DOCX(text string, reqs []charts.Request) ([]byte, error) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText(e.title).Bold().Size("40")
	for _, line := range strings.Split(text, "\n") {
		w.AddParagraph().AddText(line)
	}

	for _, req := range reqs {
		w.AddParagraph().AddText(req.Title).Bold().Size("32")
		if err := e.addPicture(w, req.Kind); err != nil {
			return nil, err
		}
		e.logger.Debug("docx chart embedded", zap.Stringer("kind", req.Kind))
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) addPicture(w *docx.Docx, kind charts.Kind) error {
	path, cleanup, err := e.chartFile(kind)
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := w.AddParagraph().AddInlineDrawingFrom(path)
	if err != nil {
		return err
	}
	if len(run.Children) == 0 {
		return nil
	}
	d, ok := run.Children[0].(*docx.Drawing)
	if !ok || d.Inline == nil || d.Inline.Extent == nil || d.Inline.Extent.CX == 0 {
		return nil
	}
	cx := int64(e.imageWidth * emuPerInch)
	cy := d.Inline.Extent.CY * cx / d.Inline.Extent.CX
	d.Inline.Size(cx, cy)
	return nil
}
