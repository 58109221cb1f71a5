package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"business_document_generator/charts"
)

// PDF writes the text across A4 pages, then one page per chart. Every page
// carries the title header and a page-number footer.
func (e *Exporter) PDF(text string, reqs []charts.Request) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	title := ToWindows1252(e.title)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.SetAutoPageBreak(true, 15)

	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, ToWindows1252(text), "", "", false)

	pageW, _ := pdf.GetPageSize()
	for _, req := range reqs {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, ToWindows1252(req.Title), "", 1, "C", false, 0, "")
		if err := e.addImage(pdf, req.Kind, pageW-20); err != nil {
			return nil, err
		}
		e.logger.Debug("pdf chart embedded", zap.Stringer("kind", req.Kind))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) addImage(pdf *fpdf.Fpdf, kind charts.Kind, width float64) error {
	path, cleanup, err := e.chartFile(kind)
	if err != nil {
		return err
	}
	defer cleanup()

	pdf.ImageOptions(path, 10, 0, width, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return pdf.Error()
}
