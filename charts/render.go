package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	blue   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	orange = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	green  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	red    = color.RGBA{R: 0xb2, G: 0x22, B: 0x22, A: 0xff}
	grey   = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

	royalBlue = color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}
)

// Series is one named line on a categorical x axis.
type Series struct {
	Name   string
	Values []float64
	Color  color.Color
	Dashed bool
}

// Renderer turns chart kinds into PNG images.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer with a 6.4in x 4.8in canvas.
func NewRenderer() *Renderer {
	return &Renderer{Width: 6.4 * vg.Inch, Height: 4.8 * vg.Inch}
}

// Plot builds the figure for kind. KindUnknown yields an empty figure.
func (r *Renderer) Plot(kind Kind) (*plot.Plot, error) {
	switch kind {
	case MarketShareOverTime:
		return LinePlot("", "Years", "Market Share (%)", years(5), []Series{
			{Values: []float64{10, 20, 30, 45, 60}, Color: blue},
		})
	case CompetitiveAnalysis:
		return competitiveRadar()
	case MilestoneTimeline:
		return BarPlot("", "Months", "",
			[]string{"Setup", "R&D", "Launch", "Market Expansion", "Consolidation"},
			[]float64{2, 6, 12, 24, 36}, color.RGBA{R: 0xff, G: 0xa5, A: 0xff}, true)
	case RevenueVsExpenses:
		return LinePlot("", "Years", "Amount (£)", years(5), []Series{
			{Name: "Revenue", Values: []float64{200, 400, 600, 800, 1000}, Color: blue},
			{Name: "Expenses", Values: []float64{150, 300, 500, 700, 850}, Color: orange, Dashed: true},
		})
	case CashFlowForecast:
		inflow := []float64{1000, 1500, 1800, 2000, 2200, 2500, 2700, 2900, 3000, 3200, 3400, 3500}
		outflow := []float64{800, 900, 1000, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000}
		balance := make([]float64, len(inflow))
		for i := range inflow {
			balance[i] = inflow[i] - outflow[i]
		}
		months := make([]string, len(inflow))
		for i := range months {
			months[i] = fmt.Sprintf("Month %d", i+1)
		}
		return LinePlot("", "Months", "Amount (£)", months, []Series{
			{Name: "Cash Inflow", Values: inflow, Color: blue},
			{Name: "Cash Outflow", Values: outflow, Color: orange},
			{Name: "Cash Balance", Values: balance, Color: green, Dashed: true},
		})
	case OrganizationalStructure:
		return BarPlot("", "Management Level", "",
			[]string{"CEO", "CTO", "CFO", "COO", "CMO"},
			[]float64{1, 2, 2, 3, 3}, color.RGBA{G: 0x80, B: 0x80, A: 0xff}, true)
	case ProductDevelopmentRoadmap:
		return BarPlot("", "Development Stages", "Time (Months)",
			[]string{"Concept", "Development", "Testing", "Launch", "Post-Launch"},
			[]float64{2, 5, 3, 2, 6}, color.RGBA{R: 0x80, B: 0x80, A: 0xff}, false)
	default:
		return plot.New(), nil
	}
}

// Render writes the PNG for kind to w.
func (r *Renderer) Render(w io.Writer, kind Kind) error {
	p, err := r.Plot(kind)
	if err != nil {
		return fmt.Errorf("chart %s: %w", kind, err)
	}
	return r.Encode(w, p)
}

// PNG renders kind into memory.
func (r *Renderer) PNG(kind Kind) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, kind); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTemp renders kind into a fresh file under dir ("" means os.TempDir)
// and returns its path. The caller removes the file.
func (r *Renderer) WriteTemp(dir string, kind Kind) (string, error) {
	f, err := os.CreateTemp(dir, kind.Slug()+"-*.png")
	if err != nil {
		return "", err
	}
	if err := r.Render(f, kind); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// Encode writes p as PNG using the renderer's canvas size.
func (r *Renderer) Encode(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// LinePlot draws each series with circle markers over categorical labels.
func LinePlot(title, xLabel, yLabel string, labels []string, series []Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	named := false
	for _, s := range series {
		pts := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		l, sc, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		l.Color = s.Color
		l.Width = vg.Points(1.5)
		if s.Dashed {
			l.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		}
		sc.Color = s.Color
		sc.Shape = draw.CircleGlyph{}
		sc.Radius = vg.Points(3)
		p.Add(l, sc)
		if s.Name != "" {
			p.Legend.Add(s.Name, l, sc)
			named = true
		}
	}
	if named {
		p.Legend.Top = true
	}
	p.NominalX(labels...)
	return p, nil
}

// BarPlot draws one bar per label; horizontal bars list labels on the y axis.
func BarPlot(title, xLabel, yLabel string, labels []string, values []float64, c color.Color, horizontal bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(28))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	bars.Horizontal = horizontal
	p.Add(bars)
	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return p, nil
}

func years(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Year %d", i+1)
	}
	return out
}
