package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// competitiveRadar draws three competitor profiles on a 0..10 polar grid.
// Angles start at east and run counter-clockwise.
func competitiveRadar() (*plot.Plot, error) {
	categories := []string{"Product Quality", "Market Share", "Innovation", "Customer Service", "Price"}
	competitors := []struct {
		name   string
		scores []float64
		line   color.Color
		fill   color.Color
	}{
		{"Competitor 1", []float64{8, 7, 9, 6, 5}, blue, color.NRGBA{B: 0xff, A: 0x1a}},
		{"Competitor 2", []float64{6, 8, 7, 9, 6}, orange, color.NRGBA{R: 0xff, A: 0x1a}},
		{"Competitor 3", []float64{7, 6, 8, 7, 8}, green, color.NRGBA{G: 0x80, A: 0x1a}},
	}

	p := plot.New()
	p.HideAxes()
	p.X.Min, p.X.Max = -13, 13
	p.Y.Min, p.Y.Max = -12, 12

	n := len(categories)
	at := func(i int, r float64) plotter.XY {
		theta := float64(i) / float64(n) * 2 * math.Pi
		return plotter.XY{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}

	for _, r := range []float64{2, 4, 6, 8, 10} {
		ring := make(plotter.XYs, 0, 72)
		for a := 0; a < 72; a++ {
			theta := float64(a) / 72 * 2 * math.Pi
			ring = append(ring, plotter.XY{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
		}
		poly, err := plotter.NewPolygon(ring)
		if err != nil {
			return nil, err
		}
		poly.Color = nil
		poly.LineStyle.Color = grey
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	spokes := make(plotter.XYs, 0, n)
	spokeLabels := make([]string, 0, n)
	for i, name := range categories {
		spoke, err := plotter.NewLine(plotter.XYs{{}, at(i, 10)})
		if err != nil {
			return nil, err
		}
		spoke.Color = grey
		spoke.Width = vg.Points(0.5)
		p.Add(spoke)
		spokes = append(spokes, at(i, 11.2))
		spokeLabels = append(spokeLabels, name)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: spokes, Labels: spokeLabels})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	for _, c := range competitors {
		if len(c.scores) != n {
			return nil, fmt.Errorf("%s: %d scores for %d categories", c.name, len(c.scores), n)
		}
		pts := make(plotter.XYs, n)
		for i, s := range c.scores {
			pts[i] = at(i, s)
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return nil, err
		}
		poly.Color = c.fill
		poly.LineStyle.Color = c.line
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
		p.Legend.Add(c.name, poly)
	}
	p.Legend.Top = true
	return p, nil
}
