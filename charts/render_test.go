package charts

import (
	"bytes"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEveryKind(t *testing.T) {
	r := NewRenderer()
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			data, err := r.PNG(k)
			require.NoError(t, err)
			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Greater(t, img.Bounds().Dx(), 0)
		})
	}
}

func TestRenderUnknownIsEmptyFigure(t *testing.T) {
	data, err := NewRenderer().PNG(ParseKind("Pie Of The Month"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, CashFlowForecast, ParseKind(" cash flow forecast "))
	assert.Equal(t, KindUnknown, ParseKind(""))
	assert.Equal(t, "Market_Share_Over_Time", MarketShareOverTime.Slug())
}

func TestWriteTemp(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer()

	a, err := r.WriteTemp(dir, MilestoneTimeline)
	require.NoError(t, err)
	b, err := r.WriteTemp(dir, MilestoneTimeline)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "concurrent exports must not share a file")

	st, err := os.Stat(a)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))
}

func TestFinanceCharts(t *testing.T) {
	r := NewRenderer()

	bar, err := RevenueExpensesBar(1000, 400)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf, bar))
	assert.NotZero(t, buf.Len())

	lines, err := ScenarioLines([]string{"Base Case", "Best Case", "Worst Case"},
		[]float64{600, 720, 480}, []float64{100, 120, 80})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, r.Encode(&buf, lines))
	assert.NotZero(t, buf.Len())
}
