package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarsProducesSVG(t *testing.T) {
	html, err := Bars(600, 280, []float64{4000, 3500}, []float64{1200, 2100}, []string{"01 Sep", "02 Sep"}, BarOpts{
		Title:        "Vaccination Coverage",
		SeriesALabel: "Dose 1",
		SeriesBLabel: "Dose 2",
	})
	require.NoError(t, err)

	out := string(html)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 4, strings.Count(out, "<rect class=\"bar"))
	assert.Contains(t, out, "Dose 1")
	assert.Contains(t, out, "02 Sep")
	assert.Contains(t, out, "4.0k")
	assert.Contains(t, out, `id="vaccination-coverage-bar-title"`)
}

func TestBarsEscapesLabels(t *testing.T) {
	html, err := Bars(0, 0, []float64{1}, []float64{2}, []string{"<b>x</b>"}, BarOpts{})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<b>")
	assert.Contains(t, string(html), "&lt;b&gt;")
}

func TestBarsValidation(t *testing.T) {
	_, err := Bars(100, 100, nil, nil, nil, BarOpts{})
	assert.Error(t, err)

	_, err = Bars(100, 100, []float64{1, 2}, []float64{1}, []string{"a", "b"}, BarOpts{})
	assert.Error(t, err)

	_, err = Bars(10, 10, []float64{1}, []float64{1}, []string{"a"}, BarOpts{Padding: 20})
	assert.Error(t, err)
}

func TestBarsAllZero(t *testing.T) {
	html, err := Bars(400, 200, []float64{0, 0}, []float64{0, 0}, []string{"a", "b"}, BarOpts{})
	require.NoError(t, err)
	assert.Contains(t, string(html), `height="0.00"`)
}

func TestPieProducesSlices(t *testing.T) {
	html, err := Pie(300, []float64{1000, 780, 20}, []string{"Male", "Female", "Others"}, PieOpts{
		Title:  "Vaccination by gender",
		Colors: []string{"#f54394", "#5a8dee", "#2cc6c6"},
	})
	require.NoError(t, err)

	out := string(html)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 3, strings.Count(out, "class=\"slice\""))
	assert.Contains(t, out, "Male (55.6%)")
	assert.Contains(t, out, "Others (1.1%)")
	assert.Contains(t, out, "#f54394")
}

func TestPieSingleAndZeroSlices(t *testing.T) {
	html, err := Pie(200, []float64{5, 0}, []string{"All", "None"}, PieOpts{InnerRadius: 40})
	require.NoError(t, err)
	out := string(html)
	assert.Equal(t, 1, strings.Count(out, "<circle class=\"slice\""))
	assert.Contains(t, out, "None (0.0%)")

	html, err = Pie(200, []float64{0, 0}, []string{"a", "b"}, PieOpts{})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "class=\"slice\"")
}

func TestPieValidation(t *testing.T) {
	_, err := Pie(100, nil, nil, PieOpts{})
	assert.Error(t, err)

	_, err = Pie(100, []float64{1}, []string{"a", "b"}, PieOpts{})
	assert.Error(t, err)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0", formatTick(0))
	assert.Equal(t, "12.50", formatTick(12.5))
	assert.Equal(t, "2.5M", formatTick(2_500_000))
	assert.Equal(t, "chart-x", makeID("  ", "x"))
}
