package svg

// BarOpts customises the grouped bar chart renderer.
type BarOpts struct {
	Title        string
	Description  string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
}

// PieOpts customises the pie chart renderer. Colors are applied to slices
// in order and wrap around.
type PieOpts struct {
	Title       string
	Description string
	Colors      []string
	LabelColor  string
	InnerRadius float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth     = 720
	DefaultHeight    = 300
	DefaultPieSize   = 320
	DefaultPadding   = 32.0
	DefaultTicks     = 5
	legendRowHeight  = 18.0
	legendSwatchSize = 10.0
)

var defaultPalette = []string{"#5a8dee", "#f54394", "#2cc6c6", "#a3df9f", "#64c2a6", "#2d87bb"}
