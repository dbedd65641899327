package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders a pie chart, or a donut when opts.InnerRadius is set, with a
// legend below it. Negative values count as zero.
func Pie(size int, values []float64, labels []string, opts PieOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: at least one value required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	if size <= 0 {
		size = DefaultPieSize
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = defaultPalette
	}
	labelColor := fallback(opts.LabelColor, "#cbd5e1")

	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}

	legendHeight := float64(len(labels)) * legendRowHeight
	height := float64(size) + legendHeight + DefaultPadding/2
	cx, cy := float64(size)/2, float64(size)/2
	r := float64(size)/2 - 8
	inner := opts.InnerRadius
	if inner < 0 || inner >= r {
		inner = 0
	}

	titleID := makeID(opts.Title, "pie-title")
	descID := makeID(opts.Title, "pie-desc")

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %.0f\" role=\"img\" aria-labelledby=\"%s %s\">", size, height, titleID, descID)
	fmt.Fprintf(&b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Pie chart")))
	fmt.Fprintf(&b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Share of total")))

	if total <= 0 {
		fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-dasharray=\"4,4\"></circle>", cx, cy, r, labelColor)
	}

	angle := -math.Pi / 2
	for i, v := range values {
		if v <= 0 || total <= 0 {
			continue
		}
		color := colors[i%len(colors)]
		share := v / total
		label := template.HTMLEscapeString(labels[i])
		if share >= 1-1e-9 {
			// A single full slice cannot be drawn as an arc.
			fmt.Fprintf(&b, "<circle class=\"slice\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></circle>", cx, cy, r, color, label)
			angle += 2 * math.Pi
			continue
		}
		end := angle + share*2*math.Pi
		fmt.Fprintf(&b, "<path class=\"slice\" d=\"%s\" fill=\"%s\" aria-label=\"%s\"></path>", slicePath(cx, cy, r, angle, end), color, label)
		angle = end
	}
	if inner > 0 {
		fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#222c3b\"></circle>", cx, cy, inner)
	}

	for i, label := range labels {
		y := float64(size) + DefaultPadding/2 + float64(i)*legendRowHeight
		pct := 0.0
		if total > 0 && values[i] > 0 {
			pct = values[i] / total * 100
		}
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.0f\" height=\"%.0f\" fill=\"%s\"></rect>", 16.0, y-legendSwatchSize+1, legendSwatchSize, legendSwatchSize, colors[i%len(colors)])
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"12\" text-anchor=\"start\">%s (%.1f%%)</text>", 32.0, y, labelColor, template.HTMLEscapeString(label), pct)
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func slicePath(cx, cy, r, start, end float64) string {
	x1, y1 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f Z", cx, cy, x1, y1, r, r, large, x2, y2)
}
