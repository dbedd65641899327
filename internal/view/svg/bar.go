package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders a grouped bar chart comparing two non-negative series.
func Bars(width, height int, seriesA, seriesB []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	if len(seriesA) != len(labels) || len(seriesB) != len(labels) {
		return "", fmt.Errorf("svg: series length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}

	axisColor := fallback(opts.AxisColor, "#6c757d")
	gridColor := fallback(opts.GridColor, "#2b3441")
	colorA := fallback(opts.ColorA, defaultPalette[0])
	colorB := fallback(opts.ColorB, defaultPalette[1])
	labelA := fallback(opts.SeriesALabel, "Series A")
	labelB := fallback(opts.SeriesBLabel, "Series B")

	// Leave room on the left for tick labels.
	left := padding * 2
	chartWidth := float64(width) - left - padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxVal := max(maxOf(seriesA), maxOf(seriesB))
	if maxVal <= 0 {
		maxVal = 1
	}
	scale := chartHeight / maxVal
	bottom := padding + chartHeight

	groupWidth := chartWidth / float64(len(labels))
	barWidth := groupWidth / 3

	titleID := makeID(opts.Title, "bar-title")
	descID := makeID(opts.Title, "bar-desc")

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID)
	fmt.Fprintf(&b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Bar chart")))
	fmt.Fprintf(&b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Grouped bar comparison")))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		y := bottom - ratio*chartHeight
		fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", left, y, left+chartWidth, y, gridColor)
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", left-6, y+4, axisColor, template.HTMLEscapeString(formatTick(maxVal*ratio)))
	}

	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", left, bottom, left+chartWidth, bottom, axisColor)

	for i, label := range labels {
		baseX := left + float64(i)*groupWidth
		ha := barHeight(seriesA[i], scale, chartHeight)
		hb := barHeight(seriesB[i], scale, chartHeight)
		fmt.Fprintf(&b, "<rect class=\"bar bar-a\" x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", baseX+barWidth*0.4, bottom-ha, barWidth, ha, colorA, template.HTMLEscapeString(labelA), template.HTMLEscapeString(label))
		fmt.Fprintf(&b, "<rect class=\"bar bar-b\" x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", baseX+barWidth*1.6, bottom-hb, barWidth, hb, colorB, template.HTMLEscapeString(labelB), template.HTMLEscapeString(label))
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", baseX+groupWidth/2, bottom+16, axisColor, template.HTMLEscapeString(label))
	}

	// Legend
	legendY := padding - 12
	if legendY < 12 {
		legendY = 12
	}
	legendX := left
	for _, item := range [][2]string{{colorA, labelA}, {colorB, labelB}} {
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.0f\" height=\"%.0f\" fill=\"%s\"></rect>", legendX, legendY-8, legendSwatchSize, legendSwatchSize, item[0])
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", legendX+14, legendY, axisColor, template.HTMLEscapeString(item[1]))
		legendX += 90
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func barHeight(value, scale, limit float64) float64 {
	h := value * scale
	if h < 0 {
		return 0
	}
	if h > limit {
		return limit
	}
	return h
}

func maxOf(series []float64) float64 {
	m := 0.0
	for _, v := range series {
		if v > m {
			m = v
		}
	}
	return m
}
