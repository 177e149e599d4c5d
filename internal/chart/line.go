package chart

import (
	"fmt"
	"strings"

	"github.com/huntiq/lightcharts/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Line / Area Chart
// ════════════════════════════════════════════════════════════════════

// LineOptions controls line/area rendering.
type LineOptions struct {
	Width    float64  // canvas width (default: 600)
	Height   float64  // canvas height (default: 300)
	Padding  float64  // inner margin so labels and markers are not clipped (default: 20)
	Color    string   // stroke color (default: first palette color)
	ShowGrid bool     // horizontal grid lines at 0/25/50/75/100% of plot height
	ShowDots bool     // 4px point markers with tooltips
	ShowArea bool     // semi-transparent fill down to the baseline
}

// DefaultLineOptions returns sensible defaults for line rendering.
func DefaultLineOptions() LineOptions {
	return LineOptions{
		Width:    600,
		Height:   300,
		Padding:  20,
		ShowGrid: true,
		ShowDots: true,
	}
}

// maxInlineLabels is the point count above which x-axis labels are
// thinned to every other point to avoid overlap.
const maxInlineLabels = 7

// LineChart renders a line (or area) chart as a standalone SVG
// document. Fewer than two points renders the "No data" placeholder.
func LineChart(series models.Series, opts LineOptions) string {
	if opts.Width <= 0 {
		def := DefaultLineOptions()
		def.Color = opts.Color
		def.ShowArea = opts.ShowArea
		opts = def
	}
	if opts.Color == "" {
		opts.Color = PaletteColor(0, nil)
	}

	g := BuildLineGeometry(series, opts.Width, opts.Height, opts.Padding)
	if g.LinePath == "" {
		return emptySVG(opts.Width, opts.Height, "No data")
	}

	var sb strings.Builder
	sb.WriteString(svgOpen(opts.Width, opts.Height))

	if opts.ShowGrid {
		writeHorizontalGrid(&sb, opts.Width, opts.Height, opts.Padding)
	}

	if opts.ShowArea {
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" opacity="0.15"/>`,
			g.AreaPath, opts.Color))
	}

	sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`,
		g.LinePath, opts.Color))

	if opts.ShowDots {
		for _, pt := range g.Points {
			sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="4" fill="%s"><title>%s: %s</title></circle>`,
				ftoa(pt.X), ftoa(pt.Y), opts.Color, escapeXML(pt.Name), ftoa(pt.Value)))
		}
	}

	// X-axis labels, thinned to every other point past the threshold.
	step := 1
	if len(g.Points) > maxInlineLabels {
		step = 2
	}
	for i := 0; i < len(g.Points); i += step {
		pt := g.Points[i]
		if pt.Name == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="10" fill="#666" text-anchor="middle">%s</text>`,
			ftoa(pt.X), ftoa(opts.Height-opts.Padding+15), escapeXML(truncate(pt.Name, 6))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writeHorizontalGrid draws grid lines at 0/25/50/75/100% of the plot
// height.
func writeHorizontalGrid(sb *strings.Builder, width, height, padding float64) {
	plotH := height - 2*padding
	for i := 0; i <= 4; i++ {
		y := padding + plotH*float64(i)/4
		sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e5e5" stroke-dasharray="3,3"/>`,
			ftoa(padding), ftoa(y), ftoa(width-padding), ftoa(y)))
	}
}
