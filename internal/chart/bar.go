package chart

import (
	"fmt"
	"strings"

	"github.com/huntiq/lightcharts/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Bar Chart
// ════════════════════════════════════════════════════════════════════

// BarOptions controls bar rendering.
type BarOptions struct {
	Width      float64  // canvas width (default: 600)
	Height     float64  // canvas height (default: 300)
	Padding    float64  // inner margin (default: 20)
	Colors     []string // per-bar palette, cycled by index (default: DefaultPalette)
	ShowGrid   bool     // grid lines perpendicular to the bars
	Horizontal bool     // bars grow left-to-right instead of bottom-up
}

// DefaultBarOptions returns sensible defaults for bar rendering.
func DefaultBarOptions() BarOptions {
	return BarOptions{
		Width:    600,
		Height:   300,
		Padding:  20,
		ShowGrid: true,
	}
}

// barGap is the cross-axis gap between adjacent bars in pixels.
const barGap = 4.0

// minBarLength keeps near-zero bars visible.
const minBarLength = 2.0

// minBarThickness keeps crowded bars from going negative after the
// gap is subtracted (a negative rect dimension is invalid SVG).
const minBarThickness = 1.0

// Bar is the computed rectangle for one data point.
type Bar struct {
	X, Y          float64
	Width, Height float64
	Name          string
	Value         float64
	Percentage    float64 // value relative to the series max, 0..100
	Color         string
}

// BuildBars computes per-bar rectangle geometry. Bar length along the
// value axis is value/maxValue of the plot span; thickness along the
// cross axis is span/n minus a 4px gap. Lengths are floored at 2px so
// near-zero values stay visible. Returns nil for an empty series or a
// series whose maximum is not positive.
func BuildBars(series models.Series, opts BarOptions) []Bar {
	maxValue := series.MaxValue()
	if len(series) == 0 || maxValue <= 0 {
		return nil
	}

	n := float64(len(series))
	plotW := opts.Width - 2*opts.Padding
	plotH := opts.Height - 2*opts.Padding

	bars := make([]Bar, len(series))
	for i, p := range series {
		pct := p.Value / maxValue * 100
		color := p.Color
		if color == "" {
			color = PaletteColor(i, opts.Colors)
		}

		b := Bar{Name: p.Name, Value: p.Value, Percentage: pct, Color: color}
		if opts.Horizontal {
			thickness := plotH/n - barGap
			if thickness < minBarThickness {
				thickness = minBarThickness
			}
			length := pct / 100 * plotW
			if length < minBarLength {
				length = minBarLength
			}
			b.X = opts.Padding
			b.Y = opts.Padding + float64(i)*(plotH/n) + barGap/2
			b.Width = length
			b.Height = thickness
		} else {
			thickness := plotW/n - barGap
			if thickness < minBarThickness {
				thickness = minBarThickness
			}
			length := pct / 100 * plotH
			if length < minBarLength {
				length = minBarLength
			}
			b.X = opts.Padding + float64(i)*(plotW/n) + barGap/2
			b.Y = opts.Height - opts.Padding - length
			b.Width = thickness
			b.Height = length
		}
		bars[i] = b
	}
	return bars
}

// BarChart renders a vertical or horizontal bar chart as a standalone
// SVG document. An empty series renders the "No data" placeholder.
func BarChart(series models.Series, opts BarOptions) string {
	if opts.Width <= 0 {
		def := DefaultBarOptions()
		def.Colors = opts.Colors
		def.Horizontal = opts.Horizontal
		opts = def
	}

	bars := BuildBars(series, opts)
	if bars == nil {
		return emptySVG(opts.Width, opts.Height, "No data")
	}

	var sb strings.Builder
	sb.WriteString(svgOpen(opts.Width, opts.Height))

	if opts.ShowGrid {
		if opts.Horizontal {
			writeVerticalGrid(&sb, opts.Width, opts.Height, opts.Padding)
		} else {
			writeHorizontalGrid(&sb, opts.Width, opts.Height, opts.Padding)
		}
	}

	for _, b := range bars {
		sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s: %s</title></rect>`,
			ftoa(b.X), ftoa(b.Y), ftoa(b.Width), ftoa(b.Height), b.Color,
			escapeXML(b.Name), ftoa(b.Value)))
	}

	// Axis labels under the bars, vertical mode only.
	if !opts.Horizontal {
		for _, b := range bars {
			if b.Name == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="10" fill="#666" text-anchor="middle">%s</text>`,
				ftoa(b.X+b.Width/2), ftoa(opts.Height-opts.Padding+15), escapeXML(truncate(b.Name, 4))))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writeVerticalGrid draws grid lines at 0/25/50/75/100% of the plot
// width, for horizontal bar orientation.
func writeVerticalGrid(sb *strings.Builder, width, height, padding float64) {
	plotW := width - 2*padding
	for i := 0; i <= 4; i++ {
		x := padding + plotW*float64(i)/4
		sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e5e5" stroke-dasharray="3,3"/>`,
			ftoa(x), ftoa(padding), ftoa(x), ftoa(height-padding)))
	}
}
