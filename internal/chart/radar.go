package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/huntiq/lightcharts/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Radar Chart
// ════════════════════════════════════════════════════════════════════

// RadarOptions controls radar rendering.
type RadarOptions struct {
	Size       float64 // square canvas side (default: 260)
	Color      string  // fill/stroke color (default: first palette color)
	MaxValue   float64 // normalization ceiling; values are clamped to it (default: 100)
	ShowLabels bool    // axis labels beyond the outer radius
}

// DefaultRadarOptions returns sensible defaults for radar rendering.
func DefaultRadarOptions() RadarOptions {
	return RadarOptions{
		Size:       260,
		MaxValue:   100,
		ShowLabels: true,
	}
}

// minRadarAxes — fewer than three axes is not a polygon.
const minRadarAxes = 3

// RadarGeometry is the derived geometry for a radar chart.
type RadarGeometry struct {
	Points  []Point  // one vertex per dimension, clamped to the outer radius
	Polygon string   // closed data polygon path
	Rings   []string // concentric n-gon grid rings at 25/50/75/100% of radius
	Axes    []Point  // outer endpoint of each radial axis line
}

// BuildRadarGeometry places the dimensions evenly around a circle
// starting at −90°, step 360°/n. Each value is clamped to
// [0, maxValue] before scaling so an outlier cannot push its vertex
// past the outer radius. Returns an empty geometry for n < 3.
func BuildRadarGeometry(series models.Series, size, maxValue float64) RadarGeometry {
	g := RadarGeometry{}
	n := len(series)
	if n < minRadarAxes {
		return g
	}
	if maxValue <= 0 {
		maxValue = 100
	}

	cx := size / 2
	cy := size / 2
	radius := size/2 - 30 // room for axis labels

	step := 360.0 / float64(n)
	g.Points = make([]Point, n)
	g.Axes = make([]Point, n)
	var poly strings.Builder
	for i, p := range series {
		angle := degToRad(-90 + float64(i)*step)
		v := p.Value
		if v < 0 {
			v = 0
		}
		if v > maxValue {
			v = maxValue
		}
		r := v / maxValue * radius

		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		g.Points[i] = Point{X: x, Y: y, Name: p.Name, Value: p.Value}
		g.Axes[i] = Point{
			X:    cx + radius*math.Cos(angle),
			Y:    cy + radius*math.Sin(angle),
			Name: p.Name,
		}

		if i == 0 {
			poly.WriteString("M " + ftoa(x) + " " + ftoa(y))
		} else {
			poly.WriteString(" L " + ftoa(x) + " " + ftoa(y))
		}
	}
	poly.WriteString(" Z")
	g.Polygon = poly.String()

	// Grid rings are n-gons matching the axis layout, not circles.
	for ring := 1; ring <= 4; ring++ {
		rr := radius * float64(ring) / 4
		var sb strings.Builder
		for i := 0; i < n; i++ {
			angle := degToRad(-90 + float64(i)*step)
			x := cx + rr*math.Cos(angle)
			y := cy + rr*math.Sin(angle)
			if i == 0 {
				sb.WriteString("M " + ftoa(x) + " " + ftoa(y))
			} else {
				sb.WriteString(" L " + ftoa(x) + " " + ftoa(y))
			}
		}
		sb.WriteString(" Z")
		g.Rings = append(g.Rings, sb.String())
	}
	return g
}

// RadarChart renders a radar chart as a standalone SVG document.
// Fewer than three dimensions renders an explicit placeholder — a
// two-axis radar is not a polygon.
func RadarChart(series models.Series, opts RadarOptions) string {
	if opts.Size <= 0 {
		def := DefaultRadarOptions()
		def.Color = opts.Color
		if opts.MaxValue > 0 {
			def.MaxValue = opts.MaxValue
		}
		opts = def
	}
	if opts.Color == "" {
		opts.Color = PaletteColor(0, nil)
	}

	if len(series) < minRadarAxes {
		return emptySVG(opts.Size, opts.Size, "Minimum 3 points required")
	}

	g := BuildRadarGeometry(series, opts.Size, opts.MaxValue)
	cx := opts.Size / 2
	cy := opts.Size / 2

	var sb strings.Builder
	sb.WriteString(svgOpen(opts.Size, opts.Size))

	for _, ring := range g.Rings {
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="#e5e5e5"/>`, ring))
	}
	for _, ax := range g.Axes {
		sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e5e5"/>`,
			ftoa(cx), ftoa(cy), ftoa(ax.X), ftoa(ax.Y)))
	}

	sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"/>`,
		g.Polygon, opts.Color, opts.Color))

	if opts.ShowLabels {
		for _, ax := range g.Axes {
			if ax.Name == "" {
				continue
			}
			// Push the label a little beyond the axis endpoint.
			lx := cx + (ax.X-cx)*1.15
			ly := cy + (ax.Y-cy)*1.15
			sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="10" fill="#666" text-anchor="middle" dominant-baseline="middle">%s</text>`,
				ftoa(lx), ftoa(ly), escapeXML(truncate(ax.Name, 8))))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
