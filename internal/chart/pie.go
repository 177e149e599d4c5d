package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/huntiq/lightcharts/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Pie / Donut Chart
// ════════════════════════════════════════════════════════════════════

// PieOptions controls pie/donut rendering.
type PieOptions struct {
	Size        float64  // square canvas side (default: 240)
	InnerRadius float64  // 0..1 fraction of the outer radius; 0 = pie, >0 = donut
	Colors      []string // slice palette, cycled by index (default: DefaultPalette)
	ShowLabels  bool     // percentage labels on slices above the 8% threshold
	ShowTooltip bool     // embed <title> tooltips (name, value, percentage)
}

// DefaultPieOptions returns sensible defaults for pie rendering.
func DefaultPieOptions() PieOptions {
	return PieOptions{
		Size:        240,
		ShowLabels:  true,
		ShowTooltip: true,
	}
}

// labelThreshold is the percentage below which slice labels are
// suppressed — smaller slices cannot fit a legible label.
const labelThreshold = 8.0

// Slice is the computed geometry for one pie/donut segment.
// StartAngle and EndAngle are absolute degrees from 12 o'clock at −90°,
// increasing clockwise; slices are contiguous in input order.
type Slice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Path       string  `json:"path"`
	Color      string  `json:"color"`
	LabelX     float64 `json:"label_x"`
	LabelY     float64 `json:"label_y"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

// BuildPieSlices computes slice geometry for a series. The angular
// sweep of each slice is value/total·360°; a running angle keeps slices
// contiguous. Returns nil when the series is empty or sums to zero.
func BuildPieSlices(series models.Series, size, innerRadius float64, palette []string) []Slice {
	total := series.Total()
	if len(series) == 0 || total <= 0 {
		return nil
	}

	cx := size / 2
	cy := size / 2
	radius := size / 2
	inner := radius * innerRadius

	slices := make([]Slice, 0, len(series))
	currentAngle := -90.0 // 12 o'clock, clockwise
	for i, p := range series {
		sweep := p.Value / total * 360
		start := currentAngle
		end := currentAngle + sweep
		currentAngle = end

		color := p.Color
		if color == "" {
			color = PaletteColor(i, palette)
		}

		mid := degToRad((start + end) / 2)
		labelR := radius * 0.6
		if inner > 0 {
			labelR = (radius + inner) / 2
		}

		slices = append(slices, Slice{
			Name:       p.Name,
			Value:      p.Value,
			Percentage: p.Value / total * 100,
			Path:       slicePath(cx, cy, radius, inner, start, end),
			Color:      color,
			LabelX:     cx + labelR*math.Cos(mid),
			LabelY:     cy + labelR*math.Sin(mid),
			StartAngle: start,
			EndAngle:   end,
		})
	}
	return slices
}

// slicePath builds the SVG path for one segment. A full pie slice is a
// center-anchored wedge; a donut slice walks the outer arc clockwise,
// lines to the inner radius, and returns along the inner arc reversed.
// The large-arc flag is set when the sweep exceeds 180°.
func slicePath(cx, cy, radius, inner, start, end float64) string {
	startRad := degToRad(start)
	endRad := degToRad(end)

	x1 := cx + radius*math.Cos(startRad)
	y1 := cy + radius*math.Sin(startRad)
	x2 := cx + radius*math.Cos(endRad)
	y2 := cy + radius*math.Sin(endRad)

	// A slice sweeping the full circle has coincident arc endpoints,
	// which SVG collapses to nothing. Draw it as two half arcs instead
	// (inner ring counterclockwise so the winding rule cuts the hole).
	if end-start >= 360-1e-9 {
		xm := cx + radius*math.Cos(startRad+math.Pi)
		ym := cy + radius*math.Sin(startRad+math.Pi)
		r := ftoa(radius)
		outer := fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
			ftoa(x1), ftoa(y1), r, r, ftoa(xm), ftoa(ym),
			r, r, ftoa(x1), ftoa(y1))
		if inner <= 0 {
			return outer
		}
		ix1 := cx + inner*math.Cos(startRad)
		iy1 := cy + inner*math.Sin(startRad)
		ixm := cx + inner*math.Cos(startRad+math.Pi)
		iym := cy + inner*math.Sin(startRad+math.Pi)
		ir := ftoa(inner)
		return outer + fmt.Sprintf(" M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s Z",
			ftoa(ix1), ftoa(iy1), ir, ir, ftoa(ixm), ftoa(iym),
			ir, ir, ftoa(ix1), ftoa(iy1))
	}

	largeArc := 0
	if end-start > 180 {
		largeArc = 1
	}

	r := ftoa(radius)
	if inner <= 0 {
		return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
			ftoa(cx), ftoa(cy), ftoa(x1), ftoa(y1),
			r, r, largeArc, ftoa(x2), ftoa(y2))
	}

	ix1 := cx + inner*math.Cos(startRad)
	iy1 := cy + inner*math.Sin(startRad)
	ix2 := cx + inner*math.Cos(endRad)
	iy2 := cy + inner*math.Sin(endRad)
	ir := ftoa(inner)

	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z",
		ftoa(x1), ftoa(y1), r, r, largeArc, ftoa(x2), ftoa(y2),
		ftoa(ix2), ftoa(iy2), ir, ir, largeArc, ftoa(ix1), ftoa(iy1))
}

// PieChart renders a pie or donut chart as a standalone SVG document.
func PieChart(series models.Series, opts PieOptions) string {
	if opts.Size <= 0 {
		def := DefaultPieOptions()
		def.InnerRadius = opts.InnerRadius
		def.Colors = opts.Colors
		opts = def
	}

	slices := BuildPieSlices(series, opts.Size, opts.InnerRadius, opts.Colors)
	if slices == nil {
		return emptySVG(opts.Size, opts.Size, "No data")
	}

	var sb strings.Builder
	sb.WriteString(svgOpen(opts.Size, opts.Size))
	for _, sl := range slices {
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" stroke="#ffffff" stroke-width="1">`,
			sl.Path, sl.Color))
		if opts.ShowTooltip {
			sb.WriteString(fmt.Sprintf(`<title>%s: %s (%.1f%%)</title>`,
				escapeXML(sl.Name), ftoa(sl.Value), sl.Percentage))
		}
		sb.WriteString(`</path>`)
	}
	if opts.ShowLabels {
		for _, sl := range slices {
			if sl.Percentage <= labelThreshold {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="11" fill="#ffffff" text-anchor="middle" dominant-baseline="middle">%.0f%%</text>`,
				ftoa(sl.LabelX), ftoa(sl.LabelY), sl.Percentage))
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}
