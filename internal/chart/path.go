package chart

import (
	"strings"

	"github.com/huntiq/lightcharts/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Geometric Path Builders
// ════════════════════════════════════════════════════════════════════

// Point is a computed screen coordinate for one data point.
type Point struct {
	X, Y  float64
	Name  string
	Value float64
}

// LineGeometry is the derived geometry for a line/area chart. It is a
// pure function of (series, dimensions) and is recomputed per render.
type LineGeometry struct {
	Points   []Point
	LinePath string
	AreaPath string
	MinY     float64
	MaxY     float64
}

// BuildLineGeometry computes the screen points for a series inside a
// width×height canvas with the given inner padding.
//
// Horizontal spacing is (width − 2·padding)/(n−1); the vertical scale
// is (height − 2·padding)/range with the y-axis inverted (larger value,
// smaller y). When all values are equal the range is floored to 1 so a
// flat series renders as a flat line rather than dividing by zero.
func BuildLineGeometry(series models.Series, width, height, padding float64) LineGeometry {
	g := LineGeometry{}
	if len(series) < 2 {
		return g
	}

	minY, maxY := series[0].Value, series[0].Value
	for _, p := range series {
		if p.Value < minY {
			minY = p.Value
		}
		if p.Value > maxY {
			maxY = p.Value
		}
	}
	g.MinY, g.MaxY = minY, maxY

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}

	n := len(series)
	stepX := (width - 2*padding) / float64(n-1)
	scaleY := (height - 2*padding) / rangeY

	g.Points = make([]Point, n)
	var sb strings.Builder
	for i, p := range series {
		x := padding + float64(i)*stepX
		y := height - padding - (p.Value-minY)*scaleY
		g.Points[i] = Point{X: x, Y: y, Name: p.Name, Value: p.Value}
		if i == 0 {
			sb.WriteString("M " + ftoa(x) + " " + ftoa(y))
		} else {
			sb.WriteString(" L " + ftoa(x) + " " + ftoa(y))
		}
	}
	g.LinePath = sb.String()

	// Close the polygon down to the baseline for the fillable area.
	baseline := ftoa(height - padding)
	g.AreaPath = g.LinePath +
		" L " + ftoa(g.Points[n-1].X) + " " + baseline +
		" L " + ftoa(g.Points[0].X) + " " + baseline + " Z"
	return g
}

// BuildLinePath returns the SVG path for a polyline through the series,
// or "" when fewer than two points are given (the caller renders a
// placeholder instead).
func BuildLinePath(series models.Series, width, height, padding float64) string {
	return BuildLineGeometry(series, width, height, padding).LinePath
}

// BuildAreaPath extends the line path by closing it down to the
// baseline at the last and first x-coordinates, forming a fillable
// region. Empty when the underlying line path is empty.
func BuildAreaPath(series models.Series, width, height, padding float64) string {
	return BuildLineGeometry(series, width, height, padding).AreaPath
}
