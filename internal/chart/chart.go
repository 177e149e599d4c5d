// Package chart renders dashboard charts as standalone SVG documents.
// It is a pure-Go, zero-dependency replacement for the client-side chart
// library the HUNTIQ dashboards used: pie/donut, line/area, bar and radar
// renderers, each a pure function of (series, dimensions, options).
//
// Renderers never return errors. Degenerate input (empty series, zero
// totals, too few radar axes) renders an explicit placeholder SVG instead.
package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// Palette
// ════════════════════════════════════════════════════════════════════

// DefaultPalette is the HUNTIQ dashboard color cycle.
var DefaultPalette = []string{
	"#2d6a4f", "#d4a373", "#bc4749", "#457b9d",
	"#b5838d", "#6d597a", "#e9c46a", "#588157",
}

// PaletteColor returns the color for slot i, cycling the palette by
// modulo. An empty palette falls back to DefaultPalette.
func PaletteColor(i int, palette []string) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgOpen(width, height float64) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">`,
		ftoa(width), ftoa(height), ftoa(width), ftoa(height))
}

// emptySVG renders the placeholder state shown for degenerate input.
func emptySVG(width, height float64, msg string) string {
	if width <= 0 {
		width = 300
	}
	if height <= 0 {
		height = 150
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s"><rect width="%s" height="%s" fill="#f5f5f4"/><text x="%s" y="%s" text-anchor="middle" fill="#999" font-size="13" font-family="sans-serif">%s</text></svg>`,
		ftoa(width), ftoa(height), ftoa(width), ftoa(height),
		ftoa(width/2), ftoa(height/2), escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// ftoa formats a coordinate with at most two decimals, trimming
// trailing zeros so whole pixels render as integers ("20", not "20.00").
func ftoa(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// truncate shortens a label to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
