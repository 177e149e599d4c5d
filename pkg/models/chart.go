// Package models defines the shared data types for lightcharts:
// chart data points, series, and named datasets as served by the
// HUNTIQ dashboard backend.
package models

import (
	"fmt"
	"math"
)

// DataPoint is a single observation in a chart series.
// Name is used only for display (axis labels, legends, tooltips).
// Color, when set, overrides the palette for this point's slice/bar.
type DataPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Series is an ordered sequence of data points. Order determines
// x-position (line/bar) or angular position (radar); for pies it only
// determines the stacking order of slices from 12 o'clock.
type Series []DataPoint

// Total returns the sum of all values in the series.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// MaxValue returns the largest value in the series, or 0 if empty.
func (s Series) MaxValue() float64 {
	var max float64
	for i, p := range s {
		if i == 0 || p.Value > max {
			max = p.Value
		}
	}
	return max
}

// Values returns the raw values in series order.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.Value
	}
	return vals
}

// Labels returns the point names in series order.
func (s Series) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Name
	}
	return labels
}

// ChartType identifies the renderer a dataset is intended for.
type ChartType string

const (
	ChartPie   ChartType = "pie"
	ChartDonut ChartType = "donut"
	ChartLine  ChartType = "line"
	ChartArea  ChartType = "area"
	ChartBar   ChartType = "bar"
	ChartRadar ChartType = "radar"
)

// ValidChartType reports whether t names a known chart renderer.
func ValidChartType(t ChartType) bool {
	switch t {
	case ChartPie, ChartDonut, ChartLine, ChartArea, ChartBar, ChartRadar:
		return true
	}
	return false
}

// Dataset is a named, chartable series as stored on disk and served by
// the API — e.g. species distribution (pie), harvest trend (line),
// territory comparison (bar), criteria scores (radar).
type Dataset struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Chart    ChartType `json:"chart"`
	Series   Series    `json:"series"`
	MaxValue float64   `json:"max_value,omitempty"` // radar normalization ceiling
}

// Validate checks a dataset at the API boundary. Pie, donut and radar
// charts reject non-finite or negative values — the renderers would
// produce undefined geometry for them.
func (d *Dataset) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dataset: name is required")
	}
	if !ValidChartType(d.Chart) {
		return fmt.Errorf("dataset %s: unknown chart type %q", d.Name, d.Chart)
	}
	for i, p := range d.Series {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("dataset %s: point %d (%s) has non-finite value", d.Name, i, p.Name)
		}
		switch d.Chart {
		case ChartPie, ChartDonut, ChartRadar:
			if p.Value < 0 {
				return fmt.Errorf("dataset %s: point %d (%s) has negative value %.2f", d.Name, i, p.Name, p.Value)
			}
		}
	}
	return nil
}
