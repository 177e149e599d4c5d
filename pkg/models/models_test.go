package models

import (
	"math"
	"testing"
)

func TestSeriesHelpers(t *testing.T) {
	s := Series{
		{Name: "Deer", Value: 12},
		{Name: "Boar", Value: 30},
		{Name: "Fox", Value: 8},
	}
	if got := s.Total(); got != 50 {
		t.Errorf("Total = %v, want 50", got)
	}
	if got := s.MaxValue(); got != 30 {
		t.Errorf("MaxValue = %v, want 30", got)
	}
	if got := s.Labels(); got[1] != "Boar" {
		t.Errorf("Labels[1] = %s, want Boar", got[1])
	}
	if got := s.Values(); got[2] != 8 {
		t.Errorf("Values[2] = %v, want 8", got[2])
	}
}

func TestSeriesHelpers_Empty(t *testing.T) {
	var s Series
	if s.Total() != 0 || s.MaxValue() != 0 {
		t.Error("empty series should total/max to 0")
	}
	if len(s.Values()) != 0 || len(s.Labels()) != 0 {
		t.Error("empty series should yield empty slices")
	}
}

func TestSeriesMaxValue_AllNegative(t *testing.T) {
	s := Series{{Value: -5}, {Value: -2}, {Value: -9}}
	if got := s.MaxValue(); got != -2 {
		t.Errorf("MaxValue = %v, want -2", got)
	}
}

func TestValidChartType(t *testing.T) {
	for _, ct := range []ChartType{ChartPie, ChartDonut, ChartLine, ChartArea, ChartBar, ChartRadar} {
		if !ValidChartType(ct) {
			t.Errorf("%s should be valid", ct)
		}
	}
	if ValidChartType("scatter") {
		t.Error("scatter is not a supported chart type")
	}
}

func TestDatasetValidate(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		wantErr bool
	}{
		{
			name: "valid_pie",
			ds: Dataset{
				Name:   "species",
				Chart:  ChartPie,
				Series: Series{{Name: "Deer", Value: 10}},
			},
		},
		{
			name:    "missing_name",
			ds:      Dataset{Chart: ChartPie},
			wantErr: true,
		},
		{
			name:    "unknown_chart",
			ds:      Dataset{Name: "x", Chart: "sparkline"},
			wantErr: true,
		},
		{
			name: "negative_pie_value",
			ds: Dataset{
				Name:   "species",
				Chart:  ChartPie,
				Series: Series{{Name: "Deer", Value: -1}},
			},
			wantErr: true,
		},
		{
			name: "negative_line_value_ok",
			ds: Dataset{
				Name:   "trend",
				Chart:  ChartLine,
				Series: Series{{Name: "Jan", Value: -4}},
			},
		},
		{
			name: "nan_value",
			ds: Dataset{
				Name:   "trend",
				Chart:  ChartLine,
				Series: Series{{Name: "Jan", Value: math.NaN()}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
